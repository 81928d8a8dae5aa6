package schema

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed estimates.cue
var estimatesCUE string

// Error codes for result documents (E300-E399).
const (
	ErrCodeResultMissing    = "E301"
	ErrCodeResultJSON       = "E302"
	ErrCodeResultSchema     = "E303"
	ErrCodeStatisticMissing = "E304"
)

// ResultError describes a problem with one result document.
// The code is not part of the message; callers print it next to it.
type ResultError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos // position inside Path, if known
}

func (e *ResultError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Schema validates result documents and extracts one statistic.
// A Schema is not safe for concurrent use; the pipeline is sequential.
type Schema struct {
	ctx       *cue.Context
	document  cue.Value
	statistic cue.Path
	bound     cue.Value
	raw       string
}

// New compiles the embedded document schema for the given dotted statistic path.
func New(statistic string) (*Schema, error) {
	ctx := cuecontext.New()

	document := ctx.CompileString(estimatesCUE, cue.Filename("estimates.cue"))
	if err := document.Err(); err != nil {
		return nil, fmt.Errorf("compiling estimates schema: %w", err)
	}

	path := cue.ParsePath(statistic)
	if err := path.Err(); err != nil {
		return nil, fmt.Errorf("statistic path %q: %w", statistic, err)
	}

	bound := ctx.CompileString("number & >=0", cue.Filename("statistic.cue"))
	if err := bound.Err(); err != nil {
		return nil, fmt.Errorf("compiling statistic constraint: %w", err)
	}

	return &Schema{
		ctx:       ctx,
		document:  document,
		statistic: path,
		bound:     bound,
		raw:       statistic,
	}, nil
}

// ReadFile loads path and extracts the statistic from it.
func (s *Schema) ReadFile(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("reading result file: %v", err)
		if os.IsNotExist(err) {
			msg = "result file not found"
		}
		return 0, &ResultError{Code: ErrCodeResultMissing, Path: path, Message: msg}
	}
	return s.Extract(path, data)
}

// Extract validates data against the document schema and returns the
// statistic as a float64. filename is used for error positions only.
func (s *Schema) Extract(filename string, data []byte) (float64, error) {
	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return 0, resultError(ErrCodeResultJSON, filename, err)
	}

	doc := s.ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return 0, resultError(ErrCodeResultJSON, filename, err)
	}
	if doc.IncompleteKind() != cue.StructKind {
		return 0, &ResultError{
			Code:    ErrCodeResultSchema,
			Path:    filename,
			Message: fmt.Sprintf("expected a JSON object, found %v", doc.IncompleteKind()),
			Pos:     positionIn(filename, doc.Pos()),
		}
	}

	unified := s.document.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return 0, resultError(ErrCodeResultSchema, filename, err)
	}

	stat := doc.LookupPath(s.statistic)
	if !stat.Exists() {
		return 0, &ResultError{
			Code:    ErrCodeStatisticMissing,
			Path:    filename,
			Message: fmt.Sprintf("%s is required", s.raw),
			Pos:     positionIn(filename, doc.Pos()),
		}
	}

	checked := s.bound.Unify(stat)
	if err := checked.Validate(cue.Concrete(true)); err != nil {
		return 0, resultError(ErrCodeStatisticMissing, filename, err)
	}

	value, err := checked.Float64()
	if err != nil {
		return 0, resultError(ErrCodeStatisticMissing, filename, err)
	}
	return value, nil
}

// resultError extracts position info from CUE errors.
// Only positions inside the result document are kept; positions in the
// embedded schema mean nothing to the user.
func resultError(code, path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ResultError{Code: code, Path: path, Message: err.Error()}
	}

	// Report the first error with position info
	first := errs[0]
	re := &ResultError{Code: code, Path: path, Message: first.Error()}
	re.Pos = positionIn(path, errors.Positions(first)...)
	return re
}

// positionIn returns the first of positions that lies in path.
func positionIn(path string, positions ...token.Pos) token.Pos {
	for _, pos := range positions {
		if pos.IsValid() && pos.Filename() == path {
			return pos
		}
	}
	return token.NoPos
}
