package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/benchplot/internal/ir"
)

// ErrRunNotFound is returned when a run reference matches nothing.
var ErrRunNotFound = errors.New("run not found")

// RunInput is what a render run records.
type RunInput struct {
	Root      string
	Marker    string
	Statistic string
	Records   []ir.Record
	Grids     []*ir.Grid
}

// RunSummary describes a stored run without its payload.
type RunSummary struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Root        string `json:"root"`
	Marker      string `json:"marker"`
	Statistic   string `json:"statistic"`
	Digest      string `json:"digest"`
	RecordCount int    `json:"record_count"`
}

// Run is a stored run with its records and grids.
type Run struct {
	RunSummary
	Records []ir.Record `json:"records"`
	Grids   []*ir.Grid  `json:"grids"`
}

// SaveRun stores a run in one transaction and returns its summary.
// The run gets the next sequence number and an ID from the store's generator.
func (s *Store) SaveRun(ctx context.Context, in RunInput) (RunSummary, error) {
	digest, err := ir.RunDigest(in.Grids)
	if err != nil {
		return RunSummary{}, fmt.Errorf("save run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunSummary{}, fmt.Errorf("save run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return RunSummary{}, fmt.Errorf("save run: next seq: %w", err)
	}

	summary := RunSummary{
		ID:          s.ids.Generate(),
		Seq:         seq,
		Root:        in.Root,
		Marker:      in.Marker,
		Statistic:   in.Statistic,
		Digest:      digest,
		RecordCount: len(in.Records),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, root, marker, statistic, digest, record_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, summary.ID, summary.Seq, summary.Root, summary.Marker, summary.Statistic, summary.Digest, summary.RecordCount)
	if err != nil {
		return RunSummary{}, fmt.Errorf("save run: insert run: %w", err)
	}

	for _, r := range in.Records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (run_id, measurement_type, implementation, category, value, source)
			VALUES (?, ?, ?, ?, ?, ?)
		`, summary.ID, r.MeasurementType, r.Implementation, r.Category, r.Value, r.Source)
		if err != nil {
			return RunSummary{}, fmt.Errorf("save run: insert record %s: %w", r.Key, err)
		}
	}

	for i, g := range in.Grids {
		canonical, err := ir.MarshalCanonical(g)
		if err != nil {
			return RunSummary{}, fmt.Errorf("save run: marshal grid %q: %w", g.MeasurementType, err)
		}
		gridDigest, err := ir.GridDigest(g)
		if err != nil {
			return RunSummary{}, fmt.Errorf("save run: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grids (run_id, position, measurement_type, digest, canonical)
			VALUES (?, ?, ?, ?, ?)
		`, summary.ID, i, g.MeasurementType, gridDigest, string(canonical))
		if err != nil {
			return RunSummary{}, fmt.Errorf("save run: insert grid %q: %w", g.MeasurementType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return RunSummary{}, fmt.Errorf("save run: commit: %w", err)
	}
	return summary, nil
}

// ListRuns returns every stored run, oldest first.
// Returns an empty slice (not nil) when the history is empty.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, root, marker, statistic, digest, record_count
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Seq, &r.Root, &r.Marker, &r.Statistic, &r.Digest, &r.RecordCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ResolveRun maps a run reference to a run ID. A reference is a full run ID,
// a sequence number, or "latest".
func (s *Store) ResolveRun(ctx context.Context, ref string) (string, error) {
	var (
		row *sql.Row
		id  string
	)
	switch seq, err := strconv.ParseInt(ref, 10, 64); {
	case ref == "latest":
		row = s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`)
	case err == nil:
		row = s.db.QueryRowContext(ctx, `SELECT id FROM runs WHERE seq = ?`, seq)
	default:
		row = s.db.QueryRowContext(ctx, `SELECT id FROM runs WHERE id = ?`, ref)
	}
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %q", ErrRunNotFound, ref)
		}
		return "", fmt.Errorf("resolve run %q: %w", ref, err)
	}
	return id, nil
}

// LoadRun returns a stored run by reference (see ResolveRun).
// Records are ordered by measurement type, implementation and category.
// Grids come back in the order they were saved.
func (s *Store) LoadRun(ctx context.Context, ref string) (*Run, error) {
	id, err := s.ResolveRun(ctx, ref)
	if err != nil {
		return nil, err
	}

	run := &Run{Records: []ir.Record{}, Grids: []*ir.Grid{}}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, seq, root, marker, statistic, digest, record_count
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Seq, &run.Root, &run.Marker, &run.Statistic, &run.Digest, &run.RecordCount)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	if run.Records, err = s.loadRecords(ctx, id); err != nil {
		return nil, err
	}
	if run.Grids, err = s.loadGrids(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) loadRecords(ctx context.Context, runID string) ([]ir.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT measurement_type, implementation, category, value, source
		FROM records
		WHERE run_id = ?
		ORDER BY measurement_type COLLATE BINARY, implementation COLLATE BINARY, category COLLATE BINARY
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []ir.Record{}
	for rows.Next() {
		var r ir.Record
		if err := rows.Scan(&r.MeasurementType, &r.Implementation, &r.Category, &r.Value, &r.Source); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (s *Store) loadGrids(ctx context.Context, runID string) ([]*ir.Grid, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT canonical
		FROM grids
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query grids: %w", err)
	}
	defer rows.Close()

	grids := []*ir.Grid{}
	for rows.Next() {
		var canonical string
		if err := rows.Scan(&canonical); err != nil {
			return nil, fmt.Errorf("scan grid: %w", err)
		}
		g, err := unmarshalGrid(canonical)
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grids: %w", err)
	}
	return grids, nil
}

// unmarshalGrid rebuilds a grid from its canonical JSON.
func unmarshalGrid(data string) (*ir.Grid, error) {
	var raw struct {
		MeasurementType string       `json:"measurement_type"`
		Categories      []string     `json:"categories"`
		Implementations []string     `json:"implementations"`
		Values          [][]*float64 `json:"values"`
	}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal grid: %w", err)
	}

	g := ir.NewGrid(raw.MeasurementType, raw.Categories, raw.Implementations)
	for i, row := range raw.Values {
		if i >= len(raw.Categories) {
			return nil, fmt.Errorf("unmarshal grid %q: %d rows for %d categories", raw.MeasurementType, len(raw.Values), len(raw.Categories))
		}
		for j, v := range row {
			if j >= len(raw.Implementations) {
				return nil, fmt.Errorf("unmarshal grid %q: row %d has %d cells for %d implementations", raw.MeasurementType, i, len(row), len(raw.Implementations))
			}
			if v != nil {
				g.Set(raw.Categories[i], raw.Implementations[j], *v)
			}
		}
	}
	return g, nil
}
