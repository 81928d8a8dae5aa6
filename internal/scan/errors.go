package scan

import "fmt"

// Error codes for result directories.
const (
	ErrCodeBadName      = "E201"
	ErrCodeNotDirectory = "E202"
	ErrCodeDuplicate    = "E401"
)

// NameError reports a directory name that breaks the grammar.
type NameError struct {
	Dir     string
	Message string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Dir, e.Message)
}

// Code returns the error code.
func (e *NameError) Code() string { return ErrCodeBadName }

// NotDirectoryError reports a selected entry, or the root, that is not a directory.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s: not a directory", e.Path)
}

// Code returns the error code.
func (e *NotDirectoryError) Code() string { return ErrCodeNotDirectory }

// DuplicateError reports two directories that produce the same key.
type DuplicateError struct {
	Key    string
	First  string
	Second string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s duplicates %s", e.Second, e.Key, e.First)
}

// Code returns the error code.
func (e *DuplicateError) Code() string { return ErrCodeDuplicate }
