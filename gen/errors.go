package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the generator's failure classes.
var (
	// ErrInvalidDefinition indicates a table-definition error.
	ErrInvalidDefinition = errors.New("quill: invalid table definition")
	// ErrGenerationFailed indicates a code-generation failure.
	ErrGenerationFailed = errors.New("quill: code generation failed")
)

// DefinitionError reports an invalid piece of a table definition,
// naming the table and column it was found on.
type DefinitionError struct {
	Table   string // table name, empty for definition-level errors
	Column  string // column name, empty for table-level errors
	Message string
}

// Error returns the error string.
func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("quill: definition error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is reports whether the target matches the sentinel for DefinitionError.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// NewDefinitionError returns a new DefinitionError.
func NewDefinitionError(table, column, message string) *DefinitionError {
	return &DefinitionError{Table: table, Column: column, Message: message}
}

// IsDefinitionError reports whether the error is a DefinitionError.
func IsDefinitionError(err error) bool {
	var e *DefinitionError
	return errors.As(err, &e)
}

// GenerationError reports a file that failed to generate, format or
// write.
type GenerationError struct {
	File string // output file name relative to the target directory
	Err  error
}

// Error returns the error string.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("quill: generate %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Err }

// Is reports whether the target matches the sentinel for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError returns a new GenerationError.
func NewGenerationError(file string, err error) *GenerationError {
	return &GenerationError{File: file, Err: err}
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
