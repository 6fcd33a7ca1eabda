package employee

import (
	"errors"
	"fmt"
)

var (
	ErrCancelled   = errors.New("save cancelled")
	ErrRowNotFound = errors.New("table row not found")
	ErrExists      = errors.New("record file already exists")
)

// FieldError names the first rule that rejected an input.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.FieldError.Error()
}

// WriteError reports a record file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write record file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
