package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeContent    ErrorType = "content"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// ManualError is a structured error type with content location.
type ManualError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
	// Section is the identifier of the section the error belongs to.
	Section  string
	FilePath string
	// Pointer is a JSON pointer into the content file, e.g. /blocks/2/variant.
	Pointer     string
	Line        int
	Column      int
	Recoverable bool
}

// Error implements the error interface.
func (e *ManualError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Section != "" {
		parts = append(parts, "section:"+e.Section)
	}

	if location := e.Location(); location != "" {
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Location renders file, pointer and position as "file#/pointer:line:col",
// omitting the parts that are unknown.
func (e *ManualError) Location() string {
	return formatLocation(e.FilePath, e.Pointer, e.Line, e.Column)
}

// Unwrap returns the underlying cause error.
func (e *ManualError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ManualError) Is(target error) bool {
	var t *ManualError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ManualError) WithContext(key string, value interface{}) *ManualError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds the content file and JSON pointer.
func (e *ManualError) WithLocation(filePath, pointer string) *ManualError {
	e.FilePath = filePath
	e.Pointer = pointer

	return e
}

// WithPosition adds a line and column, typically inside an embedded
// source such as a diagram.
func (e *ManualError) WithPosition(line, column int) *ManualError {
	e.Line = line
	e.Column = column

	return e
}

// WithSection adds section context.
func (e *ManualError) WithSection(section string) *ManualError {
	e.Section = section

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ManualError {
	return &ManualError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewContentError creates an error about malformed content.
func NewContentError(code, message string, cause error) *ManualError {
	return &ManualError{
		Type:        ErrorTypeContent,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewRenderError creates an error raised while rendering a block.
func NewRenderError(code, message string, cause error) *ManualError {
	return &ManualError{
		Type:        ErrorTypeRender,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ManualError {
	return &ManualError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ManualError {
	return &ManualError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ManualError {
	return &ManualError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var me *ManualError
	if errors.As(err, &me) {
		return me.Recoverable
	}

	return false
}

// IsContentError checks if an error is about malformed content.
func IsContentError(err error) bool {
	var me *ManualError
	if errors.As(err, &me) {
		return me.Type == ErrorTypeContent || me.Type == ErrorTypeValidation
	}

	return false
}

// Common error codes.
const (
	ErrCodeFileNotFound    = "ERR_FILE_NOT_FOUND"
	ErrCodeReadFailed      = "ERR_READ_FAILED"
	ErrCodeWriteFailed     = "ERR_WRITE_FAILED"
	ErrCodeConfigInvalid   = "ERR_CONFIG_INVALID"
	ErrCodeSectionNotFound = "ERR_SECTION_NOT_FOUND"
	ErrCodeRenderFailed    = "ERR_RENDER_FAILED"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

func formatLocation(file, pointer string, line, column int) string {
	location := file
	if pointer != "" {
		location += "#" + pointer
	}
	if line > 0 {
		location += fmt.Sprintf(":%d", line)
		if column > 0 {
			location += fmt.Sprintf(":%d", column)
		}
	}
	return location
}
