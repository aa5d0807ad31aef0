package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a ManualError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *ManualError {
	if err == nil {
		return nil
	}

	// Keep the location of an existing ManualError.
	var me *ManualError
	if errors.As(err, &me) {
		return &ManualError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       me,
			Context:     me.Context,
			Section:     me.Section,
			FilePath:    me.FilePath,
			Pointer:     me.Pointer,
			Line:        me.Line,
			Column:      me.Column,
			Recoverable: me.Recoverable,
		}
	}

	return &ManualError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeContent || errType == ErrorTypeRender,
	}
}

// WrapContent wraps an error as a content error located in a file.
func WrapContent(err error, code, message, filePath, pointer string) *ManualError {
	me := Wrap(err, ErrorTypeContent, code, message)
	if me != nil {
		me.FilePath = filePath
		me.Pointer = pointer
	}
	return me
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *ManualError {
	me := Wrap(err, ErrorTypeIO, code, message)
	if me != nil {
		me.Recoverable = false
	}
	return me
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *ManualError {
	me := Wrap(err, ErrorTypeConfig, code, message)
	if me != nil {
		me.Recoverable = false
	}
	return me
}

// FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var me *ManualError
	if errors.As(err, &me) {
		return me.Error()
	}

	return err.Error()
}

// GetErrorContext extracts context information from a ManualError
func GetErrorContext(err error) map[string]interface{} {
	var me *ManualError
	if errors.As(err, &me) {
		context := make(map[string]interface{})
		for k, v := range me.Context {
			context[k] = v
		}
		if me.Section != "" {
			context["section"] = me.Section
		}
		if location := me.Location(); location != "" {
			context["location"] = location
		}
		context["type"] = string(me.Type)
		context["code"] = me.Code
		context["recoverable"] = me.Recoverable
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}
