// Package apperrors предоставляет структурированные ошибки приложения.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в формате CATEGORY.SPECIFIC_ERROR.
const (
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	ErrParamsRead            = "PARAMS.READ_FAILED"
	ErrParamsVersionMismatch = "PARAMS.VERSION_MISMATCH"
	ErrParamsKeyMissing      = "PARAMS.KEY_MISSING"
	ErrParamsInvalidValue    = "PARAMS.INVALID_VALUE"

	ErrCommandNotFound  = "COMMAND.NOT_FOUND"
	ErrCommandExec      = "COMMAND.EXEC_FAILED"
	ErrCommandOperation = "COMMAND.OPERATION_FAILED"
	ErrOutputFormat     = "OUTPUT.FORMAT_FAILED"
)

// AppError представляет структурированную ошибку приложения.
//
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты (пароли строки соединения).
type AppError struct {
	// Code - машиночитаемый код ошибки.
	Code string `json:"code"`

	// Message - человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause - исходная ошибка, в JSON не сериализуется.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает исходную ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf возвращает код первой AppError в цепочке или пустую строку.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
