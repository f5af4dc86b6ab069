package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
)

// ErrorType classifies an AppError for logging and for the API status code
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeTimeout    ErrorType = "timeout"
)

// AppError is an error with a type, a public message and the place it was raised
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]any
	Source   string
}

func (e *AppError) Error() string {
	if e.Internal == nil {
		return fmt.Sprintf("%s [%s]: %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s: %v", e.Type, e.Code, e.Message, e.Internal)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches another AppError of the same type and code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// WithContext attaches a key/value that is logged with the error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// LogFields flattens the error into slog key/value pairs
func (e *AppError) LogFields() []any {
	fields := make([]any, 0, 8+2*len(e.Context))
	fields = append(fields, "error_type", e.Type, "error_code", e.Code, "error_message", e.Message, "source", e.Source)
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	for k, v := range e.Context {
		fields = append(fields, k, v)
	}
	return fields
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// New creates an AppError raised at the caller's position
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{Type: errorType, Code: code, Message: message, Source: caller(1)}
}

// Wrap turns err into an AppError raised at the caller's position
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{Type: errorType, Code: code, Message: message, Internal: err, Source: caller(1)}
}

// TypeOf returns the type of the first AppError in err's chain, or internal.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsValidation reports whether err carries a validation AppError.
func IsValidation(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeValidation
}

// IsNotFound reports whether err carries a not-found AppError.
func IsNotFound(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeNotFound
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypePermission:
		return http.StatusUnauthorized
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the code and message that are safe to show a user.
// Storage and internal failures never expose their details.
func PublicMessage(err error) (code, message string) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "INTERNAL", "Internal server error"
	}
	switch appErr.Type {
	case ErrorTypeDatabase, ErrorTypeInternal:
		return appErr.Code, "Internal server error"
	default:
		return appErr.Code, appErr.Message
	}
}

// Handler logs errors at a level that depends on their type
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs err. Rejected input is a warning, failures are errors.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound:
		h.logger.WarnContext(ctx, "Request rejected", appErr.LogFields()...)
	case ErrorTypePermission:
		h.logger.WarnContext(ctx, "Permission denied", appErr.LogFields()...)
	case ErrorTypeTimeout:
		h.logger.ErrorContext(ctx, "Operation timed out", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Operation failed", appErr.LogFields()...)
	}
}

// Sentinels for errors.Is; they match any AppError with the same type and code.
var (
	ErrValidation   = New(ErrorTypeValidation, "VALIDATION", "invalid input")
	ErrNotFound     = New(ErrorTypeNotFound, "NOT_FOUND", "record not found")
	ErrUnauthorized = New(ErrorTypePermission, "UNAUTHORIZED", "unauthorized")
	ErrTimeout      = New(ErrorTypeTimeout, "TIMEOUT", "operation timed out")
)

func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: "VALIDATION", Message: message, Source: caller(1)}
}

func NewNotFoundError(entity string) *AppError {
	return (&AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND", Message: entity + " not found", Source: caller(1)}).
		WithContext("entity", entity)
}

func NewDatabaseError(err error) *AppError {
	return &AppError{Type: ErrorTypeDatabase, Code: "DB_ERROR", Message: "database operation failed", Internal: err, Source: caller(1)}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypePermission, Code: "UNAUTHORIZED", Message: message, Source: caller(1)}
}

func NewTimeoutError(operation string, err error) *AppError {
	return (&AppError{Type: ErrorTypeTimeout, Code: "TIMEOUT", Message: operation + " timed out", Internal: err, Source: caller(1)}).
		WithContext("operation", operation)
}

func NewInternalError(err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Code: "INTERNAL", Message: "internal server error", Internal: err, Source: caller(1)}
}
