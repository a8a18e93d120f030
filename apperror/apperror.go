// Package apperror defines a centralized system for application-specific errors.
// Every failure that crosses a handler boundary is expressed as an *AppError so
// that the HTTP layer can translate it into a status code and a JSON body in
// exactly one place. Underlying driver errors stay wrapped inside and are never
// leaked to API clients; they are only logged server-side.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType enumerates the categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error related to application configuration.
	ConfigError
	// AuthError represents an authentication error (missing or incorrect credentials).
	AuthError
	// NotFoundError represents a resource not found error.
	NotFoundError
	// ValidationError represents an input validation error on a well-formed request.
	ValidationError
	// BadRequestError represents a malformed or otherwise unacceptable request.
	BadRequestError
	// ConflictError represents a duplicate-resource conflict, e.g. a username
	// that is already taken.
	ConflictError
	// InternalError represents a generic internal server error.
	InternalError
	// UnavailableError represents a transient backend failure (timeouts,
	// dropped connections) that the client may retry.
	UnavailableError
	// MigrationError represents an error during database migrations.
	MigrationError
)

// AppError is the application's error type. It carries a category, a
// client-safe message, and optionally the underlying error for logging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error, never exposed to clients
}

// Error satisfies the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so errors.Is / errors.As can inspect
// the wrapped chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		// Validation failures on syntactically valid JSON are 422, matching the
		// registration endpoint's published contract.
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		// The registration contract reports duplicate usernames as 400, not 409.
		return http.StatusBadRequest
	case UnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. Generic constructor used by the typed
// helpers below.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewUnavailableError creates a new UnavailableError.
func NewUnavailableError(message string, underlyingError error) *AppError {
	return NewAppError(UnavailableError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError.
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// ErrorResponse is the JSON payload returned to API clients for any error.
type ErrorResponse struct {
	Error string `json:"error" example:"A description of the error"`
}

// ToResponse converts an AppError to an ErrorResponse. Only the client-safe
// Message is included; the wrapped Err never crosses this boundary.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a ConflictError.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

// IsUnavailableError checks if an error is an UnavailableError.
func IsUnavailableError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == UnavailableError
}
