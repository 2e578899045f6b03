package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no account matches a login identifier.
	ErrUserNotFound = errors.New("usuario no encontrado")
	// ErrInvalidCredentials is returned when the supplied password does not match.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// ErrNoPasswordSet is returned when an account was provisioned without a password.
	ErrNoPasswordSet = errors.New("la cuenta no tiene contraseña configurada")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("el email ya está registrado")
	// ErrOrderNotFound is returned when a referenced order does not exist.
	ErrOrderNotFound = errors.New("pedido no encontrado")
	// ErrProfileNotFound is returned when a referenced user profile does not exist.
	ErrProfileNotFound = errors.New("usuario no encontrado")
	// ErrMissingOrderData is returned when an order request lacks owner or items.
	ErrMissingOrderData = errors.New("faltan datos del pedido")
	// ErrMissingStatus is returned when a status update carries no status.
	ErrMissingStatus = errors.New("falta el nuevo estado")
	// ErrUnknownStatus is returned when a status string is outside the closed set.
	ErrUnknownStatus = errors.New("estado no reconocido")
	// ErrInvalidTransition is returned when a status change is outside the transition table.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	// ErrForbidden is returned when the caller's role or identity does not allow the operation.
	ErrForbidden = errors.New("acceso denegado")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage failures fall
// through to a generic 500; the raw message is logged at the handler, never
// returned to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNoPasswordSet):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NO_PASSWORD_SET")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMissingOrderData):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_ORDER_DATA")
	case errors.Is(err, ErrMissingStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_STATUS")
	case errors.Is(err, ErrUnknownStatus):
		return NewHTTPError(http.StatusConflict, err.Error(), "UNKNOWN_STATUS")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "error interno del servidor", "INTERNAL_ERROR")
	}
}
