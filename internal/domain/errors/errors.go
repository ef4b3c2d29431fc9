package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotOwned          = errors.New("nickname not owned by wallet")
	ErrAlreadyOwned      = errors.New("nickname already owned by wallet")
	ErrLimitExceeded     = errors.New("nickname ownership limit exceeded")
	ErrAlreadyClosed     = errors.New("already closed")
	ErrStillLocked       = errors.New("stake is still locked")
	ErrBelowMinimum      = errors.New("amount below minimum")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAsset         = errors.New("cannot swap a token for itself")
	ErrNegligibleReward  = errors.New("accrued reward below dust threshold")
	ErrSlippageExceeded  = errors.New("slippage tolerance exceeded")
	ErrExternalService   = errors.New("external service failure")
	ErrInconsistentState = errors.New("compensation failed, state requires reconciliation")
)

// Error codes returned in API responses
const (
	CodeNotFound          = "NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeNotOwned          = "NOT_OWNED"
	CodeAlreadyOwned      = "ALREADY_OWNED"
	CodeLimitExceeded     = "LIMIT_EXCEEDED"
	CodeAlreadyClosed     = "ALREADY_CLOSED"
	CodeStillLocked       = "STILL_LOCKED"
	CodeBelowMinimum      = "BELOW_MINIMUM"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeSameAsset         = "SAME_ASSET"
	CodeNegligibleReward  = "NEGLIGIBLE_REWARD"
	CodeSlippageExceeded  = "SLIPPAGE_EXCEEDED"
	CodeExternalService   = "EXTERNAL_SERVICE_FAILURE"
	CodeInconsistentState = "INCONSISTENT_STATE"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// FromDomain maps a domain sentinel to an AppError, preserving any context
// the caller attached via wrapping. Unknown errors become internal errors.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrNotOwned):
		return NewAppError(http.StatusConflict, CodeNotOwned, err.Error(), err)
	case errors.Is(err, ErrAlreadyOwned):
		return NewAppError(http.StatusConflict, CodeAlreadyOwned, err.Error(), err)
	case errors.Is(err, ErrLimitExceeded):
		return NewAppError(http.StatusConflict, CodeLimitExceeded, err.Error(), err)
	case errors.Is(err, ErrAlreadyClosed):
		return NewAppError(http.StatusConflict, CodeAlreadyClosed, err.Error(), err)
	case errors.Is(err, ErrStillLocked):
		return NewAppError(http.StatusConflict, CodeStillLocked, err.Error(), err)
	case errors.Is(err, ErrBelowMinimum):
		return NewAppError(http.StatusUnprocessableEntity, CodeBelowMinimum, err.Error(), err)
	case errors.Is(err, ErrInsufficientFunds):
		return NewAppError(http.StatusUnprocessableEntity, CodeInsufficientFunds, err.Error(), err)
	case errors.Is(err, ErrSameAsset):
		return NewAppError(http.StatusBadRequest, CodeSameAsset, err.Error(), err)
	case errors.Is(err, ErrNegligibleReward):
		return NewAppError(http.StatusUnprocessableEntity, CodeNegligibleReward, err.Error(), err)
	case errors.Is(err, ErrSlippageExceeded):
		return NewAppError(http.StatusConflict, CodeSlippageExceeded, err.Error(), err)
	case errors.Is(err, ErrInconsistentState):
		return NewAppError(http.StatusInternalServerError, CodeInconsistentState, err.Error(), err)
	case errors.Is(err, ErrExternalService):
		return NewAppError(http.StatusBadGateway, CodeExternalService, err.Error(), err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return NewAppError(http.StatusBadRequest, CodeBadRequest, err.Error(), err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	default:
		return InternalError(err)
	}
}
