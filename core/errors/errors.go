package errors

import "fmt"

type ErrorCode string

const (
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"

	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	ErrGetFailed    ErrorCode = "GET_FAILED"
	ErrCreateFailed ErrorCode = "CREATE_FAILED"
	ErrUpdateFailed ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed ErrorCode = "DELETE_FAILED"

	// Recruitment engine outcomes. CapacityExceeded is an expected result of
	// join, not a server fault; InvalidState carries the current post status
	// in the message so clients can re-render.
	ErrCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrInvalidState     ErrorCode = "INVALID_STATE"
	ErrTxConflict       ErrorCode = "TX_CONFLICT"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match AppErrors by code.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return false
}
