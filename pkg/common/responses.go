package common

import (
	"errors"
	"net/http"
)

type SuccessResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string, data interface{}, status int) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
		Data:    data,
	}
}

// ErrorStatus maps a service error onto an HTTP status code. Anything
// outside the known taxonomy is an internal error and its details are not
// exposed to the caller.
func ErrorStatus(err error) int {
	var (
		validationErr *ValidationError
		policyErr     *PolicyError
		notFoundErr   *NotFoundError
		transitionErr *TransitionError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &policyErr):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponseFromError builds the wire envelope for a service error,
// hiding internal error text behind a generic message.
func NewErrorResponseFromError(err error) ErrorResponse {
	status := ErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	return NewErrorResponse(message, nil, status)
}
