package common

import "fmt"

// ValidationError is a field-level input problem: bad amount, malformed
// phone number, invalid plan reference.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PolicyError blocks an operation for account-policy reasons, carrying the
// stored reason so the caller can show it to the user.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	if e.Reason == "" {
		return "operation not permitted for this account"
	}
	return e.Reason
}

// NotFoundError covers a missing row or one not owned by the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// TransitionError is a refused state change from a terminal or disallowed
// status. The row is left untouched.
type TransitionError struct {
	Current   string
	Attempted string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.Current, e.Attempted)
}

// BulkItemError records one failed item inside a bulk admin action.
type BulkItemError struct {
	Id      int    `json:"id"`
	Message string `json:"message"`
}

// BulkResult summarizes a bulk admin action. One item failing never aborts
// the rest of the batch.
type BulkResult struct {
	Processed int             `json:"processed"`
	Failed    int             `json:"failed"`
	Errors    []BulkItemError `json:"errors,omitempty"`
}

func (r *BulkResult) AddSuccess() {
	r.Processed++
}

func (r *BulkResult) AddFailure(id int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, BulkItemError{Id: id, Message: err.Error()})
}
