package services

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can react without inspecting
// messages.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindConflict    ErrorKind = "conflict"
	KindPersistence ErrorKind = "persistence"
)

type ServiceError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is matches any ServiceError carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

var (
	ErrInvalidInput    = &ServiceError{Kind: KindValidation, Code: "invalid_input", Message: "invalid input"}
	ErrInvalidQuantity = &ServiceError{Kind: KindValidation, Code: "invalid_quantity", Message: "quantity must be a positive integer"}

	ErrTenantNotFound        = &ServiceError{Kind: KindNotFound, Code: "tenant_not_found", Message: "tenant not found"}
	ErrTableNotFound         = &ServiceError{Kind: KindNotFound, Code: "table_not_found", Message: "table not found"}
	ErrSessionNotFound       = &ServiceError{Kind: KindNotFound, Code: "session_not_found", Message: "session not found"}
	ErrBillingMethodNotFound = &ServiceError{Kind: KindNotFound, Code: "billing_method_not_found", Message: "billing method not found"}
	ErrProductNotFound       = &ServiceError{Kind: KindNotFound, Code: "product_not_found", Message: "product not found"}

	ErrTableUnavailable   = &ServiceError{Kind: KindConflict, Code: "table_unavailable", Message: "table is not idle"}
	ErrSessionNotActive   = &ServiceError{Kind: KindConflict, Code: "session_not_active", Message: "session is not active"}
	ErrBillingMethodInUse = &ServiceError{Kind: KindConflict, Code: "billing_method_in_use", Message: "billing method is referenced by table sessions"}
)

// invalid wraps a validation failure with detail about the offending input.
func invalid(err error) error {
	return &ServiceError{Kind: KindValidation, Code: ErrInvalidInput.Code, Message: ErrInvalidInput.Message, Err: err}
}

// persistenceError wraps a storage failure. ServiceErrors pass through so the
// first violated precondition is what the caller sees.
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	msg := "failed to " + op
	if errors.Is(err, context.DeadlineExceeded) {
		msg += " (timeout)"
	}
	return &ServiceError{Kind: KindPersistence, Code: "persistence", Message: msg, Err: err}
}

// KindOf reports the kind of err. Errors that did not come from this package
// are treated as persistence failures.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindPersistence
}

// CodeOf returns the machine readable code of err.
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	return "persistence"
}
