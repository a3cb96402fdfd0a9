package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrValidation = errors.New("validation failed")
var ErrUnitOfWorkDone = errors.New("unit of work already committed or rolled back")

// ValidationError lists every problem found on a request. It matches ErrValidation.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError is an unexpected failure while reading, writing or committing ledger state.
type StoreError struct {
	Op     string
	Reason string
	Err    error
}

func (e *StoreError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("store %s (%s): %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// AuditLogError reports a transaction record that could not be appended.
type AuditLogError struct {
	Code ResponseCode
	Err  error
}

func (e *AuditLogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("append transaction record (code %d): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("append transaction record: %s (code %d)", e.Code.Description(), e.Code)
}

func (e *AuditLogError) Unwrap() error {
	return e.Err
}
