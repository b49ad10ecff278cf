package models

import "fmt"

// ValidationError reports an input that violates a budget invariant. It is
// surfaced as a 400 with field-level detail and never retried.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NotFoundError means the referenced budget does not exist or is not owned
// by the requesting user. The API deliberately does not distinguish the two.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// DependencyError means the budget store or expense ledger is unreachable
// or failed. It must never be masked as zero spend or an empty alert list.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: dependency failure: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// DomainError means a stored record violates an invariant that should have
// been enforced at write time, e.g. a budget row with a zero amount.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }
