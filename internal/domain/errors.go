// Package domain defines core types, interfaces, and errors for the group manager.
package domain

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates the caller is authenticated but lacks standing
// on the target group.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// UnauthenticatedError indicates the caller identity could not be resolved.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictReason distinguishes the uniqueness rule that was violated.
type ConflictReason string

// Conflict reasons.
const (
	ConflictNameTaken     ConflictReason = "NAME_TAKEN"
	ConflictAlreadyMember ConflictReason = "ALREADY_MEMBER"
)

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Reason  ConflictReason
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StoreFailureError indicates the store reported no effect for a write or
// failed outright. Err holds the underlying fault, if any.
type StoreFailureError struct {
	Message string
	Err     error
}

func (e *StoreFailureError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StoreFailureError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthenticated creates an UnauthenticatedError with a formatted message.
func ErrUnauthenticated(format string, args ...interface{}) *UnauthenticatedError {
	return &UnauthenticatedError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrNameTaken reports that a group name is already in use.
func ErrNameTaken() *ConflictError {
	return &ConflictError{Reason: ConflictNameTaken, Message: "This name group already taken!"}
}

// ErrAlreadyMember reports that the user already belongs to the group.
func ErrAlreadyMember() *ConflictError {
	return &ConflictError{Reason: ConflictAlreadyMember, Message: "This user is already in the group"}
}

// ErrStoreFailure creates a StoreFailureError wrapping err (which may be nil).
func ErrStoreFailure(err error, format string, args ...interface{}) *StoreFailureError {
	return &StoreFailureError{Message: fmt.Sprintf(format, args...), Err: err}
}

// IsNameTaken reports whether err is a name-uniqueness conflict.
func IsNameTaken(err error) bool {
	var c *ConflictError
	return errors.As(err, &c) && c.Reason == ConflictNameTaken
}

// IsAlreadyMember reports whether err is a duplicate-membership conflict.
func IsAlreadyMember(err error) bool {
	var c *ConflictError
	return errors.As(err, &c) && c.Reason == ConflictAlreadyMember
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
