// Package errors defines the domain error taxonomy shared by services
// and handlers.
package errors

import "fmt"

// DomainError is a stable, user-presentable error. Code identifies the
// category; Message is safe to render to the client as-is.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error carrying a specific message
// while keeping the category code.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Is matches domain errors by code so wrapped copies created via
// WithMessage still compare equal to the category sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
