package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Cargo errors

type NotEnoughSpaceError struct {
	*DomainError
	Required  int
	Available int
}

func NewNotEnoughSpaceError(required, available int) *NotEnoughSpaceError {
	return &NotEnoughSpaceError{
		DomainError: &DomainError{Message: fmt.Sprintf("not enough cargo space: need %d, have %d", required, available)},
		Required:    required,
		Available:   available,
	}
}

type NotEnoughItemsError struct {
	*DomainError
	Required int
	Current  int
}

func NewNotEnoughItemsError(required, current int) *NotEnoughItemsError {
	return &NotEnoughItemsError{
		DomainError: &DomainError{Message: fmt.Sprintf("not enough items in cargo: need %d, have %d", required, current)},
		Required:    required,
		Current:     current,
	}
}

// Fuel errors

type InsufficientFuelError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientFuelError(required, available int) *InsufficientFuelError {
	return &InsufficientFuelError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient fuel: need %d, have %d", required, available)},
		Required:    required,
		Available:   available,
	}
}
