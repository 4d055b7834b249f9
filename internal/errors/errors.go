// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound    = errors.New("trade not found")
	ErrInvalidRecord    = errors.New("invalid trade record")
	ErrInvalidTradeType = errors.New("invalid trade type")
	ErrFeatureLocked    = errors.New("feature not available on current plan")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDatabaseError    = errors.New("database error")
	ErrExportFailed     = errors.New("export failed")
)

// ValidationError represents a validation error on a trade record field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StoreError represents an error from the persistence layer.
type StoreError struct {
	Operation string
	TradeID   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.TradeID != "" {
		return fmt.Sprintf("store error [%s] %s: %v", e.Operation, e.TradeID, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, tradeID string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		TradeID:   tradeID,
		Err:       err,
	}
}

// FeatureError represents a plan-gated feature denial.
type FeatureError struct {
	FeatureID string
	PlanID    string
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature %q is not available on plan %q", e.FeatureID, e.PlanID)
}

func (e *FeatureError) Unwrap() error {
	return ErrFeatureLocked
}

// NewFeatureError creates a new FeatureError.
func NewFeatureError(featureID, planID string) *FeatureError {
	return &FeatureError{
		FeatureID: featureID,
		PlanID:    planID,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
