// Package errors provides error handling and the warning channel shared by
// every id3tree package. Errors carry stack traces via cockroachdb/errors;
// warnings are non-fatal conditions that are reported through Warn.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("id3tree-Warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a structured warning sink. It takes priority
// over the plain handler. Passing nil restores the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn reports a warning.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// UnseenValueWarning is raised when a record carries a feature value that
// never appeared under a split during training. Prediction continues in the
// subtree of Fallback.
type UnseenValueWarning struct {
	Feature  string
	Value    string
	Fallback string
}

func (w *UnseenValueWarning) Error() string {
	return fmt.Sprintf("value %q of feature %q was not seen during training, falling back to %q", w.Value, w.Feature, w.Fallback)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UnseenValueWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("feature", w.Feature).
		Str("value", w.Value).
		Str("fallback", w.Fallback).
		Str("type", "UnseenValueWarning")
}

// NewUnseenValueWarning creates an UnseenValueWarning.
func NewUnseenValueWarning(feature, value, fallback string) *UnseenValueWarning {
	return &UnseenValueWarning{Feature: feature, Value: value, Fallback: fallback}
}

// MissingFeatureWarning is raised when a record has no entry for the
// feature a split tests. No label can be produced for that record.
type MissingFeatureWarning struct {
	Feature string
}

func (w *MissingFeatureWarning) Error() string {
	return fmt.Sprintf("feature %q is missing from the record, no classification found", w.Feature)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *MissingFeatureWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("feature", w.Feature).
		Str("type", "MissingFeatureWarning")
}

// NewMissingFeatureWarning creates a MissingFeatureWarning.
func NewMissingFeatureWarning(feature string) *MissingFeatureWarning {
	return &MissingFeatureWarning{Feature: feature}
}

// UndefinedMetricWarning is raised when a metric cannot be computed, for
// example precision of a label that was never predicted.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates an UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when a model is used before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("id3tree: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError reports two inputs whose lengths must agree but do not.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("id3tree: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got})
}

// ValidationError reports input that violates a precondition, such as a
// dataset without its target column.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("id3tree: validation failed for '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError reports an argument with an inappropriate value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("id3tree: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError is a general failure of a model operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("id3tree: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("id3tree: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned for an input table without rows.
	ErrEmptyData = New("input table is empty")

	// ErrTreeNotFound is returned by stores that hold no tree under a name.
	ErrTreeNotFound = New("tree not found")
)
