// Package errors provides the structured error and warning system used across
// the report pipeline. Errors carry enough context to tell the operator which
// input line or output artifact failed; warnings flag recoverable conditions
// such as a grouping cell with no observations.
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
		log.Printf("stagereport-warning: %v\n", w)
	}
)

// SetWarningHandler replaces the handler invoked for every warning raised by
// the pipeline. Tests use this to capture warnings; callers may also silence
// them entirely.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn raises a warning through the configured handler. Warnings never abort
// the pipeline.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// EmptyGroupWarning is raised when a (stage class, rider class) cell has no
// observations. The corresponding summary cell is skipped rather than
// reported as NaN.
type EmptyGroupWarning struct {
	StageClass string
	RiderClass string
}

func (w *EmptyGroupWarning) Error() string {
	return fmt.Sprintf("no observations for rider class %q on %q stages; cell skipped", w.RiderClass, w.StageClass)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *EmptyGroupWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("stage_class", w.StageClass).
		Str("rider_class", w.RiderClass).
		Str("type", "EmptyGroupWarning")
}

// NewEmptyGroupWarning creates a new EmptyGroupWarning.
func NewEmptyGroupWarning(stageClass, riderClass string) *EmptyGroupWarning {
	return &EmptyGroupWarning{StageClass: stageClass, RiderClass: riderClass}
}

// MissingColumnWarning is raised when an optional column (such as the rider
// name) is absent from the input header. Views that need the column are
// skipped.
type MissingColumnWarning struct {
	Column string
	View   string
}

func (w *MissingColumnWarning) Error() string {
	return fmt.Sprintf("input has no %q column; %s skipped", w.Column, w.View)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *MissingColumnWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("view", w.View).
		Str("type", "MissingColumnWarning")
}

// NewMissingColumnWarning creates a new MissingColumnWarning.
func NewMissingColumnWarning(column, view string) *MissingColumnWarning {
	return &MissingColumnWarning{Column: column, View: view}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// InputError reports that the source table could not be read at all, most
// commonly because the file does not exist. Nothing has been written when it
// is returned.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("stagereport: cannot read input table at %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		AnErr("cause", e.Err).
		Str("type", "InputError")
}

// NewInputError creates a new InputError with a stack trace attached.
func NewInputError(path string, err error) error {
	return errors.WithStack(&InputError{Path: path, Err: err})
}

// MalformedInputError reports a source row that does not agree with the
// header: wrong column count, unparseable points value, or an unterminated
// quote. Line counts from 1 and includes comment lines.
type MalformedInputError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("stagereport: malformed input at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("stagereport: malformed input at %s:%d: %s", e.Path, e.Line, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *MalformedInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("line", e.Line).
		Str("reason", e.Reason).
		Str("type", "MalformedInputError")
}

// NewMalformedInputError creates a new MalformedInputError with a stack trace
// attached.
func NewMalformedInputError(path string, line int, reason string) error {
	return errors.WithStack(&MalformedInputError{Path: path, Line: line, Reason: reason})
}

// OutputError reports a failed filesystem write while producing an artifact.
// Artifacts rendered before the failure may already exist on disk.
type OutputError struct {
	Path string
	Op   string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("stagereport: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *OutputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("op", e.Op).
		AnErr("cause", e.Err).
		Str("type", "OutputError")
}

// NewOutputError creates a new OutputError with a stack trace attached.
func NewOutputError(op, path string, err error) error {
	return errors.WithStack(&OutputError{Path: path, Op: op, Err: err})
}

// SingularModelError reports that the interaction design matrix was rank
// deficient and the diagnostic model could not be fitted.
type SingularModelError struct {
	Op  string
	Err error
}

func (e *SingularModelError) Error() string {
	return fmt.Sprintf("stagereport: %s: design matrix is singular: %v", e.Op, e.Err)
}

func (e *SingularModelError) Unwrap() error { return e.Err }

// NewSingularModelError creates a new SingularModelError with a stack trace
// attached.
func NewSingularModelError(op string, err error) error {
	return errors.WithStack(&SingularModelError{Op: op, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyDataset is returned when the input table parses but contains
	// no data rows.
	ErrEmptyDataset = New("empty dataset")
)
