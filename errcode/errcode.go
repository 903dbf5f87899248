// Package errcode defines the stable error taxonomy shared by every
// genlab package. Each variant is its own type so callers can match on it
// with errors.As instead of string-sniffing a message.
package errcode

import "fmt"

// NotImplementedError marks an operation reserved for future use.
type NotImplementedError struct{ Label string }

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %q", e.Label)
}

// NotSetError marks a precondition missing at Lab.Start time.
type NotSetError struct{ Label string }

func (e *NotSetError) Error() string {
	return fmt.Sprintf("element %q not set", e.Label)
}

// InsuffisantPopulationError reports LabConfig.PopulationTotal under the floor.
type InsuffisantPopulationError struct{ Got, Min int }

func (e *InsuffisantPopulationError) Error() string {
	return fmt.Sprintf("insufficient population: got %d, need at least %d", e.Got, e.Min)
}

// IdDoesntExistError reports an AlgoID out of range.
type IdDoesntExistError struct{ ID int }

func (e *IdDoesntExistError) Error() string {
	return fmt.Sprintf("algo id %d does not exist", e.ID)
}

// DatasetDoesntExistError reports removal of an unknown dataset id.
type DatasetDoesntExistError struct{ ID string }

func (e *DatasetDoesntExistError) Error() string {
	return fmt.Sprintf("dataset %q does not exist", e.ID)
}

// SizeError reports a bulk-apply or genome-count mismatch.
type SizeError struct {
	Field        string
	Expected, Got int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("size error for %q: expected %d got %d", e.Field, e.Expected, e.Got)
}

// ValidationError reports an unknown method name or out-of-range parameter.
type ValidationError struct{ Label string }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q", e.Label)
}

// CodeError marks an internal invariant violation that should be
// unreachable on well-formed inputs. Fatal to the current run, not to the
// process.
type CodeError struct{ Label string }

func (e *CodeError) Error() string {
	return fmt.Sprintf("internal invariant violated: %q", e.Label)
}

// JsonSerializationError wraps a JSON marshal/unmarshal failure verbatim.
type JsonSerializationError struct{ Inner error }

func (e *JsonSerializationError) Error() string {
	return fmt.Sprintf("json serialization error: %v", e.Inner)
}

func (e *JsonSerializationError) Unwrap() error { return e.Inner }

// SpecialDataError marks an algo-level rejection of a side-channel message.
type SpecialDataError struct{ Payload string }

func (e *SpecialDataError) Error() string {
	return fmt.Sprintf("special data error: %s", e.Payload)
}

// Stable error codes for the host facade JSON surface (spec §6).
const (
	CodeMapValidation     = "LMV1"
	CodeUnknownMethodField = "BSD1"
	CodeUnknownMethodName = "BSD2"
	CodeMissingScopeField = "BSDExO1"
)
