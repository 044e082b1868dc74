package flightregions

import(
	"errors"
	"fmt"
)

var(
	ErrAirportNotFound    = errors.New("airport not found")
	ErrRegionNotFound     = errors.New("region not found")
	ErrOutputWriteFailure = errors.New("output write failed")
)

// RecordError says which flight record, and which of its fields, stopped the run.
type RecordError struct {
	Index  int    // position in the input, from zero
	Field  string // e.g. AirportFrom, or StateTo for a region miss
	Code   string // the value that didn't resolve
	Err    error
}

func (e *RecordError)Error() string {
	return fmt.Sprintf("record %d: %s=%q: %v", e.Index, e.Field, e.Code, e.Err)
}

func (e *RecordError)Unwrap() error { return e.Err }

// OutputError is returned when the enriched artifact could not be persisted. Nothing was
// left behind at Path.
type OutputError struct {
	Path  string
	Err   error
}

func (e *OutputError)Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputError)Unwrap() error { return e.Err }
func (e *OutputError)Is(target error) bool { return target == ErrOutputWriteFailure }
