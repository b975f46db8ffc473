package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidate matches any *NoCandidateError via errors.Is.
	ErrNoCandidate = errors.New("no candidate vehicle")
	// ErrIndexSealed is returned when inserting into an index after loading finished.
	ErrIndexSealed = errors.New("vehicle index is sealed")
)

// MalformedRecordError reports a record that could not be fully decoded,
// typically because the stream ended in the middle of it.
type MalformedRecordError struct {
	Record int    // zero-based position of the record in the stream
	Offset int64  // byte offset at which the record starts
	Field  string // field being read when decoding failed
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record #%d at byte offset %d: read %s: %v", e.Record, e.Offset, e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// DuplicateIDError reports a record reusing an id already present in the index.
// First and Second are the zero-based stream positions of both records.
type DuplicateIDError struct {
	ID     int32
	First  int
	Second int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate vehicle id %d: records #%d and #%d", e.ID, e.First, e.Second)
}

type NoCandidateError struct {
	PointKey int
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("reference point %d: %v", e.PointKey, ErrNoCandidate)
}

func (e *NoCandidateError) Is(target error) bool { return target == ErrNoCandidate }
