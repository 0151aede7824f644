package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural and sequence failures
var (
	ErrUnknownHelixReference = errors.New("unknown helix reference")
	ErrMalformedConnectivity = errors.New("malformed connectivity")
	ErrUnknownSequenceName   = errors.New("unknown sequence name")
	ErrInvalidNucleotide     = errors.New("invalid nucleotide")
)

// UnknownHelixError reports a slot that points at a helix missing from the design
type UnknownHelixError struct {
	From  Link
	Track Track
	Helix int
}

func (e *UnknownHelixError) Error() string {
	return fmt.Sprintf("%s slot %s references unknown helix %d", e.Track, e.From, e.Helix)
}

func (e *UnknownHelixError) Is(target error) bool {
	return target == ErrUnknownHelixReference
}

// ConnectivityError reports a broken or runaway strand chain
type ConnectivityError struct {
	At     Link
	Track  Track
	Reason string
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s slot %s: %s", e.Track, e.At, e.Reason)
}

func (e *ConnectivityError) Is(target error) bool {
	return target == ErrMalformedConnectivity
}

// SequenceNameError reports a sequence name absent from the library
type SequenceNameError struct {
	Name string
}

func (e *SequenceNameError) Error() string {
	return fmt.Sprintf("sequence name %q is not recognized", e.Name)
}

func (e *SequenceNameError) Is(target error) bool {
	return target == ErrUnknownSequenceName
}
