// Package errors provides the launch request error taxonomy.
//
// Every failure the resolver can report has a sentinel value so callers can
// branch with errors.Is. The typed errors below carry the user-displayable
// reason and unwrap to their sentinel.
package errors

import (
	"errors"
	"fmt"
)

// Launch request failures
var (
	ErrUnknownScheme         = errors.New("launch: unknown URL scheme")
	ErrUnsupportedCommand    = errors.New("launch: unsupported command")
	ErrInvalidGroupSize      = errors.New("launch: invalid group size")
	ErrMixedLaunchMode       = errors.New("launch: mixed local and DICOMweb launch")
	ErrMissingStudyUID       = errors.New("launch: missing study UID")
	ErrIncompleteCredentials = errors.New("launch: incomplete credentials")
	ErrAmbiguousCredentials  = errors.New("launch: ambiguous credentials")
	ErrMalformedAuth         = errors.New("launch: malformed auth")
	ErrMalformedOpenGroup    = errors.New("launch: malformed open_group")
	ErrOpenGroupOutOfRange   = errors.New("launch: open_group out of range")
	ErrMalformedURL          = errors.New("launch: malformed URL")
	ErrMissingDicomwebURL    = errors.New("launch: missing DICOMweb URL")
	ErrAmbiguousParameters   = errors.New("launch: ambiguous parameters")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrUnknownScheme, "UnknownScheme"},
	{ErrUnsupportedCommand, "UnsupportedCommand"},
	{ErrInvalidGroupSize, "InvalidGroupSize"},
	{ErrMixedLaunchMode, "MixedLaunchMode"},
	{ErrMissingStudyUID, "MissingStudyUID"},
	{ErrIncompleteCredentials, "IncompleteCredentials"},
	{ErrAmbiguousCredentials, "AmbiguousCredentials"},
	{ErrMalformedAuth, "MalformedAuth"},
	{ErrMalformedOpenGroup, "MalformedOpenGroup"},
	{ErrOpenGroupOutOfRange, "OpenGroupOutOfRange"},
	{ErrMalformedURL, "MalformedURL"},
	{ErrMissingDicomwebURL, "MissingDicomwebURL"},
	{ErrAmbiguousParameters, "AmbiguousParameters"},
}

// Code returns the taxonomy name of err (e.g. "InvalidGroupSize"), or
// "Unknown" when err does not wrap one of the launch sentinels.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "Unknown"
}

// LaunchError represents a launch request validation failure
type LaunchError struct {
	Kind  error  // one of the Err* sentinels
	Param string // offending query parameter, if any
	Msg   string
}

func (e *LaunchError) Error() string {
	return e.Msg
}

func (e *LaunchError) Unwrap() error {
	return e.Kind
}

// NewLaunchError creates a new launch error
func NewLaunchError(kind error, param, msg string) *LaunchError {
	return &LaunchError{
		Kind:  kind,
		Param: param,
		Msg:   msg,
	}
}

// Errorf creates a launch error with a formatted message
func Errorf(kind error, param, format string, args ...any) *LaunchError {
	return NewLaunchError(kind, param, fmt.Sprintf(format, args...))
}

// GroupSizeError reports a group that does not hold exactly 1 or 4 entries
type GroupSizeError struct {
	Param string // parameter the group came from ("group", "groups", "group_series", "args", ...)
	Index int    // zero-based group index across the whole request
	Size  int
	Noun  string // what the group holds, e.g. "paths" or "series UIDs"
}

func (e *GroupSizeError) Error() string {
	return fmt.Sprintf("%s: group %d has %d %s; each group must contain exactly 1 or 4",
		e.Param, e.Index, e.Size, e.Noun)
}

func (e *GroupSizeError) Unwrap() error {
	return ErrInvalidGroupSize
}

// NewGroupSizeError creates a new group size error
func NewGroupSizeError(param string, index, size int, noun string) *GroupSizeError {
	return &GroupSizeError{
		Param: param,
		Index: index,
		Size:  size,
		Noun:  noun,
	}
}

// Reason returns the user-displayable reason for err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Msg
	}
	return err.Error()
}
