package jsondom

import (
	"strconv"
)

const errorPrefix = "jsondom: "

// Error matches errors returned by this package according to errors.Is.
const Error = domError("jsondom error")

type domError string

func (e domError) Error() string        { return string(e) }
func (e domError) Is(target error) bool { return e == target || target == Error }

// Writer misuse kinds. A *StateError wraps exactly one of these,
// so errors.Is can classify the violated rule without string matching.
var (
	// ErrEndOfDocument: the single top-level value is complete and
	// nothing further may be written.
	ErrEndOfDocument = &domSentinel{"writer is at end of document"}
	// ErrNameExpected: the current object requires a string name,
	// but a non-string value or a container start was written.
	ErrNameExpected = &domSentinel{"object name expected"}
	// ErrValueExpected: an object name has been written and its member
	// value is still pending.
	ErrValueExpected = &domSentinel{"object member value expected"}
	// ErrMismatchedEnd: the end delimiter does not match the innermost
	// open container.
	ErrMismatchedEnd = &domSentinel{"mismatched end of object or array"}
	// ErrIncomplete: the writer was finalized while a container is
	// still open or before any value was written.
	ErrIncomplete = &domSentinel{"document is incomplete"}
)

type domSentinel struct{ str string }

func (e *domSentinel) Error() string        { return errorPrefix + e.str }
func (e *domSentinel) Is(target error) bool { return e == target || target == Error }

// StateError reports a Writer call that is illegal in the writer's
// current grammar state. It indicates misuse of the Writer API rather
// than bad data; the call sequence must be corrected, not retried.
//
// The contents of this error as produced by this package may change over time.
type StateError struct {
	// Op is the attempted operation, e.g. "write string".
	Op string
	// State describes what the writer was expecting, e.g.
	// "expecting object name or end of object".
	State string

	err error // one of the misuse kind sentinels
}

func (e *StateError) Error() string {
	return errorPrefix + "cannot " + e.Op + " while " + e.State
}
func (e *StateError) Unwrap() error        { return e.err }
func (e *StateError) Is(target error) bool { return e == target || target == Error }

// TypeError reports an attempt to extract a typed view from a Value
// whose variant does not match.
type TypeError struct {
	// Want is the kind the accessor requires.
	Want Kind
	// Got is the kind of the value it was applied to.
	Got Kind
}

func (e *TypeError) Error() string {
	return errorPrefix + "cannot use " + e.Got.String() + " as " + e.Want.String()
}
func (e *TypeError) Is(target error) bool { return e == target || target == Error }

// RangeError reports a numeric narrowing that would lose information:
// a fractional number requested as an exact integer, a magnitude beyond
// the target type, or a non-finite float with no JSON representation.
type RangeError struct {
	// Lexeme is the number's decimal text (or a float formatting of it).
	Lexeme string
	// Target names the requested representation, e.g. "int32".
	Target string
	// Fractional indicates the violation is a discarded fraction
	// rather than an out-of-range magnitude.
	Fractional bool
}

func (e *RangeError) Error() string {
	reason := "out of range for"
	if e.Fractional {
		reason = "has a fractional part; cannot be"
	}
	return errorPrefix + "number " + e.Lexeme + " " + reason + " " + e.Target
}
func (e *RangeError) Is(target error) bool { return e == target || target == Error }

// NotFoundError reports a strict lookup of an object member or array
// element that is not present. It is deliberately distinct from TypeError:
// absence is a data condition, not a shape mismatch.
type NotFoundError struct {
	// Name is the missing object member name, if the lookup was by name.
	Name string
	// Index is the out-of-range array index, if the lookup was by index.
	Index int

	byIndex bool
}

func (e *NotFoundError) Error() string {
	if e.byIndex {
		return errorPrefix + "array index " + strconv.Itoa(e.Index) + " out of range"
	}
	return errorPrefix + "object member " + strconv.Quote(e.Name) + " not found"
}
func (e *NotFoundError) Is(target error) bool { return e == target || target == Error }

// SyntaxError describes a JSON syntax error detected by the Parser.
//
// The contents of this error as produced by this package may change over time.
type SyntaxError struct {
	// Offset indicates that an error occurred after processing Offset bytes.
	Offset int64
	// Line and Column locate the error in the input, both one-indexed.
	// Column counts bytes, not display width.
	Line, Column int

	str string
}

func (e *SyntaxError) Error() string {
	return errorPrefix + e.str + " at line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column)
}
func (e *SyntaxError) Is(target error) bool { return e == target || target == Error }
