package jsondom

// writeState is one entry of the writer's grammar stack. Each state
// encodes exactly what the grammar permits next, so every Writer call
// reduces to a lookup against the top of the stack: either the call is
// legal and the table names the prologue, whitespace rule, and successor,
// or it is illegal and the state classifies the misuse.
//
// This is a push-down automaton over named states rather than counters:
// the stack depth mirrors container nesting, with the document states
// at the bottom.
type writeState uint8

const (
	// stateSingleValue is the initial state: exactly one top-level
	// value may be written.
	stateSingleValue writeState = iota
	// stateEndOfDocument follows the top-level value: nothing further
	// may be written, and the writer may be finalized.
	stateEndOfDocument
	// stateFirstNameOrEnd immediately follows '{'.
	stateFirstNameOrEnd
	// stateNameOrEnd follows a completed object member; a comma is
	// emitted before the next name.
	stateNameOrEnd
	// stateMemberValue follows an object name; a colon is emitted
	// before the member value.
	stateMemberValue
	// stateFirstElemOrEnd immediately follows '['.
	stateFirstElemOrEnd
	// stateElemOrEnd follows an array element; a comma is emitted
	// before the next element.
	stateElemOrEnd
)

// String describes the state from the caller's perspective,
// for use in StateError messages.
func (s writeState) String() string {
	switch s {
	case stateSingleValue:
		return "expecting a single top-level value"
	case stateEndOfDocument:
		return "expecting end of document"
	case stateFirstNameOrEnd:
		return "expecting first object name or end of object"
	case stateNameOrEnd:
		return "expecting object name or end of object"
	case stateMemberValue:
		return "expecting object member value"
	case stateFirstElemOrEnd:
		return "expecting first array element or end of array"
	case stateElemOrEnd:
		return "expecting array element or end of array"
	default:
		return "in unknown state"
	}
}

// stateRule is one row of the transition table: how a state treats an
// incoming item (value or name) that it permits.
type stateRule struct {
	// prologue is the separator emitted before the item: ',', ':', or 0.
	prologue byte
	// newline reports whether, in expand mode, the item begins on a
	// new indented line.
	newline bool
	// next is the successor state once the item is complete.
	next writeState
}

// valueRules is the transition table for writing a value (any scalar,
// or a whole container treated as one value). States that forbid a
// value here are rejected by checkValue before the table is consulted.
var valueRules = [...]stateRule{
	stateSingleValue:    {prologue: 0, newline: false, next: stateEndOfDocument},
	stateMemberValue:    {prologue: ':', newline: false, next: stateNameOrEnd},
	stateFirstElemOrEnd: {prologue: 0, newline: true, next: stateElemOrEnd},
	stateElemOrEnd:      {prologue: ',', newline: true, next: stateElemOrEnd},
}

// nameRules is the transition table for writing an object name.
var nameRules = [...]stateRule{
	stateFirstNameOrEnd: {prologue: 0, newline: true, next: stateMemberValue},
	stateNameOrEnd:      {prologue: ',', newline: true, next: stateMemberValue},
}

// isNameState reports whether a string written in s would be an object name.
func (s writeState) isNameState() bool {
	return s == stateFirstNameOrEnd || s == stateNameOrEnd
}

// checkValue classifies writing a non-string value (or starting a
// container) in state s. A nil result means valueRules[s] applies.
func (s writeState) checkValue(op string) error {
	switch s {
	case stateEndOfDocument:
		return &StateError{Op: op, State: s.String(), err: ErrEndOfDocument}
	case stateFirstNameOrEnd, stateNameOrEnd:
		return &StateError{Op: op, State: s.String(), err: ErrNameExpected}
	default:
		return nil
	}
}

// checkEndObject classifies ending an object in state s.
func (s writeState) checkEndObject() error {
	switch s {
	case stateFirstNameOrEnd, stateNameOrEnd:
		return nil
	case stateMemberValue:
		return &StateError{Op: "end object", State: s.String(), err: ErrValueExpected}
	case stateEndOfDocument:
		return &StateError{Op: "end object", State: s.String(), err: ErrEndOfDocument}
	default:
		return &StateError{Op: "end object", State: s.String(), err: ErrMismatchedEnd}
	}
}

// checkEndArray classifies ending an array in state s.
func (s writeState) checkEndArray() error {
	switch s {
	case stateFirstElemOrEnd, stateElemOrEnd:
		return nil
	case stateEndOfDocument:
		return &StateError{Op: "end array", State: s.String(), err: ErrEndOfDocument}
	default:
		return &StateError{Op: "end array", State: s.String(), err: ErrMismatchedEnd}
	}
}

// stateStack is the writer's grammar stack, innermost state on top.
// It always holds at least one entry; the terminal check never pops
// the last state, so misuse after finalization still classifies cleanly.
type stateStack []writeState

func newStateStack() stateStack {
	return stateStack{stateSingleValue}
}

func (m stateStack) top() writeState {
	return m[len(m)-1]
}

func (m stateStack) setTop(s writeState) {
	m[len(m)-1] = s
}

func (m *stateStack) push(s writeState) {
	*m = append(*m, s)
}

func (m *stateStack) pop() {
	*m = (*m)[:len(*m)-1]
}

// depth is the number of open containers.
func (m stateStack) depth() int {
	return len(m) - 1
}
