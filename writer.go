package jsondom

import (
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/jsondom/jsondom/internal/jsonwire"
)

// Writer is a builder-style emitter of a single JSON document.
//
// Its grammar stack makes malformed output impossible: every call is
// checked against the innermost open construct and an illegal call
// fails immediately with a *StateError, before any output is produced.
// Separators (commas and colons) and, in expand mode, newlines and
// indentation are emitted automatically. For example:
//
//	w := jsondom.NewBuffer()
//	w.BeginObject()       // {
//	w.Name("verbose")     // "verbose"
//	w.Bool(false)         // :false
//	w.Name("logLevel")    // ,"logLevel"
//	w.Int(0)              // :0
//	w.EndObject()         // }
//
// Output is buffered internally; Close verifies the document is complete
// and flushes the buffer to the underlying sink, if any.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink    io.Writer // may be nil for in-memory use
	buf     []byte
	flushed int
	stack   stateStack
	opts    options
	closed  bool
}

// NewWriter constructs a Writer that flushes to w on Close.
func NewWriter(w io.Writer, opts ...Options) *Writer {
	return &Writer{sink: w, stack: newStateStack(), opts: makeOptions(opts)}
}

// NewBuffer constructs an in-memory Writer; retrieve the finished
// document with Bytes or String.
func NewBuffer(opts ...Options) *Writer {
	return NewWriter(nil, opts...)
}

// prologue emits the separator and whitespace that precede an item
// permitted by rule at the current depth.
func (w *Writer) prologue(rule stateRule) {
	if rule.prologue != 0 {
		w.buf = append(w.buf, rule.prologue)
	}
	if !w.opts.expand {
		return
	}
	switch {
	case rule.prologue == ':':
		w.buf = append(w.buf, ' ')
	case rule.newline:
		w.newlineIndent(w.stack.depth())
	}
}

func (w *Writer) newlineIndent(depth int) {
	w.buf = append(w.buf, '\n')
	for i := 0; i < depth; i++ {
		w.buf = append(w.buf, w.opts.indent...)
	}
}

// beforeValue runs the legality check and prologue for a non-string
// value (or a container start) named op, and returns the applicable rule.
func (w *Writer) beforeValue(op string) (stateRule, error) {
	s := w.stack.top()
	if err := s.checkValue(op); err != nil {
		return stateRule{}, err
	}
	rule := valueRules[s]
	w.prologue(rule)
	return rule, nil
}

// writeLexeme emits a preformatted scalar lexeme as one value.
func (w *Writer) writeLexeme(op, lexeme string) error {
	rule, err := w.beforeValue(op)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, lexeme...)
	w.stack.setTop(rule.next)
	return nil
}

// Null writes the JSON null literal.
func (w *Writer) Null() error {
	return w.writeLexeme("write null", "null")
}

// Bool writes a JSON boolean.
func (w *Writer) Bool(b bool) error {
	if b {
		return w.writeLexeme("write boolean", "true")
	}
	return w.writeLexeme("write boolean", "false")
}

// Int writes a JSON number from an int64.
// The narrower signed widths all promote losslessly to int64.
func (w *Writer) Int(n int64) error {
	return w.writeLexeme("write number", strconv.FormatInt(n, 10))
}

// Uint writes a JSON number from a uint64.
func (w *Writer) Uint(n uint64) error {
	return w.writeLexeme("write number", strconv.FormatUint(n, 10))
}

// BigInt writes a JSON number from an arbitrary-precision integer.
// A nil input is written as zero.
func (w *Writer) BigInt(n *big.Int) error {
	if n == nil {
		return w.writeLexeme("write number", "0")
	}
	return w.writeLexeme("write number", n.String())
}

// Decimal writes a JSON number from an arbitrary-precision decimal.
func (w *Writer) Decimal(d decimal.Decimal) error {
	return w.writeLexeme("write number", d.String())
}

// Float64 writes a JSON number from a float64 using the shortest
// round-trippable decimal form. Non-finite values fail with a
// *RangeError unless the NonFiniteLiterals option is set, in which case
// they render as the literals NaN, Infinity, and -Infinity.
func (w *Writer) Float64(f float64) error {
	return w.float(f, 64)
}

// Float32 writes a JSON number from a float32 under the same rules as
// Float64.
func (w *Writer) Float32(f float32) error {
	return w.float(float64(f), 32)
}

func (w *Writer) float(f float64, bits int) error {
	if lit := nonFiniteLexeme(f); lit != "" {
		if !w.opts.nonFinite {
			return &RangeError{Lexeme: lit, Target: "JSON number"}
		}
		return w.writeLexeme("write number", lit)
	}
	rule, err := w.beforeValue("write number")
	if err != nil {
		return err
	}
	w.buf = jsonwire.AppendFloat(w.buf, f, bits)
	w.stack.setTop(rule.next)
	return nil
}

// String writes a JSON string. In an object, a string written where a
// name is expected becomes the member name; everywhere else it is a value.
func (w *Writer) String(s string) error {
	top := w.stack.top()
	if top.isNameState() {
		rule := nameRules[top]
		w.prologue(rule)
		w.buf = jsonwire.AppendQuote(w.buf, s)
		w.stack.setTop(rule.next)
		return nil
	}
	rule, err := w.beforeValue("write string")
	if err != nil {
		return err
	}
	w.buf = jsonwire.AppendQuote(w.buf, s)
	w.stack.setTop(rule.next)
	return nil
}

// Stringf writes a JSON string rendered from a format template,
// as a convenience over String(fmt.Sprintf(...)).
func (w *Writer) Stringf(format string, args ...any) error {
	return w.String(fmt.Sprintf(format, args...))
}

// Name writes an object member name. Unlike String it refuses to act as
// a value, so misplaced calls surface as state errors instead of
// silently emitting a string element.
func (w *Writer) Name(name string) error {
	top := w.stack.top()
	if !top.isNameState() {
		err := ErrMismatchedEnd
		switch top {
		case stateEndOfDocument:
			err = ErrEndOfDocument
		case stateMemberValue:
			err = ErrValueExpected
		}
		return &StateError{Op: "write object name", State: top.String(), err: err}
	}
	return w.String(name)
}

// BeginObject opens a JSON object. Every BeginObject must be balanced
// by an EndObject before the document can complete.
func (w *Writer) BeginObject() error {
	if _, err := w.beforeValue("begin object"); err != nil {
		return err
	}
	w.buf = append(w.buf, '{')
	w.stack.push(stateFirstNameOrEnd)
	return nil
}

// EndObject closes the innermost open object. The enclosing state then
// advances as if a single value had been written.
func (w *Writer) EndObject() error {
	top := w.stack.top()
	if err := top.checkEndObject(); err != nil {
		return err
	}
	w.stack.pop()
	if w.opts.expand && top == stateNameOrEnd {
		w.newlineIndent(w.stack.depth())
	}
	w.buf = append(w.buf, '}')
	w.stack.setTop(valueRules[w.stack.top()].next)
	return nil
}

// BeginArray opens a JSON array.
func (w *Writer) BeginArray() error {
	if _, err := w.beforeValue("begin array"); err != nil {
		return err
	}
	w.buf = append(w.buf, '[')
	w.stack.push(stateFirstElemOrEnd)
	return nil
}

// EndArray closes the innermost open array.
func (w *Writer) EndArray() error {
	top := w.stack.top()
	if err := top.checkEndArray(); err != nil {
		return err
	}
	w.stack.pop()
	if w.opts.expand && top == stateElemOrEnd {
		w.newlineIndent(w.stack.depth())
	}
	w.buf = append(w.buf, ']')
	w.stack.setTop(valueRules[w.stack.top()].next)
	return nil
}

// Value renders an entire value tree through the writer, driving the
// same state machine as the granular calls.
func (w *Writer) Value(v Value) error {
	switch v.Kind() {
	case KindNull:
		return w.Null()
	case KindBool:
		return w.Bool(v.b)
	case KindString:
		return w.String(v.str)
	case KindNumber:
		if isNonFiniteLexeme(v.str) && !w.opts.nonFinite {
			return &RangeError{Lexeme: v.str, Target: "JSON number"}
		}
		return w.writeLexeme("write number", v.str)
	case KindArray:
		if err := w.BeginArray(); err != nil {
			return err
		}
		for i := range v.arr {
			if err := w.Value(v.arr[i]); err != nil {
				return err
			}
		}
		return w.EndArray()
	case KindObject:
		if err := w.BeginObject(); err != nil {
			return err
		}
		for i := range v.obj {
			if err := w.Name(v.obj[i].Name); err != nil {
				return err
			}
			if err := w.Value(v.obj[i].Value); err != nil {
				return err
			}
		}
		return w.EndObject()
	default:
		return &TypeError{Want: KindNull, Got: v.Kind()}
	}
}

// Raw embeds data, which must be exactly one well-formed JSON document,
// as a single value. The data is validated before emission so that a
// Writer can never be tricked into producing malformed output; it is
// then written verbatim, preserving its own formatting.
func (w *Writer) Raw(data []byte) error {
	if _, err := Parse(data, NonFiniteLiterals(w.opts.nonFinite)); err != nil {
		return err
	}
	rule, err := w.beforeValue("write raw value")
	if err != nil {
		return err
	}
	w.buf = append(w.buf, data...)
	w.stack.setTop(rule.next)
	return nil
}

// Embed writes the full contents of a nested writer as a single value.
// The nested writer must hold a complete document.
func (w *Writer) Embed(nested *Writer) error {
	data, err := nested.Bytes()
	if err != nil {
		return err
	}
	rule, err := w.beforeValue("embed nested writer")
	if err != nil {
		return err
	}
	w.buf = append(w.buf, data...)
	w.stack.setTop(rule.next)
	return nil
}

// Strings writes a whole JSON array of strings.
func (w *Writer) Strings(ss []string) error {
	return writeArray(w, ss, (*Writer).String)
}

// Ints writes a whole JSON array of integers.
func (w *Writer) Ints(ns []int64) error {
	return writeArray(w, ns, (*Writer).Int)
}

// Floats writes a whole JSON array of numbers.
func (w *Writer) Floats(fs []float64) error {
	return writeArray(w, fs, (*Writer).Float64)
}

// Bools writes a whole JSON array of booleans.
func (w *Writer) Bools(bs []bool) error {
	return writeArray(w, bs, (*Writer).Bool)
}

func writeArray[T any](w *Writer, items []T, write func(*Writer, T) error) error {
	if err := w.BeginArray(); err != nil {
		return err
	}
	for _, item := range items {
		if err := write(w, item); err != nil {
			return err
		}
	}
	return w.EndArray()
}

// StringMap writes a whole JSON object from a map of strings.
// Go maps have no insertion order, so members are written in sorted
// name order to keep the output deterministic.
func (w *Writer) StringMap(m map[string]string) error {
	if err := w.BeginObject(); err != nil {
		return err
	}
	for _, name := range sortedNames(m) {
		if err := w.Name(name); err != nil {
			return err
		}
		if err := w.String(m[name]); err != nil {
			return err
		}
	}
	return w.EndObject()
}

// Close verifies the document is complete and flushes buffered output
// to the sink. The terminal check does not pop the grammar stack, so a
// misused writer keeps failing coherently after a failed Close.
// Close may be called again after completing an unfinished document.
func (w *Writer) Close() error {
	if s := w.stack.top(); s != stateEndOfDocument {
		return &StateError{Op: "close writer", State: s.String(), err: ErrIncomplete}
	}
	if w.sink != nil && w.flushed < len(w.buf) {
		n, err := w.sink.Write(w.buf[w.flushed:])
		w.flushed += n
		if err != nil {
			return errors.Wrap(err, "jsondom: flush")
		}
	}
	w.closed = true
	return nil
}

// Bytes returns the finished document. It fails with a *StateError if
// the document is incomplete. The returned slice aliases the writer's
// buffer and is only valid while the writer is not reused.
func (w *Writer) Bytes() ([]byte, error) {
	if s := w.stack.top(); s != stateEndOfDocument {
		return nil, &StateError{Op: "read written bytes", State: s.String(), err: ErrIncomplete}
	}
	return w.buf, nil
}

// String renders the writer's contents for debugging and logging.
// It never fails: if the document is incomplete, it degrades to a
// diagnostic marker embedding the cause rather than raising a second
// failure from inside a print path.
func (w *Writer) String() string {
	data, err := w.Bytes()
	if err != nil {
		return "<invalid json: " + err.Error() + ">"
	}
	return string(data)
}
