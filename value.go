package jsondom

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jsondom/jsondom/internal/jsonwire"
)

// Kind represents each possible Value variant with a single byte,
// which is conveniently the first byte of that variant's grammar
// with the restriction that numbers always be represented with '0'
// and booleans with 't':
//
//   - 'n': null
//   - 't': boolean
//   - '"': string
//   - '0': number
//   - '[': array
//   - '{': object
type Kind byte

const (
	KindNull   Kind = 'n'
	KindBool   Kind = 't'
	KindString Kind = '"'
	KindNumber Kind = '0'
	KindArray  Kind = '['
	KindObject Kind = '{'
)

// String prints the kind in a humanly readable fashion.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "<invalid kind: " + jsonwire.EscapeCharacter(byte(k)) + ">"
	}
}

// Value represents a single JSON datum, which is exactly one of the following:
//
//   - a JSON null
//   - a JSON boolean (e.g., true)
//   - a JSON string (e.g., "hello, world!")
//   - a JSON number (e.g., 123.456)
//   - an entire JSON array (e.g., [1,2,3])
//   - an entire JSON object (e.g., {"fizz":"buzz"})
//
// A Value is immutable once constructed and may therefore be freely
// shared across goroutines. The zero Value is the JSON null.
//
// Numbers are stored losslessly as their decimal lexeme; the typed
// accessors perform checked narrowing from that representation.
type Value struct {
	// This is an opaque union type. A concrete struct type rather than
	// an interface keeps the variants closed and gives fine-grained
	// control over allocations.
	kind Kind
	b    bool     // KindBool
	str  string   // KindString: unescaped text; KindNumber: raw lexeme
	arr  []Value  // KindArray
	obj  []Member // KindObject: members in insertion order
}

// Member is a single name/value pair of a JSON object.
type Member struct {
	Name  string
	Value Value
}

// Canonical singletons. They carry no mutable state.
var (
	Null  = Value{kind: KindNull}
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool}
)

// Bool constructs a Value representing a JSON boolean.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// String constructs a Value representing a JSON string.
// The provided string is the logical (unescaped) text.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int constructs a Value representing a JSON number from an int64.
func Int(n int64) Value {
	return Value{kind: KindNumber, str: strconv.FormatInt(n, 10)}
}

// Uint constructs a Value representing a JSON number from a uint64.
func Uint(n uint64) Value {
	return Value{kind: KindNumber, str: strconv.FormatUint(n, 10)}
}

// Float64 constructs a Value representing a JSON number from a float64.
// The values NaN, +Inf, and -Inf are represented with the non-standard
// lexemes "NaN", "Infinity", and "-Infinity"; writing such a value
// requires the NonFiniteLiterals option.
func Float64(f float64) Value {
	if lit := nonFiniteLexeme(f); lit != "" {
		return Value{kind: KindNumber, str: lit}
	}
	return Value{kind: KindNumber, str: string(jsonwire.AppendFloat(nil, f, 64))}
}

// Float32 constructs a Value representing a JSON number from a float32.
func Float32(f float32) Value {
	if lit := nonFiniteLexeme(float64(f)); lit != "" {
		return Value{kind: KindNumber, str: lit}
	}
	return Value{kind: KindNumber, str: string(jsonwire.AppendFloat(nil, float64(f), 32))}
}

// BigInt constructs a Value representing a JSON number from an
// arbitrary-precision integer. A nil input is treated as zero.
func BigInt(n *big.Int) Value {
	if n == nil {
		return Value{kind: KindNumber, str: "0"}
	}
	return Value{kind: KindNumber, str: n.String()}
}

// Decimal constructs a Value representing a JSON number from an
// arbitrary-precision decimal.
func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindNumber, str: d.String()}
}

// Number constructs a Value from a raw JSON number lexeme.
// It fails if the lexeme is not a valid JSON number per RFC 8259, section 6.
func Number(lexeme string) (Value, error) {
	n, err := jsonwire.ConsumeNumber([]byte(lexeme))
	if err == nil && n != len(lexeme) {
		err = jsonwire.NewInvalidCharacterError(lexeme[n], "after number")
	}
	if err != nil {
		return Null, &SyntaxError{Offset: int64(n), Line: 1, Column: n + 1, str: err.Error()}
	}
	return Value{kind: KindNumber, str: lexeme}, nil
}

// Array constructs a Value representing a JSON array of the given elements.
// The elements are copied; the result does not alias the input slice.
func Array(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	return Value{kind: KindArray, arr: arr}
}

// Object constructs a Value representing a JSON object of the given members.
// Insertion order is preserved. If a name occurs more than once,
// the last value wins and the member keeps its first position.
func Object(members ...Member) Value {
	obj := make([]Member, 0, len(members))
	for _, m := range members {
		obj = putMember(obj, m.Name, m.Value)
	}
	return Value{kind: KindObject, obj: obj}
}

// putMember inserts or overwrites the named member, keeping first position
// on overwrite. Shared by Object and the parser, so both resolve duplicate
// names the same way.
func putMember(obj []Member, name string, v Value) []Member {
	for i := range obj {
		if obj[i].Name == name {
			obj[i].Value = v
			return obj
		}
	}
	return append(obj, Member{Name: name, Value: v})
}

// Kind returns the value's kind. The zero Value is KindNull.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return KindNull
	}
	return v.kind
}

// The Is queries report the value's variant and never fail.

func (v Value) IsNull() bool   { return v.Kind() == KindNull }
func (v Value) IsBool() bool   { return v.Kind() == KindBool }
func (v Value) IsString() bool { return v.Kind() == KindString }
func (v Value) IsNumber() bool { return v.Kind() == KindNumber }
func (v Value) IsArray() bool  { return v.Kind() == KindArray }
func (v Value) IsObject() bool { return v.Kind() == KindObject }

// Bool returns the boolean payload,
// or a *TypeError if the value is not a JSON boolean.
func (v Value) Bool() (bool, error) {
	if !v.IsBool() {
		return false, &TypeError{Want: KindBool, Got: v.Kind()}
	}
	return v.b, nil
}

// Text returns the unescaped string payload,
// or a *TypeError if the value is not a JSON string.
func (v Value) Text() (string, error) {
	if !v.IsString() {
		return "", &TypeError{Want: KindString, Got: v.Kind()}
	}
	return v.str, nil
}

// NumberLiteral returns the number's raw decimal lexeme,
// or a *TypeError if the value is not a JSON number.
func (v Value) NumberLiteral() (string, error) {
	if !v.IsNumber() {
		return "", &TypeError{Want: KindNumber, Got: v.Kind()}
	}
	return v.str, nil
}

// Int64 returns the number as an int64.
// It fails with a *RangeError if the number has a nonzero fractional part
// or does not fit in an int64, and with a *TypeError if the value is not
// a JSON number.
func (v Value) Int64() (int64, error) {
	return v.toInt("int64", math.MinInt64, math.MaxInt64)
}

// Int32 returns the number as an int32 under the same rules as Int64.
func (v Value) Int32() (int32, error) {
	n, err := v.toInt("int32", math.MinInt32, math.MaxInt32)
	return int32(n), err
}

func (v Value) toInt(target string, min, max int64) (int64, error) {
	if !v.IsNumber() {
		return 0, &TypeError{Want: KindNumber, Got: v.Kind()}
	}
	// Fast path for plain integer lexemes within range.
	if n, err := strconv.ParseInt(v.str, 10, 64); err == nil {
		if n < min || n > max {
			return 0, &RangeError{Lexeme: v.str, Target: target}
		}
		return n, nil
	}
	// Slow path handles fractions, exponents, and overflow exactly.
	d, err := v.Decimal()
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, &RangeError{Lexeme: v.str, Target: target, Fractional: true}
	}
	if d.Cmp(decimal.NewFromInt(min)) < 0 || d.Cmp(decimal.NewFromInt(max)) > 0 {
		return 0, &RangeError{Lexeme: v.str, Target: target}
	}
	return d.IntPart(), nil
}

// BigInt returns the number as an exact arbitrary-precision integer.
// It fails with a *RangeError if the number has a nonzero fractional part.
func (v Value) BigInt() (*big.Int, error) {
	if !v.IsNumber() {
		return nil, &TypeError{Want: KindNumber, Got: v.Kind()}
	}
	d, err := v.Decimal()
	if err != nil {
		return nil, err
	}
	if !d.IsInteger() {
		return nil, &RangeError{Lexeme: v.str, Target: "integer", Fractional: true}
	}
	return d.BigInt(), nil
}

// Decimal returns the number as an arbitrary-precision decimal.
// It fails with a *RangeError for the non-finite lexemes,
// which have no decimal representation.
func (v Value) Decimal() (decimal.Decimal, error) {
	if !v.IsNumber() {
		return decimal.Decimal{}, &TypeError{Want: KindNumber, Got: v.Kind()}
	}
	if isNonFiniteLexeme(v.str) {
		return decimal.Decimal{}, &RangeError{Lexeme: v.str, Target: "decimal"}
	}
	d, err := decimal.NewFromString(v.str)
	if err != nil {
		// The lexeme invariant makes this unreachable for parser- or
		// constructor-built values.
		return decimal.Decimal{}, &RangeError{Lexeme: v.str, Target: "decimal"}
	}
	return d, nil
}

// Float64 returns the number as a float64. Narrowing never fails:
// values beyond ±math.MaxFloat64 saturate to ±Inf and precision may be
// lost. Only a non-number variant fails, with a *TypeError.
func (v Value) Float64() (float64, error) {
	if !v.IsNumber() {
		return 0, &TypeError{Want: KindNumber, Got: v.Kind()}
	}
	switch v.str {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(+1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	f, _ := strconv.ParseFloat(v.str, 64) // out-of-range yields ±Inf
	return f, nil
}

// Float32 returns the number as a float32 under the same rules as Float64.
func (v Value) Float32() (float32, error) {
	f, err := v.Float64()
	return float32(f), err
}

// Len returns the number of elements of an array or members of an object,
// and zero for every other variant.
func (v Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports whether two value trees are structurally equal:
// same variants, same array ordering, same object member ordering,
// with numbers compared by numeric value rather than lexeme.
// The non-finite lexemes compare by identity, so NaN equals NaN here.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.str == b.str
	case KindNumber:
		if a.str == b.str {
			return true
		}
		if isNonFiniteLexeme(a.str) || isNonFiniteLexeme(b.str) {
			return false
		}
		da, err1 := a.Decimal()
		db, err2 := b.Decimal()
		return err1 == nil && err2 == nil && da.Equal(db)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for i := range a.obj {
			if a.obj[i].Name != b.obj[i].Name || !Equal(a.obj[i].Value, b.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value as minified JSON text for debugging and logging.
// It never fails: an internal rendering error degrades to a diagnostic
// marker embedding the cause.
func (v Value) String() string {
	w := NewBuffer(NonFiniteLiterals(true))
	if err := w.Value(v); err != nil {
		return "<invalid json: " + err.Error() + ">"
	}
	return w.String()
}

func nonFiniteLexeme(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, +1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return ""
	}
}

func isNonFiniteLexeme(s string) bool {
	return s == "NaN" || s == "Infinity" || s == "-Infinity"
}
