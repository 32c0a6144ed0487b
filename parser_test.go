package jsondom

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{`null`, Null},
		{`true`, True},
		{`false`, False},
		{` "hello" `, String("hello")},
		{`""`, String("")},
		{`0`, Int(0)},
		{`-0`, mustNumber(t, "-0")},
		{`123`, Int(123)},
		{`-123.456`, mustNumber(t, "-123.456")},
		{`1e3`, mustNumber(t, "1e3")},
		{`1.5E-3`, mustNumber(t, "1.5E-3")},
		{`[]`, Array()},
		{`[1,2,3]`, Array(Int(1), Int(2), Int(3))},
		{`[ 1 , "two" , null ]`, Array(Int(1), String("two"), Null)},
		{`{}`, Object()},
		{`{"a":1}`, Object(Member{"a", Int(1)})},
		{
			"\t{\r\n\"a\" : [true],\n\"b\" : {\"c\": null}\n}\n",
			Object(
				Member{"a", Array(True)},
				Member{"b", Object(Member{"c", Null})},
			),
		},
		{`"aA\n\t\"\\\/"`, String("aA\n\t\"\\/")},
		{`"😂"`, String("😂")},
		{`"héllo"`, String("héllo")},
	}
	for _, tt := range tests {
		v, err := ParseString(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		require.True(t, Equal(tt.want, v), "input %q: got %v, want %v", tt.in, v, tt.want)
	}
}

func mustNumber(t *testing.T, lexeme string) Value {
	t.Helper()
	v, err := Number(lexeme)
	require.NoError(t, err)
	return v
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		in      string
		wantMsg string
	}{
		{``, "unexpected end of input"},
		{`   `, "unexpected end of input"},
		{`tru`, "unexpected end of input"},
		{`truf`, "invalid character 'f' in literal true"},
		{`nul`, "unexpected end of input"},
		{`fals!`, "invalid character '!' in literal false"},
		{`+1`, "invalid character '+' at start of value"},
		{`.5`, "invalid character '.' at start of value"},
		{`-`, "unexpected end of input"},
		{`1.`, "unexpected end of input"},
		{`1e`, "unexpected end of input"},
		{`1e+`, "unexpected end of input"},
		{`1.x`, "invalid character 'x' in number"},
		{`"unterminated`, "unexpected end of input"},
		{`"bad\escape"`, "invalid character 'e' in string escape"},
		{`"\u12g4"`, "invalid character 'g' in \\uXXXX escape"},
		{"\"raw\tcontrol\"", "invalid character"},
		{`[1,2`, "unexpected end of input"},
		{`[1,]`, "invalid character ']' at start of value"},
		{`[1 2]`, "missing character ',' or ']' after array element"},
		{`{`, "unexpected end of input"},
		{`{,}`, "invalid character ',' at start of object name"},
		{`{"a"}`, "missing character ':' after object name"},
		{`{"a" 1}`, "missing character ':' after object name"},
		{`{"a":1,}`, "invalid character '}' at start of object name"},
		{`{"a":1 "b":2}`, "missing character ',' or '}' after object member"},
		{`{1:2}`, "invalid character '1' at start of object name"},
		{`1 2`, "invalid character '2' after top-level value"},
		{`{} []`, "invalid character '[' after top-level value"},
		{`NaN`, "invalid character 'N' at start of value"},
		{`Infinity`, "invalid character 'I' at start of value"},
	}
	for _, tt := range tests {
		_, err := ParseString(tt.in)
		require.Error(t, err, "input %q", tt.in)
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr, "input %q", tt.in)
		require.ErrorIs(t, err, Error, "input %q", tt.in)
		require.Contains(t, err.Error(), tt.wantMsg, "input %q", tt.in)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseString("{\n  \"a\": oops\n}")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, int64(9), serr.Offset)
	require.Equal(t, 2, serr.Line)
	require.Equal(t, 8, serr.Column)
	require.Contains(t, err.Error(), "at line 2, column 8")
}

func TestParseDuplicateNames(t *testing.T) {
	// Last write wins, and the member keeps its first position.
	v, err := ParseString(`{"a":1,"b":2,"a":3}`)
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())

	members := v.Members()
	require.Equal(t, "a", members[0].Name)
	require.True(t, Equal(Int(3), members[0].Value))
	require.Equal(t, "b", members[1].Name)
	require.True(t, Equal(Int(2), members[1].Value))
}

func TestParserStream(t *testing.T) {
	p := NewParserBytes([]byte("{\"a\":1}\n[2]\n\"x\"\n"))

	v, err := p.Read()
	require.NoError(t, err)
	require.True(t, v.IsObject())

	v, err = p.Read()
	require.NoError(t, err)
	require.True(t, v.IsArray())

	v, err = p.Read()
	require.NoError(t, err)
	require.True(t, v.IsString())

	_, err = p.Read()
	require.Equal(t, io.EOF, err)
}

func TestParserReader(t *testing.T) {
	p, err := NewParser(strings.NewReader(`[true]`))
	require.NoError(t, err)
	v, err := p.Read()
	require.NoError(t, err)
	require.True(t, Equal(Array(True), v))

	_, err = NewParser(failingReader{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "jsondom: read input")
	require.ErrorIs(t, err, errReaderBroken)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errReaderBroken }

var errReaderBroken = errors.New("reader broken")

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 20) + strings.Repeat("]", 20)
	_, err := ParseString(deep)
	require.NoError(t, err)

	_, err = ParseString(deep, WithDepthLimit(8))
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeded maximum nesting depth")
}

func TestParseNonFiniteLiterals(t *testing.T) {
	v, err := ParseString(`[NaN,Infinity,-Infinity]`, NonFiniteLiterals(true))
	require.NoError(t, err)
	elems := v.Elements()
	require.Len(t, elems, 3)

	f, err := elems[0].Float64()
	require.NoError(t, err)
	require.True(t, f != f, "expected NaN")
	f, err = elems[1].Float64()
	require.NoError(t, err)
	require.True(t, f > 0 && f*2 == f, "expected +Inf")
	f, err = elems[2].Float64()
	require.NoError(t, err)
	require.True(t, f < 0 && f*2 == f, "expected -Inf")

	// The extension gives the non-finite numbers no decimal view.
	_, err = elems[0].Decimal()
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
}

func TestParseLoneSurrogate(t *testing.T) {
	// An unpaired surrogate half is lexically valid JSON; it decodes to
	// the replacement character rather than failing.
	v, err := ParseString(`"\ud800"`)
	require.NoError(t, err)
	s, err := v.Text()
	require.NoError(t, err)
	require.Equal(t, "�", s)
}
