package jsondom

import (
	"strings"

	"github.com/jsondom/jsondom/internal/jsonwire"
)

// Options configures a Writer or Parser at construction time.
// Options that do not apply to the receiving side are ignored,
// so the same option list can configure both ends of a round trip.
type Options func(*options)

type options struct {
	expand     bool
	indent     string
	nonFinite  bool
	depthLimit int
}

func makeOptions(opts []Options) options {
	o := options{indent: "\t", depthLimit: maxNestingDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// maxNestingDepth is the default limit on container nesting,
// keeping the recursive parser's stack usage bounded.
const maxNestingDepth = 10000

// Expand specifies that the writer emit multi-line output:
// every object member and array element on its own indented line,
// a space after each colon, and closing delimiters on their own lines.
// The default is minified output.
func Expand(v bool) Options {
	return func(o *options) { o.expand = v }
}

// WithIndent specifies the indentation string repeated per nesting level
// in expand mode, and implies Expand(true). The indent may consist only
// of spaces and tabs; anything else would corrupt the output and panics.
// The default indent is a single tab.
func WithIndent(indent string) Options {
	if s := strings.Trim(indent, " \t"); len(s) > 0 {
		panic("jsondom: invalid character " + jsonwire.EscapeCharacter(s[0]) + " in indent")
	}
	return func(o *options) {
		o.expand = true
		o.indent = indent
	}
}

// NonFiniteLiterals enables the non-standard number literals
// Infinity, -Infinity, and NaN: the writer emits them for non-finite
// floats and the parser accepts them where a value is expected.
// This is a deliberate extension beyond RFC 8259; documents using it
// will be rejected by strict JSON consumers. By default the writer
// fails on non-finite floats and the parser rejects the literals.
func NonFiniteLiterals(v bool) Options {
	return func(o *options) { o.nonFinite = v }
}

// WithDepthLimit overrides the default container nesting limit of 10000.
// A non-positive limit panics.
func WithDepthLimit(n int) Options {
	if n <= 0 {
		panic("jsondom: depth limit must be positive")
	}
	return func(o *options) { o.depthLimit = n }
}
