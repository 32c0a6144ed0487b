package jsondom

import (
	"io"

	"github.com/pkg/errors"

	"github.com/jsondom/jsondom/internal/bufpools"
	"github.com/jsondom/jsondom/internal/jsonwire"
)

// Parser converts JSON text into Value trees.
//
// It is a recursive-descent parser over a single forward cursor with
// one non-whitespace character of lookahead, enforcing RFC 8259 / ECMA-404
// exactly. Each Read call consumes one top-level document, so a source
// holding a stream of documents can be drained by calling Read until io.EOF.
//
// On malformed input the parser fails with a *SyntaxError carrying the
// byte offset, line, and column of the violation; no partial tree is
// ever returned.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	buf   []byte
	pos   int
	opts  options
	names nameCache
}

// NewParser constructs a Parser over r. The source is read eagerly;
// a read failure is reported here, wrapped, rather than surfacing as a
// confusing syntax error later.
func NewParser(r io.Reader, opts ...Options) (*Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "jsondom: read input")
	}
	return NewParserBytes(data, opts...), nil
}

// NewParserBytes constructs a Parser over data.
// The parser aliases data; the caller must not mutate it while parsing.
func NewParserBytes(data []byte, opts ...Options) *Parser {
	return &Parser{buf: data, opts: makeOptions(opts)}
}

// Parse parses data as exactly one JSON document.
// Trailing content other than whitespace is a *SyntaxError.
func Parse(data []byte, opts ...Options) (Value, error) {
	p := NewParserBytes(data, opts...)
	v, err := p.Read()
	if err == io.EOF {
		return Null, p.syntaxError(p.pos, "unexpected end of input")
	}
	if err != nil {
		return Null, err
	}
	p.skipWhitespace()
	if p.pos < len(p.buf) {
		return Null, p.syntaxError(p.pos, jsonwire.NewInvalidCharacterError(p.buf[p.pos], "after top-level value").Error())
	}
	return v, nil
}

// ParseString is Parse over a string.
func ParseString(data string, opts ...Options) (Value, error) {
	return Parse([]byte(data), opts...)
}

// Read parses the next top-level document from the source and advances
// past it. It returns io.EOF once the source holds nothing but
// whitespace, so successive calls drain a stream of documents.
func (p *Parser) Read() (Value, error) {
	p.skipWhitespace()
	if p.pos == len(p.buf) {
		return Null, io.EOF
	}
	return p.parseValue(0)
}

// InputOffset returns the number of input bytes consumed so far.
func (p *Parser) InputOffset() int64 {
	return int64(p.pos)
}

func (p *Parser) skipWhitespace() {
	p.pos += jsonwire.ConsumeWhitespace(p.buf[p.pos:])
}

// syntaxError constructs a *SyntaxError for the given absolute offset,
// deriving the line and column from the input consumed so far.
func (p *Parser) syntaxError(offset int, str string) error {
	line, column := 1, 1
	for _, c := range p.buf[:offset] {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return &SyntaxError{Offset: int64(offset), Line: line, Column: column, str: str}
}

// wireError translates a jsonwire error located at the given absolute
// offset into a *SyntaxError.
func (p *Parser) wireError(offset int, err error) error {
	if err == io.ErrUnexpectedEOF {
		return p.syntaxError(offset, "unexpected end of input")
	}
	return p.syntaxError(offset, err.Error())
}

func (p *Parser) parseValue(depth int) (Value, error) {
	if depth > p.opts.depthLimit {
		return Null, p.syntaxError(p.pos, "exceeded maximum nesting depth")
	}
	p.skipWhitespace()
	if p.pos == len(p.buf) {
		return Null, p.syntaxError(p.pos, "unexpected end of input")
	}
	switch c := p.buf[p.pos]; {
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return Null, err
		}
		return String(s), nil
	case c == 'n':
		return Null, p.parseLiteral("null")
	case c == 't':
		return True, p.parseLiteral("true")
	case c == 'f':
		return False, p.parseLiteral("false")
	case c == '-' || ('0' <= c && c <= '9'):
		return p.parseNumber()
	case p.opts.nonFinite && (c == 'I' || c == 'N'):
		return p.parseNumber()
	default:
		return Null, p.syntaxError(p.pos, jsonwire.NewInvalidCharacterError(c, "at start of value").Error())
	}
}

func (p *Parser) parseLiteral(lit string) error {
	n, err := jsonwire.ConsumeLiteral(p.buf[p.pos:], lit)
	if err != nil {
		return p.wireError(p.pos+n, err)
	}
	p.pos += n
	return nil
}

func (p *Parser) parseNumber() (Value, error) {
	if p.opts.nonFinite {
		for _, lit := range [...]string{"NaN", "Infinity", "-Infinity"} {
			if hasPrefix(p.buf[p.pos:], lit) {
				p.pos += len(lit)
				return Value{kind: KindNumber, str: lit}, nil
			}
		}
	}
	start := p.pos
	n, err := jsonwire.ConsumeNumber(p.buf[p.pos:])
	if err != nil {
		return Null, p.wireError(p.pos+n, err)
	}
	p.pos += n
	return Value{kind: KindNumber, str: string(p.buf[start:p.pos])}, nil
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

// parseString decodes the string token at the cursor, which is known to
// begin with a '"' or is reported as a syntax error.
func (p *Parser) parseString() (string, error) {
	scratch := bufpools.Get(64)
	defer bufpools.Put(scratch)
	text, n, err := jsonwire.AppendUnquote(scratch, p.buf[p.pos:])
	if err != nil {
		return "", p.wireError(p.pos+n, err)
	}
	p.pos += n
	return string(text), nil
}

// parseName is parseString for object member names, interned through
// the name cache since names repeat heavily.
func (p *Parser) parseName() (string, error) {
	scratch := bufpools.Get(64)
	defer bufpools.Put(scratch)
	text, n, err := jsonwire.AppendUnquote(scratch, p.buf[p.pos:])
	if err != nil {
		return "", p.wireError(p.pos+n, err)
	}
	p.pos += n
	return p.names.make(text), nil
}

func (p *Parser) parseObject(depth int) (Value, error) {
	p.pos++ // consume '{'
	var members []Member
	p.skipWhitespace()
	if p.pos < len(p.buf) && p.buf[p.pos] == '}' {
		p.pos++
		return Value{kind: KindObject, obj: []Member{}}, nil
	}
	for {
		p.skipWhitespace()
		switch {
		case p.pos == len(p.buf):
			return Null, p.syntaxError(p.pos, "unexpected end of input")
		case p.buf[p.pos] != '"':
			return Null, p.syntaxError(p.pos, jsonwire.NewInvalidCharacterError(p.buf[p.pos], "at start of object name").Error())
		}
		name, err := p.parseName()
		if err != nil {
			return Null, err
		}

		p.skipWhitespace()
		switch {
		case p.pos == len(p.buf):
			return Null, p.syntaxError(p.pos, "unexpected end of input")
		case p.buf[p.pos] != ':':
			return Null, p.syntaxError(p.pos, "missing character ':' after object name")
		}
		p.pos++

		v, err := p.parseValue(depth + 1)
		if err != nil {
			return Null, err
		}
		// Duplicate names: last write wins, first position kept.
		members = putMember(members, name, v)

		p.skipWhitespace()
		switch {
		case p.pos == len(p.buf):
			return Null, p.syntaxError(p.pos, "unexpected end of input")
		case p.buf[p.pos] == ',':
			p.pos++
		case p.buf[p.pos] == '}':
			p.pos++
			return Value{kind: KindObject, obj: members}, nil
		default:
			return Null, p.syntaxError(p.pos, "missing character ',' or '}' after object member")
		}
	}
}

func (p *Parser) parseArray(depth int) (Value, error) {
	p.pos++ // consume '['
	var elems []Value
	p.skipWhitespace()
	if p.pos < len(p.buf) && p.buf[p.pos] == ']' {
		p.pos++
		return Value{kind: KindArray, arr: []Value{}}, nil
	}
	for {
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return Null, err
		}
		elems = append(elems, v)

		p.skipWhitespace()
		switch {
		case p.pos == len(p.buf):
			return Null, p.syntaxError(p.pos, "unexpected end of input")
		case p.buf[p.pos] == ',':
			p.pos++
		case p.buf[p.pos] == ']':
			p.pos++
			return Value{kind: KindArray, arr: elems}, nil
		default:
			return Null, p.syntaxError(p.pos, "missing character ',' or ']' after array element")
		}
	}
}
