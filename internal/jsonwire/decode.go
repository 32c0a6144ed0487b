package jsonwire

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// NewInvalidCharacterError constructs an error for an unexpected byte c
// encountered in the context described by where.
func NewInvalidCharacterError(c byte, where string) error {
	return &invalidCharacterError{c: c, where: where}
}

type invalidCharacterError struct {
	c     byte
	where string
}

func (e *invalidCharacterError) Error() string {
	return "invalid character " + EscapeCharacter(e.c) + " " + e.where
}

// EscapeCharacter returns c quoted for use in an error message.
func EscapeCharacter(c byte) string {
	switch c {
	case '\'':
		return `'\''`
	case '"':
		return `'"'`
	default:
		return "'" + strings.TrimPrefix(strings.TrimSuffix(strconv.Quote(string([]byte{c})), `"`), `"`) + "'"
	}
}

// ConsumeWhitespace consumes leading JSON whitespace per RFC 8259, section 2.
func ConsumeWhitespace(b []byte) (n int) {
	for len(b) > n && (b[n] == ' ' || b[n] == '\t' || b[n] == '\r' || b[n] == '\n') {
		n++
	}
	return n
}

// ConsumeLiteral consumes the next JSON literal per RFC 8259, section 3,
// reporting how many bytes of b matched lit.
func ConsumeLiteral(b []byte, lit string) (n int, err error) {
	for i := 0; i < len(b) && i < len(lit); i++ {
		if b[i] != lit[i] {
			return i, NewInvalidCharacterError(b[i], "in literal "+lit+" (expecting "+EscapeCharacter(lit[i])+")")
		}
	}
	if len(b) < len(lit) {
		return len(b), io.ErrUnexpectedEOF
	}
	return len(lit), nil
}

// ConsumeNumber consumes the leading JSON number per RFC 8259, section 6.
// It reports the length of the lexeme and, on malformed input,
// the offset at which the violation was detected.
func ConsumeNumber(b []byte) (n int, err error) {
	// Consume optional minus sign.
	if len(b) > n && b[n] == '-' {
		n++
	}

	// Consume required integer component (with no leading zeros).
	switch {
	case len(b) == n:
		return n, io.ErrUnexpectedEOF
	case b[n] == '0':
		n++
	case '1' <= b[n] && b[n] <= '9':
		n++
		for len(b) > n && '0' <= b[n] && b[n] <= '9' {
			n++
		}
	default:
		return n, NewInvalidCharacterError(b[n], "in number (expecting digit)")
	}

	// Consume optional fractional component.
	if len(b) > n && b[n] == '.' {
		n++
		switch {
		case len(b) == n:
			return n, io.ErrUnexpectedEOF
		case '0' <= b[n] && b[n] <= '9':
			n++
		default:
			return n, NewInvalidCharacterError(b[n], "in number (expecting digit)")
		}
		for len(b) > n && '0' <= b[n] && b[n] <= '9' {
			n++
		}
	}

	// Consume optional exponent component.
	if len(b) > n && (b[n] == 'e' || b[n] == 'E') {
		n++
		if len(b) > n && (b[n] == '-' || b[n] == '+') {
			n++
		}
		switch {
		case len(b) == n:
			return n, io.ErrUnexpectedEOF
		case '0' <= b[n] && b[n] <= '9':
			n++
		default:
			return n, NewInvalidCharacterError(b[n], "in number (expecting digit)")
		}
		for len(b) > n && '0' <= b[n] && b[n] <= '9' {
			n++
		}
	}

	return n, nil
}

// AppendUnquote consumes the leading JSON string in src (which must begin
// with a '"') and appends its unescaped form to dst.
// It reports the number of input bytes consumed, including both quotes.
// Escape sequences are decoded per RFC 8259, section 7, with surrogate pairs
// combined; an unpaired surrogate half decodes to U+FFFD.
// Invalid UTF-8 in the raw input is likewise replaced with U+FFFD.
func AppendUnquote(dst, src []byte) (v []byte, n int, err error) {
	if len(src) == 0 {
		return dst, 0, io.ErrUnexpectedEOF
	}
	if src[0] != '"' {
		return dst, 0, NewInvalidCharacterError(src[0], "at start of string (expecting '\"')")
	}
	n = 1
	for len(src) > n {
		switch c := src[n]; {
		case c == '"':
			return dst, n + 1, nil
		case c == '\\':
			dst, n, err = appendUnquotedEscape(dst, src, n)
			if err != nil {
				return dst, n, err
			}
		case c < ' ':
			return dst, n, NewInvalidCharacterError(c, "in string (expecting non-control character)")
		case c < utf8.RuneSelf:
			dst = append(dst, c)
			n++
		default:
			r, rn := utf8.DecodeRune(src[n:])
			if r == utf8.RuneError && rn == 1 {
				dst = append(dst, "�"...)
				n++
				break
			}
			dst = append(dst, src[n:n+rn]...)
			n += rn
		}
	}
	return dst, n, io.ErrUnexpectedEOF
}

// appendUnquotedEscape decodes the escape sequence starting at src[n],
// where src[n] is known to be a backslash.
func appendUnquotedEscape(dst, src []byte, n int) ([]byte, int, error) {
	if len(src) < n+2 {
		return dst, len(src), io.ErrUnexpectedEOF
	}
	switch c := src[n+1]; c {
	case '"', '\\', '/':
		return append(dst, c), n + 2, nil
	case 'b':
		return append(dst, '\b'), n + 2, nil
	case 'f':
		return append(dst, '\f'), n + 2, nil
	case 'n':
		return append(dst, '\n'), n + 2, nil
	case 'r':
		return append(dst, '\r'), n + 2, nil
	case 't':
		return append(dst, '\t'), n + 2, nil
	case 'u':
		r1, err := parseHexRune(src, n+2)
		if err != nil {
			return dst, n, err
		}
		n += 6
		if utf16.IsSurrogate(rune(r1)) {
			// A leading surrogate half may combine with a trailing half
			// in an immediately following \uXXXX sequence.
			if len(src) >= n+6 && src[n] == '\\' && src[n+1] == 'u' {
				if r2, err2 := parseHexRune(src, n+2); err2 == nil && utf16.DecodeRune(rune(r1), rune(r2)) != utf8.RuneError {
					n += 6
					return utf8.AppendRune(dst, utf16.DecodeRune(rune(r1), rune(r2))), n, nil
				}
			}
			return append(dst, "�"...), n, nil
		}
		return utf8.AppendRune(dst, rune(r1)), n, nil
	default:
		return dst, n, NewInvalidCharacterError(c, "in string escape (expecting one of "+`\b \f \n \r \t \u \" \\ \/`+")")
	}
}

// parseHexRune parses the four hexadecimal digits at src[i:i+4].
func parseHexRune(src []byte, i int) (uint16, error) {
	if len(src) < i+4 {
		return 0, io.ErrUnexpectedEOF
	}
	var x uint16
	for _, c := range src[i : i+4] {
		x <<= 4
		switch {
		case '0' <= c && c <= '9':
			x |= uint16(c - '0')
		case 'a' <= c && c <= 'f':
			x |= uint16(c-'a') + 10
		case 'A' <= c && c <= 'F':
			x |= uint16(c-'A') + 10
		default:
			return 0, NewInvalidCharacterError(c, "in \\uXXXX escape (expecting hexadecimal digit)")
		}
	}
	return x, nil
}
