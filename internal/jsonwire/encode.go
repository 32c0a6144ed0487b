// Package jsonwire implements the byte-level wire format of JSON text:
// string quoting and unquoting, number lexing, and number formatting.
// It knows nothing about grammar state or value trees.
package jsonwire

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// AppendQuote appends src to dst as a JSON string per RFC 8259, section 7,
// restricted to 7-bit ASCII output: the JSON control characters use their
// short escapes, other control characters use \u00XX, and every code point
// at or above U+0080 is escaped as \uXXXX (a surrogate pair for code points
// beyond the Basic Multilingual Plane).
//
// Invalid UTF-8 bytes in src are replaced with the Unicode replacement
// character before escaping.
func AppendQuote[Bytes ~[]byte | ~string](dst []byte, src Bytes) []byte {
	var i, n int
	dst = append(dst, '"')
	for n < len(src) {
		// Handle single-byte ASCII.
		if c := src[n]; c < utf8.RuneSelf {
			n++
			if needEscapeASCII(c) {
				dst = append(dst, src[i:n-1]...)
				dst = appendEscapedASCII(dst, c)
				i = n
			}
			continue
		}

		// Handle multi-byte Unicode.
		r, rn := utf8.DecodeRuneInString(string(src[n:]))
		dst = append(dst, src[i:n]...)
		dst = appendEscapedUnicode(dst, r)
		n += rn
		i = n
	}
	dst = append(dst, src[i:n]...)
	return append(dst, '"')
}

// needEscapeASCII reports whether c cannot pass through unescaped.
func needEscapeASCII(c byte) bool {
	return c < ' ' || c == '"' || c == '\\'
}

func appendEscapedASCII(dst []byte, c byte) []byte {
	switch c {
	case '"', '\\':
		dst = append(dst, '\\', c)
	case '\b':
		dst = append(dst, "\\b"...)
	case '\f':
		dst = append(dst, "\\f"...)
	case '\n':
		dst = append(dst, "\\n"...)
	case '\r':
		dst = append(dst, "\\r"...)
	case '\t':
		dst = append(dst, "\\t"...)
	default:
		dst = appendEscapedUTF16(dst, uint16(c))
	}
	return dst
}

func appendEscapedUnicode(dst []byte, r rune) []byte {
	if r1, r2 := utf16EncodeRune(r); r2 != 0 {
		dst = appendEscapedUTF16(dst, r1)
		dst = appendEscapedUTF16(dst, r2)
	} else {
		dst = appendEscapedUTF16(dst, r1)
	}
	return dst
}

// utf16EncodeRune splits r into its UTF-16 representation.
// The second codepoint is zero unless r requires a surrogate pair.
func utf16EncodeRune(r rune) (r1, r2 uint16) {
	if r < 0x10000 {
		return uint16(r), 0
	}
	r -= 0x10000
	return uint16(0xd800 + (r>>10)&0x3ff), uint16(0xdc00 + r&0x3ff)
}

func appendEscapedUTF16(dst []byte, x uint16) []byte {
	const hex = "0123456789abcdef"
	return append(dst, '\\', 'u', hex[(x>>12)&0xf], hex[(x>>8)&0xf], hex[(x>>4)&0xf], hex[(x>>0)&0xf])
}

// AppendFloat appends src to dst as a JSON number per RFC 8259, section 6.
// It formats numbers similar to the ES6 number-to-string conversion,
// except that -0 is formatted as -0 instead of just 0.
// Non-finite values have no JSON number representation and panic;
// callers must reject or special-case them first.
//
// For 32-bit floating-point numbers, the output is a 32-bit equivalent of
// the algorithm. Note that ECMA-262 specifies no algorithm for 32-bit numbers.
func AppendFloat(dst []byte, src float64, bits int) []byte {
	if math.IsNaN(src) || math.IsInf(src, 0) {
		panic("jsonwire: non-finite value has no JSON number representation")
	}
	if bits == 32 {
		src = float64(float32(src))
	}

	abs := math.Abs(src)
	fmt := byte('f')
	if abs != 0 {
		if bits == 64 && (float64(abs) < 1e-6 || float64(abs) >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmt = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, src, fmt, -1, bits)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}
