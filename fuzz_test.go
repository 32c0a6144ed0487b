package jsondom

import (
	"testing"
)

func FuzzParse(f *testing.F) {
	f.Add([]byte(`null`))
	f.Add([]byte(`-12.34e-56`))
	f.Add([]byte(`"string with \"escapes\" and 😂"`))
	f.Add([]byte(`[true,false,null,0,""]`))
	f.Add([]byte(`{"a":{"b":[{"c":null}]},"a":2}`))
	f.Add([]byte("\t{ \"x\" :\r\n[ 1 ]\n}"))
	f.Add([]byte(`{"unterminated`))
	f.Add([]byte(`[1,2,`))

	f.Fuzz(func(t *testing.T, data []byte) {
		v, err := Parse(data)
		if err != nil {
			return // malformed input must simply be rejected, never panic
		}

		// Whatever parsed must render as pure ASCII and parse back to an
		// equal tree.
		w := NewBuffer()
		if err := w.Value(v); err != nil {
			t.Fatalf("Parse(%q) succeeded but rendering failed: %v", data, err)
		}
		text, err := w.Bytes()
		if err != nil {
			t.Fatalf("Parse(%q) succeeded but produced an incomplete document: %v", data, err)
		}
		for i := 0; i < len(text); i++ {
			if text[i] >= 0x80 {
				t.Fatalf("rendering of %q emitted non-ASCII byte 0x%02x", data, text[i])
			}
		}
		v2, err := Parse(text)
		if err != nil {
			t.Fatalf("reparsing rendered output %q failed: %v", text, err)
		}
		if !Equal(v, v2) {
			t.Fatalf("round trip changed the value: %q parsed as %v, rendered as %q, reparsed as %v", data, v, text, v2)
		}
	})
}

func FuzzWriterString(f *testing.F) {
	f.Add("")
	f.Add("plain ascii")
	f.Add("controls \x00\x1f and quotes \" and backslash \\")
	f.Add("multibyte κόσμε 😂")
	f.Add("broken utf-8 \xff\xfe")

	f.Fuzz(func(t *testing.T, s string) {
		w := NewBuffer()
		if err := w.String(s); err != nil {
			t.Fatalf("String(%q) failed: %v", s, err)
		}
		v, err := ParseString(w.String())
		if err != nil {
			t.Fatalf("String(%q) emitted unparsable output %q: %v", s, w.String(), err)
		}
		got, err := v.Text()
		if err != nil {
			t.Fatalf("parse of quoted %q yielded a non-string: %v", s, err)
		}
		// Invalid UTF-8 is repaired with the replacement character, so the
		// round trip is exact only for valid input.
		if isValidUTF8(s) && got != s {
			t.Fatalf("round trip changed %q into %q", s, got)
		}
	})
}

func isValidUTF8(s string) bool {
	for _, r := range s {
		if r == 0xfffd {
			return false // conservatively treat literal U+FFFD as invalid
		}
	}
	return true
}
