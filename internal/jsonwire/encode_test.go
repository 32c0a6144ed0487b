package jsonwire

import (
	"math"
	"testing"
)

func TestAppendQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"hello", `"hello"`},
		{"a\"b", `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"/", `"/"`}, // forward slash needs no escaping on output
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x00", `"\u0000"`},
		{"\x1f", `"\u001f"`},
		{"\x7f", "\"\x7f\""}, // DEL passes through; only C0 controls escape
		{"\u00e9", `"\u00e9"`},
		{"\u03ba", `"\u03ba"`},
		{"\uffff", `"\uffff"`},
		{"\U00010000", `"\ud800\udc00"`},
		{"\U0001F602", `"\ud83d\ude02"`},
		{"\U0010FFFF", `"\udbff\udfff"`},
		{"x\xffy", `"x\ufffdy"`},      // invalid byte replaced, neighbors kept
		{"\xc0\x80", `"\ufffd\ufffd"`}, // overlong encoding is two bad bytes
		{"mixed \u00e9 ok", `"mixed \u00e9 ok"`},
	}
	for _, tt := range tests {
		got := string(AppendQuote(nil, tt.in))
		if got != tt.want {
			t.Errorf("AppendQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if gotBytes := string(AppendQuote(nil, []byte(tt.in))); gotBytes != got {
			t.Errorf("AppendQuote(%q) differs between string and []byte: %s vs %s", tt.in, got, gotBytes)
		}
		for i := 0; i < len(got); i++ {
			if got[i] >= 0x80 {
				t.Errorf("AppendQuote(%q) emitted non-ASCII byte 0x%02x", tt.in, got[i])
			}
		}
	}
}

func TestAppendQuoteUnquote(t *testing.T) {
	inputs := []string{
		"", "simple", "with \" and \\ and /",
		"\b\f\n\r\t", "\x00\x01\x1f",
		"\u00e9 \u03ba\u03cc\u03c3\u03bc\u03b5 \U0001F602 \uffff \U0010FFFF",
	}
	for _, in := range inputs {
		quoted := AppendQuote(nil, in)
		got, n, err := AppendUnquote(nil, quoted)
		if err != nil {
			t.Errorf("AppendUnquote(AppendQuote(%q)) failed: %v", in, err)
			continue
		}
		if n != len(quoted) {
			t.Errorf("AppendUnquote(AppendQuote(%q)) consumed %d bytes, want %d", in, n, len(quoted))
		}
		if string(got) != in {
			t.Errorf("AppendUnquote(AppendQuote(%q)) = %q", in, got)
		}
	}
}

func TestAppendFloat(t *testing.T) {
	tests := []struct {
		in   float64
		bits int
		want string
	}{
		{0, 64, "0"},
		{math.Copysign(0, -1), 64, "-0"},
		{1, 64, "1"},
		{-1.5, 64, "-1.5"},
		{3.14159, 64, "3.14159"},
		{1e20, 64, "100000000000000000000"},
		{1e21, 64, "1e+21"},
		{1e-6, 64, "0.000001"},
		{1e-7, 64, "1e-7"},
		{5e-324, 64, "5e-324"},
		{math.MaxFloat64, 64, "1.7976931348623157e+308"},
		{0.25, 32, "0.25"},
		{3.14159, 32, "3.14159"},
		{math.MaxFloat32, 32, "3.4028235e+38"},
	}
	for _, tt := range tests {
		got := string(AppendFloat(nil, tt.in, tt.bits))
		if got != tt.want {
			t.Errorf("AppendFloat(%v, %d) = %s, want %s", tt.in, tt.bits, got, tt.want)
		}
	}
}

func TestAppendFloatNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(+1), math.Inf(-1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("AppendFloat(%v, 64) did not panic", f)
				}
			}()
			AppendFloat(nil, f, 64)
		}()
	}
}
