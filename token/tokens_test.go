package token

import (
	"errors"
	"math"
	"testing"
)

// TestQuote tests quoting of Go strings as JSON string literals
func TestQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", `""`},
		{"simple string", "hello", `"hello"`},
		{"unicode kept verbatim", "héllo 世界", `"héllo 世界"`},
		{"tab", "tab\there", `"tab\there"`},
		{"quotes", `say "hello"`, `"say \"hello\""`},
		{"backslash", `path\to\file`, `"path\\to\\file"`},
		{"newline", "line1\nline2", `"line1\nline2"`},
		{"backspace and form feed", "a\bb\fc", `"a\bb\fc"`},
		{"other control character", "a\x01b", `"a\u0001b"`},
		{"slash is not escaped", "a/b", `"a/b"`},
		{"html is not escaped", "<a&b>", `"<a&b>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := string(Quote(tt.input))
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
			back, err := NewScalar(String, Quote(tt.input)).Unquote()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if back != tt.input {
				t.Errorf("round-trip failed: expected %q, got %q", tt.input, back)
			}
		})
	}
}

// TestUnquote tests decoding of escaped JSON string literals
func TestUnquote(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		expected string
	}{
		{"plain", `"abc"`, "abc"},
		{"short escapes", `"\"\\\/\b\f\n\r\t"`, "\"\\/\b\f\n\r\t"},
		{"unicode escape", `"caf\u00e9"`, "café"},
		{"surrogate pair", `"\ud83d\ude00"`, "😀"},
		{"escape at end", `"x\n"`, "x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Unquote([]byte(tt.literal))
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

// TestUnquoteNotRepresentable tests strings which have no UTF-8 rendering
func TestUnquoteNotRepresentable(t *testing.T) {
	tests := []struct {
		name    string
		literal string
	}{
		{"lone high surrogate", `"\ud800"`},
		{"lone low surrogate", `"\udc00x"`},
		{"high surrogate followed by letter", `"\ud800A"`},
		{"invalid utf8", "\"\xff\xfe\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unquote([]byte(tt.literal))
			if !errors.Is(err, ErrNotRepresentable) {
				t.Errorf("expected ErrNotRepresentable, got %v", err)
			}
		})
	}
}

// TestScalarToGo tests conversion of scalars to Go values
func TestScalarToGo(t *testing.T) {
	unescaped := NewScalar(String, []byte(`"simple"`))
	unescaped.TypeAndFlags |= UnescapedMask

	tests := []struct {
		name     string
		scalar   *Scalar
		expected any
	}{
		{"unescaped string", unescaped, "simple"},
		{"escaped string", NewScalar(String, []byte(`"a\nb"`)), "a\nb"},
		{"integer", NewScalar(Number, []byte("7")), float64(7)},
		{"float", NewScalar(Number, []byte("1.5e2")), float64(150)},
		{"infinity", InfinityScalar, math.Inf(1)},
		{"negative infinity", NewScalar(Number, []byte("-Infinity")), math.Inf(-1)},
		{"true", TrueScalar, true},
		{"false", FalseScalar, false},
		{"null", NullScalar, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.scalar.ToGo(); result != tt.expected {
				t.Errorf("expected %#v, got %#v", tt.expected, result)
			}
		})
	}
}

// TestScalarToGoNaN tests that NaN converts to a Go NaN
func TestScalarToGoNaN(t *testing.T) {
	f, ok := NaNScalar.ToGo().(float64)
	if !ok || !math.IsNaN(f) {
		t.Errorf("expected NaN, got %#v", NaNScalar.ToGo())
	}
}

// TestScalarFlags tests the flag accessors
func TestScalarFlags(t *testing.T) {
	s := NewScalar(String, []byte(`"v"`))
	if s.IsKey() || s.IsUnescaped() || s.Type() != String {
		t.Errorf("expected a plain string, got %08b", s.TypeAndFlags)
	}
	s.TypeAndFlags |= KeyMask | UnescapedMask
	if !s.IsKey() || !s.IsUnescaped() || s.Type() != String {
		t.Errorf("expected an unescaped string key, got %08b", s.TypeAndFlags)
	}
}

// TestTokenStringMethods tests the String() methods on token types
func TestTokenStringMethods(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{"StartObject", &StartObject{}, "StartObject"},
		{"EndObject", &EndObject{}, "EndObject"},
		{"StartArray", &StartArray{}, "StartArray"},
		{"EndArray", &EndArray{}, "EndArray"},
		{"Scalar string", NewScalar(String, []byte(`"hello"`)), `Scalar("hello")`},
		{"Scalar number", NewScalar(Number, []byte("42")), "Scalar(42)"},
		{"Scalar boolean", TrueScalar, "Scalar(true)"},
		{"Scalar null", NullScalar, "Scalar(null)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.token.String()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

// TestSliceReadStream tests reading back accumulated tokens
func TestSliceReadStream(t *testing.T) {
	acc := NewAccumulatorStream()
	acc.Put(&StartArray{})
	acc.Put(TrueScalar)
	acc.Put(&EndArray{})

	r := NewSliceReadStream(acc.GetTokens())
	for i, want := range []string{"StartArray", "Scalar(true)", "EndArray"} {
		tok := r.Next()
		if tok == nil || tok.String() != want {
			t.Fatalf("token %d: expected %s, got %v", i, want, tok)
		}
	}
	if tok := r.Next(); tok != nil {
		t.Errorf("expected end of stream, got %v", tok)
	}
}
