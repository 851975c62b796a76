package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrNotRepresentable is returned when a JSON string cannot be turned into
// UTF-8 text.
var ErrNotRepresentable = errors.New("value not representable as UTF-8 text")

// Quote returns the JSON literal for s.  Only '"', '\\' and control
// characters are escaped; other characters, including non-ASCII ones, are
// written verbatim.
func Quote(s string) []byte {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		default:
			if c < 0x20 {
				b = append(b, fmt.Sprintf(`\u%04x`, c)...)
			} else {
				b = append(b, c)
			}
		}
	}
	return append(b, '"')
}

// Unquote decodes a JSON string literal, including its surrounding quotes.
// The literal is assumed to be syntactically valid.
func Unquote(lit []byte) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", fmt.Errorf("invalid string literal %q", lit)
	}
	body := lit[1 : len(lit)-1]
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("truncated escape in %q", lit)
		}
		switch body[i+1] {
		case '"', '\\', '/':
			sb.WriteByte(body[i+1])
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, n, err := unquoteRune(body[i:])
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += n
			continue
		default:
			return "", fmt.Errorf("invalid escape %q in %q", body[i:i+2], lit)
		}
		i += 2
	}
	return checkUTF8([]byte(sb.String()))
}

// unquoteRune decodes a \uXXXX escape, or a surrogate pair of them, at the
// start of b.  It returns the rune and the number of bytes used.
func unquoteRune(b []byte) (rune, int, error) {
	r1, err := hex4(b)
	if err != nil {
		return 0, 0, err
	}
	if !utf16.IsSurrogate(r1) {
		return r1, 6, nil
	}
	if r2, err := hex4(b[6:]); err == nil {
		if r := utf16.DecodeRune(r1, r2); r != utf8.RuneError {
			return r, 12, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: lone surrogate %s", ErrNotRepresentable, b[:6])
}

func hex4(b []byte) (rune, error) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, errors.New("expected \\u escape")
	}
	n, err := strconv.ParseUint(string(b[2:6]), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid \\u escape %q", b[:6])
	}
	return rune(n), nil
}

func checkUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid UTF-8 in %q", ErrNotRepresentable, b)
	}
	return string(b), nil
}
