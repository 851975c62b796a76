package json

import (
	"fmt"
	"io"

	"github.com/vlei-notebooks/cesrstream/internal/scanner"
	"github.com/vlei-notebooks/cesrstream/token"
)

// A Decoder reads JSON input and streams it into a token stream.  It reads
// one value at a time and never looks further than the end of the value it
// is decoding, so it can be used on input where JSON values are followed by
// arbitrary data.
type Decoder struct {
	scanr *scanner.Scanner
}

// NewDecoder sets up a new Decoder instance to read from the given input.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{scanr: scanner.NewScanner(in)}
}

// Offset returns the number of input bytes consumed so far.  After a
// successful call to Decode, it is the offset of the byte just after the
// decoded value.
func (d *Decoder) Offset() int {
	return d.scanr.Offset()
}

// Produce reads a stream of JSON values and streams them, until it runs
// out of input or encounter invalid JSON, in which case it will return an
// error.
func (d *Decoder) Produce(out token.WriteStream) error {
	for {
		b, err := d.scanr.SkipSpaceAndPeek()
		if err != nil || b == scanner.EOF {
			return err
		}
		err = d.Decode(out)
		if err != nil {
			return err
		}
	}
}

// Decode reads a single JSON value and streams it.  Leading whitespace is
// skipped, trailing input is left unread.  It returns io.EOF if there is no
// value left and a *SyntaxError if the input is invalid JSON.
func (d *Decoder) Decode(out token.WriteStream) error {
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == scanner.EOF {
		return io.EOF
	}
	return d.parseValue(out)
}

func (d *Decoder) parseValue(out token.WriteStream) error {
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	switch b {
	case '"':
		s, err := ParseString(d.scanr)
		if err != nil {
			return err
		}
		out.Put(s)
		return nil
	case '[':
		return d.parseArray(out)
	case '{':
		return d.parseObject(out)
	case 't':
		return d.parseLiteral(out, token.TrueScalar)
	case 'f':
		return d.parseLiteral(out, token.FalseScalar)
	case 'n':
		return d.parseLiteral(out, token.NullScalar)
	case 'N':
		return d.parseLiteral(out, token.NaNScalar)
	case 'I':
		return d.parseLiteral(out, token.InfinityScalar)
	default:
		if b == '-' || scanner.IsDigit(b) {
			n, err := ParseNumber(d.scanr)
			if err != nil {
				return err
			}
			out.Put(n)
			return nil
		}
		return UnexpectedByte(d.scanr, "expecting value, got")
	}
}

func (d *Decoder) parseLiteral(out token.WriteStream, lit *token.Scalar) error {
	for _, xb := range lit.Bytes {
		if err := ExpectByte(d.scanr, xb); err != nil {
			return err
		}
	}
	out.Put(lit)
	return nil
}

func (d *Decoder) parseArray(out token.WriteStream) error {
	var b byte
	var err error
	err = ExpectByte(d.scanr, '[')
	if err != nil {
		return err
	}
	out.Put(&token.StartArray{})
	b, err = d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == ']' {
		d.scanr.Read()
		out.Put(&token.EndArray{})
		return nil
	}
	for {
		err = d.parseValue(out)
		if err != nil {
			return err
		}
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case ']':
			d.scanr.Read()
			out.Put(&token.EndArray{})
			return nil
		case ',':
			d.scanr.Read()
		default:
			return UnexpectedByte(d.scanr, "expected ']' or ',', got")
		}
	}
}

func (d *Decoder) parseObject(out token.WriteStream) error {
	var b byte
	err := ExpectByte(d.scanr, '{')
	if err != nil {
		return err
	}
	out.Put(&token.StartObject{})
	b, err = d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == '}' {
		d.scanr.Read()
		out.Put(&token.EndObject{})
		return nil
	}
	for {
		if b != '"' {
			return UnexpectedByte(d.scanr, "expected property name, got")
		}
		key, err := ParseString(d.scanr)
		if err != nil {
			return err
		}
		key.TypeAndFlags |= token.KeyMask
		out.Put(key)
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		if b != ':' {
			return UnexpectedByte(d.scanr, "expected ':', got")
		}
		d.scanr.Read()
		err = d.parseValue(out)
		if err != nil {
			return err
		}
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case '}':
			d.scanr.Read()
			out.Put(&token.EndObject{})
			return nil
		case ',':
			d.scanr.Read()
			b, err = d.scanr.SkipSpaceAndPeek()
			if err != nil {
				return err
			}
		default:
			return UnexpectedByte(d.scanr, "expected '}' or ',', got")
		}
	}
}

// A SyntaxError describes malformed JSON input.  Line and Col are 1-based,
// Offset is the 0-based byte offset of the offending byte.
type SyntaxError struct {
	Msg    string
	Line   int
	Col    int
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d (byte %d): %s", e.Line, e.Col, e.Offset, e.Msg)
}

func ExpectByte(scanr *scanner.Scanner, xb byte) error {
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	if b != xb {
		scanr.Back()
		return UnexpectedByte(scanr, "expected %q, got", xb)
	}
	return nil
}

// UnexpectedByte reads the next byte and returns a *SyntaxError describing
// it.
func UnexpectedByte(scanr *scanner.Scanner, expected string, args ...interface{}) error {
	pos := scanr.CurrentPos()
	offset := scanr.Offset()
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(expected, args...)
	if b == scanner.EOF {
		msg += ": <EOF>"
	} else {
		msg += fmt.Sprintf(": %q", b)
	}
	return &SyntaxError{Msg: msg, Line: pos.Line + 1, Col: pos.Col + 1, Offset: offset}
}

func ParseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	s, err := parseString(scanr)
	if err != nil {
		scanr.AbortToken()
	}
	return s, err
}

func parseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	err := ExpectByte(scanr, '"')
	if err != nil {
		return nil, err
	}
	isUnescaped := true
	for {
		b, err := scanr.Read()
		if err != nil {
			return nil, err
		}
		switch b {
		case scanner.EOF:
			scanr.Back()
			return nil, UnexpectedByte(scanr, "unterminated string")
		case '\\':
			isUnescaped = false
			x, err := scanr.Read()
			if err != nil {
				return nil, err
			}
			switch x {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				continue
			case 'u':
				for i := 0; i < 4; i++ {
					b, err = scanr.Read()
					if err != nil {
						return nil, err
					}
					if !scanner.IsHexDigit(b) {
						scanr.Back()
						return nil, UnexpectedByte(scanr, "expected hex, got")
					}
				}
			default:
				scanr.Back()
				return nil, UnexpectedByte(scanr, "invalid escape, got")
			}
		case '"':
			stringBytes := scanr.EndToken()
			scalar := token.NewScalar(token.String, stringBytes)
			if isUnescaped {
				scalar.TypeAndFlags |= token.UnescapedMask
			}
			return scalar, nil
		default:
			if scanner.IsCtrl(b) {
				scanr.Back()
				return nil, UnexpectedByte(scanr, "invalid control character in string")
			}
		}
	}
}

// ParseNumber parses a JSON number from the scanner.
func ParseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	s, err := parseNumber(scanr)
	if err != nil {
		scanr.AbortToken()
	}
	return s, err
}

func parseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	var n int
	b, err := scanr.Read()

	// Sign part
	if b == '-' {
		b, err = scanr.Read()
	}
	if err != nil {
		return nil, err
	}

	// -Infinity
	if b == 'I' {
		for _, xb := range token.InfinityScalar.Bytes[1:] {
			if err := ExpectByte(scanr, xb); err != nil {
				return nil, err
			}
		}
		return token.NewScalar(token.Number, scanr.EndToken()), nil
	}

	// Integer part
	if b == '0' {
		b, err = scanr.Read()
		if err != nil {
			return nil, err
		}
	} else if b >= '1' && b <= '9' {
		b, _, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
	} else {
		scanr.Back()
		return nil, UnexpectedByte(scanr, "expected digit, got")
	}

	// Fraction part
	if b == '.' {
		b, n, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		b, err = scanr.Peek()
		if err != nil {
			return nil, err
		}
		if b == '-' || b == '+' {
			scanr.Read()
		}
		_, n, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}
	scanr.Back()
	return token.NewScalar(token.Number, scanr.EndToken()), nil
}

func ReadDigits(scanr *scanner.Scanner) (byte, int, error) {
	var n int
	for {
		b, err := scanr.Read()
		if err != nil {
			return 0, n, err
		}
		if !scanner.IsDigit(b) {
			return b, n, nil
		}
		n++
	}
}
