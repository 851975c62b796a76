package json

import (
	"bytes"
	"fmt"

	"github.com/vlei-notebooks/cesrstream/internal/format"
	"github.com/vlei-notebooks/cesrstream/iterator"
	"github.com/vlei-notebooks/cesrstream/token"
)

// An Encoder outputs a stream of JSON values using the given Printer
// instance for formatting.
type Encoder struct {
	format.Printer
	*format.Colorizer
}

// Consume formats the JSON stream read from the given stream, one value per
// line.  It assumes that the stream is well-formed, i.e. is a valid encoding
// for a stream of JSON values and may panic if that is not the case.
//
// An error is returned if the Printer could not perform some writing
// operation, or if a string in the stream cannot be represented as UTF-8
// text (token.ErrNotRepresentable).
func (e *Encoder) Consume(stream token.ReadStream) (err error) {
	defer format.CatchPrinterError(&err)
	iter := iterator.New(stream)
	first := true
	for iter.Advance() {
		if !first {
			e.PrintBytes(newLineBytes)
		}
		first = false
		e.writeValue(iter.CurrentValue())
	}
	return nil
}

// Indent renders the JSON value encoded by toks with indent spaces per
// level (a negative indent puts everything on one line).
func Indent(toks []token.Token, indent int, colorizer *format.Colorizer) ([]byte, error) {
	var buf bytes.Buffer
	enc := &Encoder{
		Printer:   &format.DefaultPrinter{Writer: &buf, IndentSize: indent},
		Colorizer: colorizer,
	}
	if err := enc.Consume(token.NewSliceReadStream(toks)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) writeValue(value iterator.Value) {
	switch v := value.(type) {
	case *iterator.Scalar:
		e.writeScalar(v.Scalar())
	case *iterator.Object:
		e.writeObject(v)
	case *iterator.Array:
		e.writeArray(v)
	default:
		panic(fmt.Sprintf("invalid stream item: %#v", value))
	}
}

func (e *Encoder) writeScalar(s *token.Scalar) {
	b := s.Bytes
	if s.Type() == token.String {
		str, err := s.Unquote()
		if err != nil {
			format.Fail(err)
		}
		if !s.IsUnescaped() {
			b = token.Quote(str)
		}
	}
	e.Colorizer.PrintScalar(e.Printer, s, b)
}

func (e *Encoder) writeObject(obj *iterator.Object) {
	e.PrintBytes(openObjectBytes)
	firstItem := true
	for obj.Advance() {
		key, value := obj.CurrentKeyVal()
		if !firstItem {
			e.writeItemSeparator()
		} else {
			e.Indent()
			firstItem = false
		}
		e.writeScalar(key)
		e.PrintBytes(keyValueSeparatorBytes)
		e.writeValue(value)
	}
	if !firstItem {
		e.Dedent()
	}
	e.PrintBytes(closeObjectBytes)
}

func (e *Encoder) writeArray(arr *iterator.Array) {
	e.PrintBytes(openArrayBytes)
	firstItem := true
	for arr.Advance() {
		value := arr.CurrentValue()
		if !firstItem {
			e.writeItemSeparator()
		} else {
			e.Indent()
			firstItem = false
		}
		e.writeValue(value)
	}
	if !firstItem {
		e.Dedent()
	}
	e.PrintBytes(closeArrayBytes)
}

// Single line output separates items with ", " so that it reads the same as
// indented output joined on one line.
func (e *Encoder) writeItemSeparator() {
	if p, ok := e.Printer.(interface{ Inline() bool }); ok && p.Inline() {
		e.PrintBytes(inlineItemSeparatorBytes)
		return
	}
	e.PrintBytes(itemSeparatorBytes)
	e.NewLine()
}

var (
	openObjectBytes          = []byte("{")
	closeObjectBytes         = []byte("}")
	openArrayBytes           = []byte("[")
	closeArrayBytes          = []byte("]")
	itemSeparatorBytes       = []byte(",")
	inlineItemSeparatorBytes = []byte(", ")
	keyValueSeparatorBytes   = []byte(": ")
	newLineBytes             = []byte("\n")
)
