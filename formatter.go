package cesrstream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vlei-notebooks/cesrstream/encoding/json"
	"github.com/vlei-notebooks/cesrstream/encoding/yaml"
	"github.com/vlei-notebooks/cesrstream/internal/format"
)

// Output selects how events are rendered in a report.
type Output int

const (
	// JSON renders events as indented JSON.
	JSON Output = iota

	// YAML renders events as YAML documents.
	YAML
)

// ParseOutput returns the Output named s ("json" or "yaml").
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	default:
		return JSON, fmt.Errorf("unknown output %q", s)
	}
}

func (o Output) label() string {
	if o == YAML {
		return "YAML:"
	}
	return "JSON:"
}

// A Formatter renders streams as reports.  The zero value is not useful,
// use DefaultFormatter to get one.
type Formatter struct {
	Vocabulary Vocabulary

	// Indent is the number of spaces per indentation level of the JSON
	// (or YAML) text.  A negative value prints JSON on a single line.
	Indent int

	// SnippetLength is the number of characters of a message that failed
	// to decode which are included in the report.
	SnippetLength int

	// SeparatorWidth is the number of dashes printed after each event.
	SeparatorWidth int

	Output Output

	// Colorizer colors the report if not nil.
	Colorizer *format.Colorizer

	// Filter, if not nil, selects the events included in the report.
	// Events left out still count when numbering events.  An event which
	// the filter fails to evaluate on is left out.
	Filter *Filter
}

// DefaultFormatter returns a Formatter producing the same output as
// Format.
func DefaultFormatter() *Formatter {
	return &Formatter{
		Vocabulary:     DefaultVocabulary,
		Indent:         2,
		SnippetLength:  200,
		SeparatorWidth: 60,
		Output:         JSON,
	}
}

// Format renders stream with the default formatter.
//
// Each message of the stream gives an event block
//
//	Event <n>:
//	JSON:
//	<the event as indented JSON>
//	Attachment:
//	<the trimmed attachment, block omitted when empty>
//	------------------------------------------------------------
//
// Non-JSON data where a message should start ends the report with an
// "--- End of Stream ---" block, and a message which is not valid JSON
// ends it with an "--- Error ---" block.  Lines are separated by "\n" and
// there is no final newline, so an empty or all-whitespace stream gives an
// empty report.
func Format(stream string) string {
	return DefaultFormatter().Format(stream)
}

// Format renders stream.
func (f *Formatter) Format(stream string) string {
	return f.FormatStream(f.Vocabulary.Split(stream))
}

// FormatStream renders a stream which has already been split.
func (f *Formatter) FormatStream(s *Stream) string {
	var parts []string
	for _, m := range s.Messages {
		parts = f.appendMessage(parts, m)
	}
	if s.Trailer != nil {
		parts = f.appendTrailer(parts, s.Trailer)
	}
	return strings.Join(parts, "\n")
}

func (f *Formatter) appendMessage(parts []string, m *Message) []string {
	if f.Filter != nil {
		if ok, err := f.Filter.Match(m); err != nil || !ok {
			return parts
		}
	}
	c := f.Colorizer
	text, err := f.render(m)
	if err != nil {
		parts = append(parts,
			c.Error("--- Error ---"),
			fmt.Sprintf("Failed to serialize JSON object to string: %s", err),
			fmt.Sprintf("Original Object: %s", m.JSON()),
		)
	} else {
		parts = append(parts,
			c.Header(fmt.Sprintf("Event %d:", m.Ordinal)),
			c.Header(f.Output.label()),
			text,
		)
	}
	if a := m.Attachment(); a != "" {
		parts = append(parts, c.Header("Attachment:"), a)
	}
	return append(parts, strings.Repeat("-", f.SeparatorWidth))
}

func (f *Formatter) render(m *Message) (string, error) {
	var (
		b   []byte
		err error
	)
	switch f.Output {
	case YAML:
		b, err = yaml.Marshal(m.Tokens, f.Indent)
	default:
		b, err = json.Indent(m.Tokens, f.Indent, f.Colorizer)
	}
	if err != nil {
		return "", unwrapPrinterError(err)
	}
	return string(b), nil
}

func (f *Formatter) appendTrailer(parts []string, t *Trailer) []string {
	c := f.Colorizer
	switch t.Kind {
	case Orphan:
		return append(parts,
			c.Error("--- End of Stream ---"),
			"Orphaned or unexpected non-JSON data:",
			t.Data,
		)
	case DecodeError:
		return append(parts,
			c.Error("--- Error ---"),
			fmt.Sprintf("Failed to decode JSON object starting at position %d: %s", t.Position, t.Err),
			"Problematic data snippet:",
			snippet(t.Data, f.SnippetLength),
		)
	default:
		return parts
	}
}

// snippet returns the first n characters of s.
func snippet(s string, n int) string {
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}

func unwrapPrinterError(err error) error {
	var perr *format.PrinterError
	if errors.As(err, &perr) {
		return perr.Err
	}
	return err
}
