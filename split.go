package cesrstream

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vlei-notebooks/cesrstream/encoding/json"
	"github.com/vlei-notebooks/cesrstream/token"
)

// A Message is a JSON event decoded from a stream together with its
// attachment.  Offsets are byte offsets into the stream.
type Message struct {
	// Ordinal is the 1-based position of the message in the stream.
	Ordinal int

	// The JSON value spans [Start, End).
	Start, End int

	// The attachment spans [End, AttachmentEnd), untrimmed.
	AttachmentEnd int

	// Tokens of the decoded value.  Duplicate keys are collapsed, the last
	// value winning.
	Tokens []token.Token

	stream string
}

// JSON returns the JSON text of the message as it appears in the stream.
func (m *Message) JSON() string {
	return m.stream[m.Start:m.End]
}

// Attachment returns the attachment with surrounding whitespace removed.
func (m *Message) Attachment() string {
	return strings.TrimFunc(m.stream[m.End:m.AttachmentEnd], isSpace)
}

// TrailerKind tells why splitting a stream stopped early.
type TrailerKind int

const (
	// Orphan means non-JSON data was found where a message should start.
	Orphan TrailerKind = iota + 1

	// DecodeError means a message could not be decoded as JSON.
	DecodeError
)

// A Trailer describes the part of a stream which could not be split into
// messages.
type Trailer struct {
	Kind TrailerKind

	// Offset is where the trailer starts in the stream.  For an orphan it
	// is the first non-whitespace byte, for a decode error it is the start
	// of the JSON value.
	Offset int

	// Position is Offset counted in characters rather than bytes.
	Position int

	// Data is the stream from Offset to the end.
	Data string

	// Err is the decoding error when Kind is DecodeError.
	Err error
}

// A Stream is the result of splitting a stream into messages.
type Stream struct {
	Messages []*Message

	// Trailer is nil if the whole stream was split into messages.
	Trailer *Trailer
}

// Split cuts stream into messages using DefaultVocabulary.
func Split(stream string) *Stream {
	return DefaultVocabulary.Split(stream)
}

// Split cuts stream into messages.  Splitting stops at the first position
// where a message should start but no JSON object is found, or where the
// object cannot be decoded.
func (v Vocabulary) Split(stream string) *Stream {
	s := &Stream{}
	pos := 0
	for ordinal := 1; ; ordinal++ {
		start := skipSpace(stream, pos)
		if start == len(stream) {
			break
		}
		if stream[start] != '{' {
			s.Trailer = &Trailer{
				Kind:     Orphan,
				Offset:   start,
				Position: utf8.RuneCountInString(stream[:start]),
				Data:     stream[start:],
			}
			break
		}
		acc := token.NewAccumulatorStream()
		dec := json.NewDecoder(strings.NewReader(stream[start:]))
		if err := dec.Decode(acc); err != nil {
			s.Trailer = &Trailer{
				Kind:     DecodeError,
				Offset:   start,
				Position: utf8.RuneCountInString(stream[:start]),
				Data:     stream[start:],
				Err:      err,
			}
			break
		}
		end := start + dec.Offset()
		next := v.NextMessage(stream, end)
		attachmentEnd := next
		if next < 0 {
			attachmentEnd = len(stream)
		}
		s.Messages = append(s.Messages, &Message{
			Ordinal:       ordinal,
			Start:         start,
			End:           end,
			AttachmentEnd: attachmentEnd,
			Tokens:        token.CollapseDuplicateKeys(acc.GetTokens()),
			stream:        stream,
		})
		if next < 0 {
			break
		}
		pos = next
	}
	return s
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if !isSpace(r) {
			break
		}
		i += n
	}
	return i
}

// isSpace reports whether r is whitespace between messages.  On top of the
// Unicode white space it counts the ASCII separators 0x1c to 0x1f.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r >= 0x1c && r <= 0x1f
}
