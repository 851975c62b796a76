package cesrstream

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/vlei-notebooks/cesrstream/encoding/json"
)

// A MessageSummary holds the identifying fields of a message.  Fields
// missing from the event are empty.
type MessageSummary struct {
	Ordinal        int
	Version        string // v
	Ilk            string // t
	SAID           string // d
	Prefix         string // i
	Sequence       string // s
	AttachmentSize int
}

// Summarize extracts the identifying fields of m.  Fields are read from the
// decoded value, so a duplicated key reports its last value as the formatted
// event does.
func Summarize(m *Message) MessageSummary {
	src := m.JSON()
	if b, err := json.Indent(m.Tokens, -1, nil); err == nil {
		src = string(b)
	}
	res := gjson.GetMany(src, "v", "t", "d", "i", "s")
	return MessageSummary{
		Ordinal:        m.Ordinal,
		Version:        res[0].String(),
		Ilk:            res[1].String(),
		SAID:           res[2].String(),
		Prefix:         res[3].String(),
		Sequence:       res[4].String(),
		AttachmentSize: len(m.Attachment()),
	}
}

func (s MessageSummary) String() string {
	return fmt.Sprintf("%d %s %s d=%s i=%s s=%s attachment=%s",
		s.Ordinal,
		orDash(s.Version),
		orDash(s.Ilk),
		orDash(s.SAID),
		orDash(s.Prefix),
		orDash(s.Sequence),
		humanize.Bytes(uint64(s.AttachmentSize)),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Summary returns one line per message of stream, followed by a line
// describing where splitting stopped if the stream did not end cleanly.
func Summary(stream string) string {
	return SummarizeStream(Split(stream))
}

// SummarizeStream is like Summary for a stream already split.
func SummarizeStream(s *Stream) string {
	var lines []string
	for _, m := range s.Messages {
		lines = append(lines, Summarize(m).String())
	}
	if t := s.Trailer; t != nil {
		switch t.Kind {
		case Orphan:
			lines = append(lines, fmt.Sprintf("orphaned data at byte %d (%s)",
				t.Offset, humanize.Bytes(uint64(len(t.Data)))))
		case DecodeError:
			lines = append(lines, fmt.Sprintf("decode error at byte %d: %s", t.Offset, t.Err))
		}
	}
	return strings.Join(lines, "\n")
}
