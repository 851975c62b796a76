package cesrstream

import "strings"

// A Vocabulary holds the markers used to find where a message starts.
type Vocabulary struct {
	// Marker is searched for after each JSON value to find the next
	// message.
	Marker string

	// A Marker occurrence is taken as the start of the next message when
	// it is the beginning of one of the Qualified prefixes.
	Qualified []string

	// When the nearest Marker is not qualified, the first occurrence of a
	// Fallback prefix (tried in order) is taken instead.
	Fallback []string
}

// DefaultVocabulary recognizes KERI and ACDC messages serialized as JSON.
var DefaultVocabulary = Vocabulary{
	Marker:    `{"v":`,
	Qualified: []string{`{"v":"KERI10JSON`, `{"v":"ACDC10JSON`},
	Fallback:  []string{`{"v":"KERI10JSON`},
}

// NextMessage returns the byte offset in stream of the message following a
// JSON value ending at end, or -1 if there is none, in which case the rest
// of the stream is attachment.
func (v Vocabulary) NextMessage(stream string, end int) int {
	if v.Marker == "" {
		return -1
	}
	rest := stream[end:]
	p := strings.Index(rest, v.Marker)
	if p < 0 {
		return -1
	}
	for _, q := range v.Qualified {
		if strings.HasPrefix(rest[p:], q) {
			return end + p
		}
	}
	for _, f := range v.Fallback {
		if f == "" {
			continue
		}
		if i := strings.Index(rest, f); i >= 0 {
			return end + i
		}
	}
	return -1
}
