// Package cesrstream renders streams of concatenated key event messages as
// human-readable reports.
//
// A stream is a text buffer holding JSON events, each optionally followed
// by an opaque attachment (typically signatures and receipts), for example
//
//	{"v":"KERI10JSON00012b_","t":"icp",...}-AABAAB...{"v":"KERI10JSON000091_",...}
//
// The stream is cut into messages by decoding one JSON value at a time with
// a decoder that reports exactly where the value ends, and by looking for
// the version field marker that starts the next message.  Everything in
// between is the attachment of the previous message.
//
// The package is organized as follows:
//
// - encoding/json: JSON decoder reporting end offsets, and indenting encoder
// - encoding/yaml: YAML rendering of decoded events
// - token: token representation of JSON values
// - iterator: value-based iteration over token streams
// - schema: reading SAIDs out of JSON schema files
//
// Format is the entry point for most uses:
//
//	report := cesrstream.Format(stream)
//
// A Formatter can be configured for colors, YAML output or filtering of
// events.  Split exposes the messages themselves.
//
// The command line tool is in the directory cmd/cesr.
package cesrstream
