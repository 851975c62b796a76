// Package schema reads self-addressing identifiers (SAIDs) out of JSON
// schema files which have already been saidified.
package schema

import (
	"errors"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/tidwall/gjson"
)

var log = logging.Logger("cesr/schema")

// DefaultKey holds the SAID of a whole schema.
const DefaultKey = "$id"

var (
	// ErrInvalidJSON is returned for schema files that are not JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotObject is returned when the root of a schema is not an object.
	ErrNotObject = errors.New("schema root is not an object")

	// ErrNoSAID is returned when the SAID key is missing, not a string or
	// empty.
	ErrNoSAID = errors.New("no SAID")
)

// Sections of a schema whose sub-schemas carry their own SAID.
var Sections = []string{"a", "e", "r"}

// A Schema is a JSON schema document.
type Schema struct {
	Path string
	root gjson.Result
}

// Load reads the schema at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return Parse(path, data)
}

// Parse parses a schema read from path.
func Parse(path string, data []byte) (*Schema, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidJSON)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%s: %w (found %s)", path, ErrNotObject, root.Type)
	}
	return &Schema{Path: path, root: root}, nil
}

// SAID returns the string stored under the top-level key.
func (s *Schema) SAID(key string) (string, error) {
	v, ok := s.root.Map()[key]
	if !ok {
		return "", fmt.Errorf("%s: %w: top-level key %q not found", s.Path, ErrNoSAID, key)
	}
	if v.Type != gjson.String {
		log.Warnf("value for top-level key %q in %s is not a string (found %s)", key, s.Path, v.Type)
		return "", fmt.Errorf("%s: %w: value for %q is %s, not a string", s.Path, ErrNoSAID, key, v.Type)
	}
	if v.Str == "" {
		log.Warnf("value for top-level key %q in %s is an empty string", key, s.Path)
		return "", fmt.Errorf("%s: %w: value for %q is empty", s.Path, ErrNoSAID, key)
	}
	return v.Str, nil
}

// A SectionSAID is the SAID of a sub-schema.
type SectionSAID struct {
	// Section is the property holding the sub-schema, with ".oneOf[i]"
	// appended for alternatives.
	Section string
	SAID    string
}

// SectionSAIDs returns the SAIDs of the sub-schemas found in the a, e and
// r properties, either directly or among their oneOf alternatives.  A
// sub-schema holding nothing but its $id is skipped.
func (s *Schema) SectionSAIDs() []SectionSAID {
	var saids []SectionSAID
	props := s.root.Get("properties")
	if !props.IsObject() {
		return nil
	}
	fields := props.Map()
	for _, section := range Sections {
		prop, ok := fields[section]
		if !ok || !prop.IsObject() {
			continue
		}
		if said, ok := subSchemaSAID(prop); ok {
			saids = append(saids, SectionSAID{Section: section, SAID: said})
		}
		oneOf := prop.Get("oneOf")
		if !oneOf.IsArray() {
			continue
		}
		for i, item := range oneOf.Array() {
			if said, ok := subSchemaSAID(item); ok {
				saids = append(saids, SectionSAID{
					Section: fmt.Sprintf("%s.oneOf[%d]", section, i),
					SAID:    said,
				})
			}
		}
	}
	return saids
}

func subSchemaSAID(item gjson.Result) (string, bool) {
	if !item.IsObject() {
		return "", false
	}
	fields := item.Map()
	id, ok := fields[DefaultKey]
	if !ok || id.Type != gjson.String || len(fields) < 2 {
		return "", false
	}
	return id.Str, true
}

// ReadSAID returns the SAID stored under key at the root of the schema file
// at path.  An empty key means DefaultKey.
func ReadSAID(path, key string) (string, error) {
	if key == "" {
		key = DefaultKey
	}
	s, err := Load(path)
	if err != nil {
		return "", err
	}
	said, err := s.SAID(key)
	if err != nil {
		return "", err
	}
	log.Debugf("read SAID %s from %s", said, path)
	return said, nil
}
