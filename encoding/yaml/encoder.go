// Package yaml renders JSON token streams as YAML documents, keeping the
// order of object keys.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/vlei-notebooks/cesrstream/iterator"
	"github.com/vlei-notebooks/cesrstream/token"
)

// ErrEmpty is returned by Marshal when there is no value to render.
var ErrEmpty = errors.New("no value to render")

const defaultIndent = 2

// Marshal renders the first JSON value encoded by toks as YAML, indenting
// by indent spaces.  The result has no trailing newline.
func Marshal(toks []token.Token, indent int) ([]byte, error) {
	iter := iterator.New(token.NewSliceReadStream(toks))
	if !iter.Advance() {
		return nil, ErrEmpty
	}
	v, err := toYAML(iter.CurrentValue())
	if err != nil {
		return nil, err
	}
	if indent <= 0 {
		indent = defaultIndent
	}
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(indent))
	if err != nil {
		return nil, fmt.Errorf("rendering yaml: %w", err)
	}
	return bytes.TrimRight(out, "\n"), nil
}

func toYAML(value iterator.Value) (any, error) {
	switch v := value.(type) {
	case *iterator.Scalar:
		return scalarToYAML(v.Scalar())
	case *iterator.Object:
		m := yaml.MapSlice{}
		for v.Advance() {
			key, item := v.CurrentKeyVal()
			k, err := key.Unquote()
			if err != nil {
				return nil, err
			}
			y, err := toYAML(item)
			if err != nil {
				return nil, err
			}
			m = append(m, yaml.MapItem{Key: k, Value: y})
		}
		return m, nil
	case *iterator.Array:
		items := []any{}
		for v.Advance() {
			y, err := toYAML(v.CurrentValue())
			if err != nil {
				return nil, err
			}
			items = append(items, y)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("invalid value %#v", value)
	}
}

func scalarToYAML(s *token.Scalar) (any, error) {
	switch s.Type() {
	case token.String:
		return s.Unquote()
	case token.Number:
		lit := string(s.Bytes)
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return n, nil
		}
		return s.ToGo(), nil
	default:
		return s.ToGo(), nil
	}
}
