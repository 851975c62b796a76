package token

// CollapseDuplicateKeys returns the tokens of the value encoded by toks where
// objects holding the same key more than once keep a single member: the
// value is the last one given for that key, the position is the first one.
// This is how a JSON document is read into a map.  If toks contains no
// duplicate keys, it is returned unchanged.
func CollapseDuplicateKeys(toks []Token) []Token {
	if !hasDuplicateKeys(toks) {
		return toks
	}
	var out []Token
	i := 0
	for i < len(toks) {
		var val []Token
		val, i = collapseValue(toks, i)
		out = append(out, val...)
	}
	return out
}

func hasDuplicateKeys(toks []Token) bool {
	var seen []map[string]bool
	for _, tok := range toks {
		switch t := tok.(type) {
		case *StartObject:
			seen = append(seen, map[string]bool{})
		case *EndObject:
			seen = seen[:len(seen)-1]
		case *Scalar:
			if !t.IsKey() {
				continue
			}
			k := keyString(t)
			keys := seen[len(seen)-1]
			if keys[k] {
				return true
			}
			keys[k] = true
		}
	}
	return false
}

// collapseValue returns the collapsed tokens of the value starting at
// toks[i] and the index just after it.
func collapseValue(toks []Token, i int) ([]Token, int) {
	switch toks[i].(type) {
	case *StartObject:
		type member struct {
			key *Scalar
			val []Token
		}
		var members []member
		index := map[string]int{}
		j := i + 1
		for {
			key, ok := toks[j].(*Scalar)
			if !ok {
				break
			}
			var val []Token
			val, j = collapseValue(toks, j+1)
			k := keyString(key)
			if n, ok := index[k]; ok {
				members[n].val = val
				continue
			}
			index[k] = len(members)
			members = append(members, member{key: key, val: val})
		}
		out := []Token{toks[i]}
		for _, m := range members {
			out = append(out, m.key)
			out = append(out, m.val...)
		}
		return append(out, toks[j]), j + 1
	case *StartArray:
		out := []Token{toks[i]}
		j := i + 1
		for {
			if _, ok := toks[j].(*EndArray); ok {
				break
			}
			var val []Token
			val, j = collapseValue(toks, j)
			out = append(out, val...)
		}
		return append(out, toks[j]), j + 1
	default:
		return toks[i : i+1], i + 1
	}
}

// keyString identifies a key by its decoded text, falling back to its
// literal when it has none.
func keyString(key *Scalar) string {
	if s, err := key.Unquote(); err == nil {
		return s
	}
	return string(key.Bytes)
}
