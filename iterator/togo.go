package iterator

// ToGo consumes value and returns it as plain Go data: map[string]any for
// objects, []any for arrays and the result of token.Scalar.ToGo for
// scalars.  Duplicate keys keep the last value.
func ToGo(value Value) any {
	switch v := value.(type) {
	case *Scalar:
		return v.Scalar().ToGo()
	case *Object:
		m := map[string]any{}
		for v.Advance() {
			key, item := v.CurrentKeyVal()
			k, _ := key.ToGo().(string)
			m[k] = ToGo(item)
		}
		return m
	case *Array:
		items := []any{}
		for v.Advance() {
			items = append(items, ToGo(v.CurrentValue()))
		}
		return items
	default:
		return nil
	}
}
