package iterator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vlei-notebooks/cesrstream/token"
)

func key(s string) *token.Scalar {
	return token.NewScalar(token.String|token.KeyMask, token.Quote(s))
}

func str(s string) *token.Scalar {
	return token.NewScalar(token.String, token.Quote(s))
}

func num(s string) *token.Scalar {
	return token.NewScalar(token.Number, []byte(s))
}

// {"v": "KERI10JSON", "k": [1, true, null], "a": {}} "x"
func sampleTokens() []token.Token {
	return []token.Token{
		&token.StartObject{},
		key("v"), str("KERI10JSON"),
		key("k"),
		&token.StartArray{},
		num("1"), token.TrueScalar, token.NullScalar,
		&token.EndArray{},
		key("a"), &token.StartObject{}, &token.EndObject{},
		&token.EndObject{},
		str("x"),
	}
}

func TestIteratorToGo(t *testing.T) {
	it := New(token.NewSliceReadStream(sampleTokens()))
	var got []any
	for it.Advance() {
		got = append(got, ToGo(it.CurrentValue()))
	}
	want := []any{
		map[string]any{
			"v": "KERI10JSON",
			"k": []any{float64(1), true, nil},
			"a": map[string]any{},
		},
		"x",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToGo mismatch (-want +got):\n%s", diff)
	}
}

func TestIteratorDiscardsUnreadValues(t *testing.T) {
	it := New(token.NewSliceReadStream(sampleTokens()))
	if !it.Advance() {
		t.Fatal("expected a first value")
	}
	obj, ok := it.CurrentValue().(*Object)
	if !ok {
		t.Fatalf("expected an object, got %T", it.CurrentValue())
	}
	// Only look at the first key, leave the rest unread.
	if !obj.Advance() {
		t.Fatal("expected a first key")
	}
	k, _ := obj.CurrentKeyVal()
	if string(k.Bytes) != `"v"` {
		t.Errorf("expected key v, got %s", k)
	}
	if !it.Advance() {
		t.Fatal("expected a second value")
	}
	s, ok := it.CurrentValue().(*Scalar)
	if !ok || string(s.Scalar().Bytes) != `"x"` {
		t.Errorf("expected scalar \"x\", got %#v", it.CurrentValue())
	}
	if it.Advance() {
		t.Error("expected end of stream")
	}
}

func TestArrayOrder(t *testing.T) {
	toks := []token.Token{
		&token.StartArray{},
		num("3"), num("1"), num("2"),
		&token.EndArray{},
	}
	it := New(token.NewSliceReadStream(toks))
	it.Advance()
	arr := it.CurrentValue().(*Array)
	var got []string
	for arr.Advance() {
		got = append(got, string(arr.CurrentValue().(*Scalar).Bytes))
	}
	if diff := cmp.Diff([]string{"3", "1", "2"}, got); diff != "" {
		t.Errorf("array items mismatch (-want +got):\n%s", diff)
	}
	if !arr.Done() {
		t.Error("expected array to be done")
	}
}
