package cesrstream

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnv(t *testing.T) {
	s := Split(`{"v":"KERI10JSON0001_","t":"icp","ordinal":"x","kt":["1"]} -AAB `)
	got := Env(s.Messages[0])
	event := map[string]any{
		"v":       "KERI10JSON0001_",
		"t":       "icp",
		"ordinal": "x",
		"kt":      []any{"1"},
	}
	want := map[string]any{
		"v":          "KERI10JSON0001_",
		"t":          "icp",
		"ordinal":    1,
		"kt":         []any{"1"},
		"attachment": "-AAB",
		"event":      event,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileFilterErrors(t *testing.T) {
	for _, src := range []string{`t ==`, `"icp"`, `1 + 2`} {
		if _, err := CompileFilter(src); err == nil {
			t.Errorf("expected an error compiling %q", src)
		}
	}
}

func TestFilterMatch(t *testing.T) {
	s := Split(`{"v":"KERI10JSON0001_","t":"icp","kt":["1","1"]}{"v":"KERI10JSON0002_","t":"ixn"}`)
	tests := []struct {
		src  string
		want []bool
	}{
		{`t in ["icp", "dip"]`, []bool{true, false}},
		{`len(kt ?? []) == 2`, []bool{true, false}},
		{`ordinal > 1`, []bool{false, true}},
		{`attachment == ""`, []bool{true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := CompileFilter(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if f.String() != tt.src {
				t.Errorf("unexpected source %q", f.String())
			}
			for i, m := range s.Messages {
				got, err := f.Match(m)
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				if got != tt.want[i] {
					t.Errorf("event %d: expected %v, got %v", m.Ordinal, tt.want[i], got)
				}
			}
		})
	}
}
