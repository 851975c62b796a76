package cesrstream

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummary(t *testing.T) {
	stream := `{"v":"KERI10JSON0000fd_","t":"icp","d":"EAbc","i":"EAbc","s":"0"}` +
		strings.Repeat("A", 1500) +
		`{"v":"KERI10JSON000002_"}ABCD garbage`
	got := Summary(stream)
	want := lines(
		"1 KERI10JSON0000fd_ icp d=EAbc i=EAbc s=0 attachment=1.5 kB",
		"2 KERI10JSON000002_ - d=- i=- s=- attachment=12 B",
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryDuplicateKeys(t *testing.T) {
	stream := `{"v":"KERI10JSON0001_","t":"icp","t":"rot","d":"EOld","d":"ENew"}`
	got := Summary(stream)
	want := "1 KERI10JSON0001_ rot d=ENew i=- s=- attachment=0 B"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	m := Split(stream).Messages[0]
	f, err := CompileFilter(`t == "rot"`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ok, err := f.Match(m); err != nil || !ok {
		t.Errorf("expected the filter to agree with the summary, got %v, %v", ok, err)
	}
}

func TestSummaryTrailers(t *testing.T) {
	got := Summary(`{"v":"KERI10JSON0001_"}` + "\n" + `{"v":"KERI10JSON0002_"`)
	if !strings.HasPrefix(got, "1 KERI10JSON0001_ - d=- i=- s=- attachment=0 B\ndecode error at byte 24: ") {
		t.Errorf("unexpected summary:\n%s", got)
	}

	got = Summary("  junk")
	if got != "orphaned data at byte 2 (4 B)" {
		t.Errorf("unexpected summary %q", got)
	}

	if got := Summary(" "); got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}
