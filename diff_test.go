package cesrstream

import (
	"strings"
	"testing"
)

func TestDiffReports(t *testing.T) {
	got := DiffReports("a\nb\nc", "a\nx\nc")
	want := " a\n-b\n+x\n c\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := DiffReports("a\nb", "a\nb"); got != "" {
		t.Errorf("expected no difference, got %q", got)
	}
}

func TestDiff(t *testing.T) {
	a := `{"v":"KERI10JSON0001_","t":"icp"}-AAB`
	b := `{"v":"KERI10JSON0001_","t":"rot"}-AAB`
	got := Diff(a, b)
	if !strings.Contains(got, `-  "t": "icp"`) || !strings.Contains(got, `+  "t": "rot"`) {
		t.Errorf("unexpected diff:\n%s", got)
	}
	if !strings.Contains(got, " Attachment:\n") {
		t.Errorf("expected common lines in diff:\n%s", got)
	}
	if got := Diff(a, "  "+a+"\n"); got != "" {
		t.Errorf("expected no difference, got:\n%s", got)
	}
}
