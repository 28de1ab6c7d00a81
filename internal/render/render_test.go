package render

import (
	"strings"
	"testing"
	"time"
)

func TestNoteRendersText(t *testing.T) {
	r := New("dark")
	r.SetWidth(60)

	out, err := r.Note("a.md", time.Unix(1000, 0), []byte("# Title\n\nplain body text\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "plain body text") {
		t.Errorf("rendered output missing body text:\n%s", out)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading text:\n%s", out)
	}
}

func TestNoteCacheKeyedByModTime(t *testing.T) {
	r := New("dark")

	first, err := r.Note("a.md", time.Unix(1000, 0), []byte("old\n"))
	if err != nil {
		t.Fatal(err)
	}

	// Same path and mod time hits the cache even with different bytes;
	// a bumped mod time re-renders.
	cached, err := r.Note("a.md", time.Unix(1000, 0), []byte("new\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cached != first {
		t.Error("expected cache hit for unchanged mod time")
	}

	fresh, err := r.Note("a.md", time.Unix(2000, 0), []byte("new\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fresh, "new") {
		t.Errorf("expected re-render after mod time change, got:\n%s", fresh)
	}
}

func TestCompressBlankRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no blanks", "a\nb", "a\nb"},
		{"two kept", "a\n\n\nb", "a\n\n\nb"},
		{"run capped", "a\n\n\n\n\nb", "a\n\n\nb"},
		{"whitespace counts as blank", "a\n \n\t\n  \nb", "a\n \n\t\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compressBlankRuns(tt.in); got != tt.want {
				t.Errorf("compressBlankRuns(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVeil(t *testing.T) {
	v := Veil(40, 5, "#585b70")

	if !strings.Contains(v, "content hidden") {
		t.Errorf("veil missing message: %q", v)
	}
	if got := len(strings.Split(v, "\n")); got != 5 {
		t.Errorf("veil height = %d lines, want 5", got)
	}
}
