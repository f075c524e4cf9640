package storage

import (
	"testing"
	"time"
)

func TestDocKey_Layout(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	key := DocKey("abc123", "resume", ts)

	want := "abc123/resume_20250314_150926.md"
	if key != want {
		t.Fatalf("expected %q, got %q", want, key)
	}
}

func TestValidDocKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"abc123/resume_20250314_150926.md", true},
		{"abc123/uploads/cv.pdf", true},
		{"", false},
		{"noslash.md", false},
		{"/abs/key.md", false},
		{"abc/../other/key.md", false},
	}
	for _, c := range cases {
		if got := ValidDocKey(c.key); got != c.want {
			t.Fatalf("ValidDocKey(%q) = %v, want %v", c.key, got, c.want)
		}
	}
}
