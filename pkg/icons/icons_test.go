package icons

import (
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in     string
		want   Name
		wantOK bool
	}{
		{"Star", "Star", true},
		{"FitnessCenter", "FitnessCenter", true},
		{" Book ", "Book", true},
		{"", Default, false},
		{"NotAnIcon", Default, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := Parse(tc.in)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Parse(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestGlyphFallsBackToDefault(t *testing.T) {
	if Name("Unknown").Glyph() != Default.Glyph() {
		t.Error("unknown icons should render as the default glyph")
	}
}

func TestSearch(t *testing.T) {
	if got := Search(""); len(got) != len(All()) {
		t.Errorf("empty query returned %d icons, want %d", len(got), len(All()))
	}

	got := Search("sports")
	if len(got) == 0 {
		t.Fatal("expected matches for 'sports'")
	}
	for _, n := range got {
		if !Name(n).Valid() {
			t.Errorf("search returned unknown icon %q", n)
		}
	}

	if got := Search("^book$"); len(got) != 1 || got[0] != "Book" {
		t.Errorf("Search(^book$) = %v", got)
	}

	if got := Search("(("); got != nil {
		t.Errorf("invalid pattern should match nothing, got %v", got)
	}
}

func TestAllSorted(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("All() not sorted at %d: %q >= %q", i, all[i-1], all[i])
		}
	}
}
