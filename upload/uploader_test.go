package upload

import (
	"testing"

	"quotereel/config"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "horror,scary,shorts", []string{"horror", "scary", "shorts"}},
		{"whitespace", " horror , scary ", []string{"horror", "scary"}},
		{"empties dropped", "horror,,scary,", []string{"horror", "scary"}},
		{"all empty", " , ,", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ParseTags(c.in)
			if len(got) != len(c.want) {
				t.Fatalf("ParseTags(%q) = %v; want %v", c.in, got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("tag %d: got %q; want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestDefaultMetadata(t *testing.T) {
	m := DefaultMetadata()
	if m.Title == "" || m.Description == "" {
		t.Fatal("default metadata must carry a title and description")
	}
	if m.CategoryID != config.YouTubeCategoryID {
		t.Fatalf("category = %q; want %q", m.CategoryID, config.YouTubeCategoryID)
	}
	if len(m.Tags) == 0 {
		t.Fatal("default metadata should include tags")
	}
}
