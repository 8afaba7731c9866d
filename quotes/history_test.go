package quotes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "I see dead people", "i see dead people"},
		{"double quotes", `"I see dead people" - The Sixth Sense (1999)`, "i see dead people - the sixth sense (1999)"},
		{"single quotes", "'They're here!' - Poltergeist (1982)", "theyre here! - poltergeist (1982)"},
		{"whitespace", "  Heeere's Johnny!  ", "heeeres johnny!"},
		{"mixed case", "COME PLAY WITH US", "come play with us"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.in); got != c.want {
				t.Fatalf("Normalize(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestFileHistoryMissingFileIsEmpty(t *testing.T) {
	h, err := OpenFileHistory(filepath.Join(t.TempDir(), "history.txt"))
	if err != nil {
		t.Fatalf("OpenFileHistory error: %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("expected empty history, got %d entries", h.Len())
	}
	if h.Contains("anything") {
		t.Fatal("empty history should not contain anything")
	}
}

func TestFileHistoryAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	h, err := OpenFileHistory(path)
	if err != nil {
		t.Fatalf("OpenFileHistory error: %v", err)
	}

	entries := []string{
		`"I see dead people" - The Sixth Sense (1999)`,
		`"They're here!" - Poltergeist (1982)`,
	}
	if err := h.Append(entries); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	// Visible within the same run, normalized.
	if !h.Contains("i see dead people - the sixth sense (1999)") {
		t.Fatal("appended quote not visible to Contains")
	}

	// Visible after reload from disk.
	reloaded, err := OpenFileHistory(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("reloaded history has %d entries; want 2", reloaded.Len())
	}
	for _, e := range entries {
		if !reloaded.Contains(e) {
			t.Fatalf("reloaded history missing %q", e)
		}
	}

	// Raw lines are persisted, not the normalized form.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}
	if !strings.Contains(string(raw), entries[0]) {
		t.Fatalf("history file does not contain raw quote: %s", raw)
	}
}

// Concurrent jobs from the API and Kafka paths share one history store.
func TestFileHistoryConcurrentJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	h, err := OpenFileHistory(path)
	if err != nil {
		t.Fatalf("OpenFileHistory error: %v", err)
	}

	const jobs, perJob = 8, 25

	var wg sync.WaitGroup
	for j := 0; j < jobs; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			for i := 0; i < perJob; i++ {
				quote := fmt.Sprintf(`"quote %d-%d" - Movie (2000)`, j, i)
				h.Contains(quote)
				if err := h.Append([]string{quote}); err != nil {
					t.Errorf("Append error: %v", err)
				}
			}
		}(j)
	}
	wg.Wait()

	if h.Len() != jobs*perJob {
		t.Fatalf("history has %d entries; want %d", h.Len(), jobs*perJob)
	}
	reloaded, err := OpenFileHistory(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if reloaded.Len() != jobs*perJob {
		t.Fatalf("reloaded history has %d entries; want %d", reloaded.Len(), jobs*perJob)
	}
}

func TestFileHistoryAppendNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	h, err := OpenFileHistory(path)
	if err != nil {
		t.Fatalf("OpenFileHistory error: %v", err)
	}
	if err := h.Append(nil); err != nil {
		t.Fatalf("Append(nil) error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("empty append should not create the history file")
	}
}
