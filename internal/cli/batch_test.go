package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadDeckList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.txt")
	content := "# portfolio decks\ndecks/acme.txt\n\n  decks/globex.txt  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	paths, err := readDeckList(path)
	if err != nil {
		t.Fatalf("readDeckList failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d: %v", len(paths), paths)
	}
	if paths[0] != "decks/acme.txt" || paths[1] != "decks/globex.txt" {
		t.Errorf("Unexpected paths: %v", paths)
	}
}

func TestReadDeckList_MissingFile(t *testing.T) {
	if _, err := readDeckList("/nonexistent/decks.txt"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "Acme-Corp"},
		{"A/B: Testing?", "A_B_-Testing_"},
		{"  ", "deck"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
