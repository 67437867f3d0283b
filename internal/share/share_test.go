package share

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name   string
		won    bool
		rating int
		streak int
		want   string
	}{
		{"lost", false, 0, 3, "I haven't seen today's film"},
		{"won unrated no streak", true, 0, 1, "I've seen today's film on Widescreen.\n\n"},
		{"won unrated with streak", true, 0, 4, "I'm on a streak of 4!"},
		{"won rated no streak", true, 3, 0, "a 3/5.\n\n"},
		{"won rated with streak", true, 5, 12, "a 5/5. I'm on a streak of 12!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message(tt.won, tt.rating, tt.streak)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Message(%v, %d, %d) = %q, want it to contain %q",
					tt.won, tt.rating, tt.streak, got, tt.want)
			}
			if !strings.Contains(got, "https://bpstudios.nl/widescreen") {
				t.Error("share text is missing the game link")
			}
			if !strings.Contains(got, "Have you seen it?") {
				t.Error("share text is missing the invitation")
			}
		})
	}
}

func TestWriteQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widescreen.png")
	if err := WriteQR(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}

func TestTerminalQR(t *testing.T) {
	text, err := TerminalQR()
	if err != nil {
		t.Fatal(err)
	}
	if len(text) == 0 || !strings.Contains(text, "\n") {
		t.Error("terminal QR render looks empty")
	}
}
