package output

import (
	"bytes"
	"strings"
	"testing"

	"flowtask/internal/models"
)

func TestTaskLine(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Task(3, models.Task{Title: "Buy milk"})

	line := buf.String()
	if !strings.HasPrefix(line, "   3  [ ] ") {
		t.Errorf("Unexpected line prefix: %q", line)
	}
	if !strings.Contains(line, "Buy milk") {
		t.Errorf("Expected title in line: %q", line)
	}
}

func TestTaskLineCompleted(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Task(1, models.Task{Title: "Done thing", IsCompleted: true})

	if !strings.Contains(buf.String(), "[x]") {
		t.Errorf("Expected completed marker: %q", buf.String())
	}
}

func TestListLineDefault(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.List(models.List{Title: "Inbox", IsDefault: true})

	if !strings.Contains(buf.String(), "Inbox [default]") {
		t.Errorf("Expected default marker: %q", buf.String())
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", "line break"},
		{"cr\r\nlf", "cr  lf"},
		{"   ", "(untitled)"},
		{"", "(untitled)"},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNoColorForBuffer(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Task(1, models.Task{Title: "starred", IsImportant: true})

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("Expected no ANSI codes for non-terminal writer: %q", buf.String())
	}
}
