// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"flowtask/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
)

// Formatter writes task and list lines. Color is enabled only when the
// destination is a terminal.
type Formatter struct {
	w     io.Writer
	color bool
}

func NewFormatter(w io.Writer) *Formatter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Formatter{w: w, color: color}
}

// Task writes one numbered task line:
// "   3  [x] ★ Buy milk  (2 hours ago)".
func (f *Formatter) Task(num int, task models.Task) {
	box := "[ ]"
	if task.IsCompleted {
		box = "[x]"
	}

	star := "  "
	if task.IsImportant {
		star = f.paint("★ ", colorYellow)
	}

	sun := ""
	if task.IsMyDay {
		sun = f.paint("☼ ", colorGreen)
	}

	age := ""
	if !task.CreatedAt.IsZero() {
		age = f.paint(fmt.Sprintf("  (%s)", humanize.Time(task.CreatedAt)), colorDim)
	}

	title := normalizeTitle(task.Title)
	if task.IsCompleted {
		title = f.paint(title, colorDim)
	}

	fmt.Fprintf(f.w, "%4d  %s %s%s%s%s\n", num, box, star, sun, title, age)
}

// TaskDetail writes the expanded view of one task.
func (f *Formatter) TaskDetail(task models.Task) {
	fmt.Fprintf(f.w, "%s\n", normalizeTitle(task.Title))
	fmt.Fprintf(f.w, "  id:         %s\n", task.ID)
	fmt.Fprintf(f.w, "  list:       %s\n", task.ListID)
	fmt.Fprintf(f.w, "  completed:  %t\n", task.IsCompleted)
	fmt.Fprintf(f.w, "  important:  %t\n", task.IsImportant)
	fmt.Fprintf(f.w, "  my day:     %t\n", task.IsMyDay)
	if task.Notes != "" {
		fmt.Fprintf(f.w, "  notes:      %s\n", task.Notes)
	}
	if task.DueDate != nil {
		fmt.Fprintf(f.w, "  due:        %s\n", task.DueDate.Format("2006-01-02"))
	}
	if len(task.AIEnrichment) > 0 {
		fmt.Fprintf(f.w, "  enrichment: %s\n", string(task.AIEnrichment))
	}
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(f.w, "  created:    %s\n", humanize.Time(task.CreatedAt))
	}
}

// List writes one list line.
func (f *Formatter) List(list models.List) {
	title := normalizeTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	owner := ""
	if list.UserIdentifier != "" {
		owner = f.paint(fmt.Sprintf("  (%s)", list.UserIdentifier), colorDim)
	}
	fmt.Fprintf(f.w, "%s%s\n", title, owner)
}

func (f *Formatter) paint(s, color string) string {
	if !f.color {
		return s
	}
	return color + s + colorReset
}

// normalizeTitle flattens newlines and substitutes a placeholder for empty
// titles.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
