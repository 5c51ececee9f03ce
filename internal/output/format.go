// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tasktrack/internal/service"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// FormatTaskTable writes tasks as "ID  STATUS  TITLE" with an OWNER column
// when showOwner is set.
func FormatTaskTable(w io.Writer, tasks []service.Task, showOwner bool) error {
	tw := newTable(w)
	if showOwner {
		fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tOWNER")
	} else {
		fmt.Fprintln(tw, "ID\tSTATUS\tTITLE")
	}
	for _, t := range tasks {
		if showOwner {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.TrackingStatus.Label(), normalizeTitle(t.Title), owner(t))
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.TrackingStatus.Label(), normalizeTitle(t.Title))
		}
	}
	return tw.Flush()
}

// FormatPersonTable writes persons as "ID  USERNAME  NAME  ROLE".
func FormatPersonTable(w io.Writer, persons []service.Person) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tROLE")
	for _, p := range persons {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.PersonID, p.Username, normalizeTitle(p.FullName), p.Role)
	}
	return tw.Flush()
}

// FormatFooter writes the pager line, e.g. "page 2/3 · 25 items".
func FormatFooter[T any](w io.Writer, page service.Page[T]) {
	total := page.TotalPages
	if total < 1 {
		total = 1
	}
	noun := "items"
	if page.TotalElements == 1 {
		noun = "item"
	}
	fmt.Fprintf(w, "page %d/%d · %d %s\n", page.Number+1, total, page.TotalElements, noun)
}

// FormatTask writes a one-line task summary, as printed after mutations.
func FormatTask(w io.Writer, t service.Task) {
	fmt.Fprintf(w, "#%d [%s] %s\n", t.ID, t.TrackingStatus.Label(), normalizeTitle(t.Title))
}

// FormatPerson writes a person summary.
func FormatPerson(w io.Writer, p service.Person) {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		name = p.Username
	}
	fmt.Fprintf(w, "%s (%s) #%d %s\n", name, p.Username, p.PersonID, p.Role)
}

// FormatPersonDetail writes every field of a person, one per line.
func FormatPersonDetail(w io.Writer, p service.Person) {
	fmt.Fprintf(w, "#%d %s\n", p.PersonID, strings.TrimSpace(p.FullName))
	fmt.Fprintf(w, "username: %s\n", p.Username)
	fmt.Fprintf(w, "role:     %s\n", p.Role)
}

// FormatTaskDetail writes a task with its description rendered as markdown.
func FormatTaskDetail(w io.Writer, t service.Task, md *Markdown) {
	fmt.Fprintf(w, "#%d %s\n", t.ID, normalizeTitle(t.Title))
	fmt.Fprintf(w, "Status: %s\n", t.TrackingStatus.Label())
	fmt.Fprintf(w, "Owner:  %s\n", owner(t))
	fmt.Fprintln(w)

	if strings.TrimSpace(t.Description) == "" {
		fmt.Fprintln(w, "(no description)")
		return
	}
	fmt.Fprintln(w, md.Render(t.Description))
}

func owner(t service.Task) string {
	if t.Username != "" {
		return t.Username
	}
	return fmt.Sprintf("#%d", t.UserID)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
