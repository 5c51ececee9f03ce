package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"tasktrack/internal/listview"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

const skeletonRows = 5

func (m browseModel) View() string {
	if m.mode == modeDetail && m.detail != nil {
		return m.viewDetail()
	}

	v := m.list.View()
	var b strings.Builder

	b.WriteString(m.viewHeader(v.Query))
	b.WriteString("\n\n")

	if v.Err != nil {
		b.WriteString(styleBanner().Render("error: " + v.Message()))
		b.WriteString("\n\n")
	}

	switch {
	case v.InitialLoading:
		b.WriteString(m.spin.View() + " loading tasks\n")
		for i := 0; i < skeletonRows; i++ {
			b.WriteString(styleSkeleton().Render(strings.Repeat("░", clamp(m.width-4, 10, 60))))
			b.WriteString("\n")
		}
	case len(v.Rows) == 0 && v.Err == nil:
		b.WriteString(styleMuted().Render("no tasks found"))
		b.WriteString("\n")
	default:
		showOwner := v.Query.View == listview.ViewAll
		for i, t := range v.Rows {
			b.WriteString(m.viewRow(t, i == m.cursor, showOwner))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter(v))
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(m.search.View())
	case modeConfirmDelete:
		if t, ok := m.selected(); ok {
			b.WriteString(fmt.Sprintf("delete #%d %q? (y/n)", t.ID, t.Title))
		}
	default:
		b.WriteString(m.viewStatusLine())
	}
	return b.String()
}

func (m browseModel) viewHeader(q listview.Query) string {
	title := "My tasks"
	if q.View == listview.ViewAll {
		title = "All tasks"
	}
	parts := []string{styleTitle().Render(title)}

	status := "all statuses"
	if q.Status != listview.StatusAll && q.Status != "" {
		status = q.Status.Label()
	}
	parts = append(parts, styleMuted().Render("status: "+status))
	if q.SearchText != "" {
		parts = append(parts, styleMuted().Render(fmt.Sprintf("search: %q", q.SearchText)))
	}
	parts = append(parts, styleMuted().Render("sort: "+string(q.Sort)))
	return strings.Join(parts, "  ")
}

func (m browseModel) viewRow(t service.Task, selected, showOwner bool) string {
	label := styleStatus(string(t.TrackingStatus)).Render(fmt.Sprintf("%-11s", t.TrackingStatus.Label()))
	line := fmt.Sprintf("%4d  %s  %s", t.ID, label, t.Title)
	if showOwner {
		line += styleMuted().Render("  @" + t.Username)
	}
	if selected {
		return styleSelected().Render("›") + " " + line
	}
	return "  " + line
}

func (m browseModel) viewFooter(v listview.View[service.Task]) string {
	var b strings.Builder
	output.FormatFooter(&b, v.Page)
	footer := strings.TrimRight(b.String(), "\n")
	if v.Fetching || m.pending > 0 {
		footer += "  " + m.spin.View()
	}
	return styleMuted().Render(footer)
}

func (m browseModel) viewStatusLine() string {
	if m.flash != "" {
		if m.flashErr {
			return styleBanner().Render(m.flash)
		}
		return m.flash
	}
	keys := "j/k move  n/p page  s status  o sort  / search  enter open  >/< status  d delete  r refresh  R reset  q quit"
	if m.admin {
		keys = strings.Replace(keys, "R reset", "v view  R reset", 1)
	}
	return styleMuted().Render(keys)
}

func (m browseModel) viewDetail() string {
	t := m.detail
	var b strings.Builder
	b.WriteString(styleTitle().Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	b.WriteString("\n")
	b.WriteString(styleStatus(string(t.TrackingStatus)).Render(t.TrackingStatus.Label()))
	b.WriteString(styleMuted().Render("  @" + t.Username))
	b.WriteString("\n\n")

	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		b.WriteString(styleMuted().Render("(no description)"))
	} else {
		width := clamp(m.width-4, 20, 100)
		b.WriteString(output.RenderMarkdown(desc, markdownStyle(), width))
	}
	b.WriteString("\n\n")

	if m.mode == modeConfirmDelete {
		b.WriteString(fmt.Sprintf("delete #%d %q? (y/n)", t.ID, t.Title))
	} else if m.flash != "" {
		b.WriteString(m.viewStatusLine())
	} else {
		b.WriteString(styleMuted().Render(">/< status  d delete  esc back  q quit"))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
