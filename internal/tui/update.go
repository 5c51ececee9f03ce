package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tasktrack/internal/listview"
	"tasktrack/internal/mutation"
	"tasktrack/internal/service"
)

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = msg.Width - 4
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.err != nil && msg.err != listview.ErrSuperseded {
			m.logger.Debugf("load failed: %v", msg.err)
		}
		m.clampCursor()
		return m, nil

	case mutatedMsg:
		m.pending--
		switch {
		case msg.err != nil:
			m.setFlash(fmt.Sprintf("%s failed: %s", msg.verb, service.Message(msg.err)), true)
		case !msg.moved:
			m.setFlash(fmt.Sprintf("#%d is already %s", msg.task.ID, msg.task.TrackingStatus.Label()), false)
		default:
			m.setFlash(fmt.Sprintf("#%d %s", msg.task.ID, msg.verb), false)
		}
		if m.detail != nil {
			if t, ok := m.tasks.Detail(); ok {
				m.detail = &t
			} else {
				m.detail = nil
				m.mode = modeList
			}
		}
		m.clampCursor()
		return m, nil

	case detailMsg:
		m.pending--
		if msg.err != nil {
			m.setFlash("open failed: "+service.Message(msg.err), true)
			return m, nil
		}
		t := msg.task
		m.detail = &t
		m.mode = modeDetail
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeDetail:
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.list.Query()
	v := m.list.View()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(v.Rows)-1 {
			m.cursor++
		}
	case "n", "right":
		if v.CanNext {
			m.cursor = 0
			return m, m.load(q.WithPage(v.Page.Number + 1))
		}
	case "p", "left":
		if v.CanPrev {
			m.cursor = 0
			return m, m.load(q.WithPage(v.Page.Number - 1))
		}
	case "s":
		m.cursor = 0
		return m, m.load(q.WithStatus(listview.NextStatusFilter(q.Status)))
	case "o":
		next := listview.SortTitle
		if q.Sort == listview.SortTitle {
			next = listview.SortRecent
		}
		m.list.SetSort(next)
	case "v":
		if !m.admin {
			m.setFlash("the all-tasks view is for admins", true)
			return m, nil
		}
		next := listview.ViewAll
		if q.View == listview.ViewAll {
			next = listview.ViewMine
		}
		m.cursor = 0
		return m, m.load(q.WithView(next))
	case "/":
		m.mode = modeSearch
		m.search.SetValue(q.SearchText)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "r":
		return m, m.load(q)
	case "R":
		m.cursor = 0
		return m, m.load(q.Reset(m.list.DefaultQuery()))
	case "enter":
		if t, ok := m.selected(); ok {
			m.pending++
			return m, m.open(t.ID)
		}
	case ">", ".":
		if t, ok := m.selected(); ok {
			m.pending++
			return m, m.step("advanced", t.ID, (*mutation.Tasks).Advance)
		}
	case "<", ",":
		if t, ok := m.selected(); ok {
			m.pending++
			return m, m.step("moved back", t.ID, (*mutation.Tasks).Regress)
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case "enter":
		m.mode = modeList
		m.search.Blur()
		m.cursor = 0
		return m, m.load(m.list.Query().WithSearch(m.search.Value()))
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m browseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := modeList
	if m.detail != nil {
		back = modeDetail
	}
	if msg.String() != "y" && msg.String() != "Y" {
		m.mode = back
		return m, nil
	}
	m.mode = back

	target, ok := m.selected()
	if m.detail != nil {
		target, ok = *m.detail, true
	}
	if !ok {
		return m, nil
	}
	m.pending++
	return m, m.remove(target)
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		m.mode = modeList
		return m, nil
	}
	id := m.detail.ID

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "backspace":
		m.tasks.CloseDetail()
		m.detail = nil
		m.mode = modeList
	case ">", ".":
		m.pending++
		return m, m.step("advanced", id, (*mutation.Tasks).Advance)
	case "<", ",":
		m.pending++
		return m, m.step("moved back", id, (*mutation.Tasks).Regress)
	case "d":
		m.mode = modeConfirmDelete
	}
	return m, nil
}
