package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktrack/internal/listview"
	"tasktrack/internal/log"
	"tasktrack/internal/mutation"
	"tasktrack/internal/service"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmDelete
	modeDetail
)

// loadedMsg carries the outcome of a list load.
type loadedMsg struct{ err error }

// mutatedMsg carries the outcome of a task mutation.
type mutatedMsg struct {
	verb  string
	task  service.Task
	moved bool
	err   error
}

// detailMsg carries the task opened in the detail pane.
type detailMsg struct {
	task service.Task
	err  error
}

type browseModel struct {
	ctx    context.Context
	list   *listview.Model[service.Task]
	tasks  *mutation.Tasks
	admin  bool
	logger log.Logger

	mode    mode
	cursor  int
	search  textinput.Model
	spin    spinner.Model
	pending int

	// flash is the last mutation outcome; flashErr marks it as a failure.
	flash    string
	flashErr bool
	detail   *service.Task

	width  int
	height int
}

func newBrowseModel(ctx context.Context, cfg Config) (browseModel, error) {
	if err := cfg.defaults(); err != nil {
		return browseModel{}, fmt.Errorf("invalid config: %w", err)
	}

	list, err := listview.New(listview.Config[service.Task]{
		Source: listview.TaskSource{Service: cfg.Service, View: cfg.View},
		Logger: cfg.Logger,
	})
	if err != nil {
		return browseModel{}, err
	}
	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: cfg.Service, List: list, Logger: cfg.Logger})
	if err != nil {
		return browseModel{}, err
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title or description"
	search.CharLimit = 255

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleMuted()

	return browseModel{
		ctx:    ctx,
		list:   list,
		tasks:  tasks,
		admin:  cfg.Admin,
		logger: cfg.Logger,
		search: search,
		spin:   spin,
		width:  80,
		height: 24,
	}, nil
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load(m.list.Query()))
}

// load dispatches q now and fetches it in the returned command, so the
// latest key press always owns the rows.
func (m browseModel) load(q listview.Query) tea.Cmd {
	run := m.list.Dispatch(q)
	return func() tea.Msg {
		return loadedMsg{err: run(m.ctx)}
	}
}

func (m browseModel) selected() (service.Task, bool) {
	rows := m.list.VisibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return service.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *browseModel) clampCursor() {
	n := len(m.list.VisibleRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *browseModel) setFlash(msg string, failed bool) {
	m.flash = msg
	m.flashErr = failed
}

func (m browseModel) step(verb string, id int64, move func(*mutation.Tasks, context.Context, int64) (service.Task, bool, error)) tea.Cmd {
	return func() tea.Msg {
		task, moved, err := move(m.tasks, m.ctx, id)
		return mutatedMsg{verb: verb, task: task, moved: moved, err: err}
	}
}

func (m browseModel) remove(t service.Task) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{verb: "deleted", task: t, moved: true, err: m.tasks.Delete(m.ctx, t.ID)}
	}
}

func (m browseModel) open(id int64) tea.Cmd {
	return func() tea.Msg {
		task, err := m.tasks.OpenDetail(m.ctx, id)
		return detailMsg{task: task, err: err}
	}
}
