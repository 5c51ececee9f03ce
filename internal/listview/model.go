// Package listview is the view-model behind every paginated list: it holds
// the query, fetches the page it maps to, and derives the rows to show.
package listview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"tasktrack/internal/log"
	"tasktrack/internal/service"
)

// ErrSuperseded is returned by a load whose result was dropped because a
// later load was dispatched before it finished.
var ErrSuperseded = errors.New("load superseded")

// Config is the configuration for a list model.
type Config[T any] struct {
	Source Source[T]
	// Query is the initial query. Defaults to the source's default query.
	Query  *Query
	Logger log.Logger
}

func (c *Config[T]) defaults() error {
	if c.Source == nil {
		return fmt.Errorf("source is required")
	}
	if c.Query == nil {
		q := c.Source.DefaultQuery()
		c.Query = &q
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "listview.Model"})
	return nil
}

// Model is a list view-model. It is safe for concurrent use.
type Model[T any] struct {
	src    Source[T]
	def    Query
	logger log.Logger

	mu         sync.Mutex
	query      Query
	applied    Request
	page       service.Page[T]
	loadedOnce bool
	seq        uint64
	doneSeq    uint64
	err        error
}

// New returns an idle model.
func New[T any](cfg Config[T]) (*Model[T], error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Model[T]{
		src:    cfg.Source,
		def:    cfg.Source.DefaultQuery(),
		logger: cfg.Logger,
		query:  *cfg.Query,
		page:   service.Page[T]{Content: []T{}, First: true, Last: true, Empty: true},
	}, nil
}

// Query returns the current query.
func (m *Model[T]) Query() Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// DefaultQuery returns the query ResetFilters goes back to.
func (m *Model[T]) DefaultQuery() Query { return m.def }

// Page returns the last page applied.
func (m *Model[T]) Page() service.Page[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

// Dispatch makes q the current query and returns the fetch for it. The
// sequence number is taken here, so dispatch order decides which result
// wins even when the returned loads run concurrently.
func (m *Model[T]) Dispatch(q Query) func(ctx context.Context) error {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.query = q
	m.mu.Unlock()

	req := m.src.Effective(q)
	return func(ctx context.Context) error {
		page, err := m.src.Fetch(ctx, req)
		return m.apply(seq, req, page, err)
	}
}

func (m *Model[T]) apply(seq uint64, req Request, page service.Page[T], err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.logger.Debugf("dropping stale %s page %d (load %d, latest %d)", req.Endpoint, req.Page, seq, m.seq)
		return ErrSuperseded
	}
	m.doneSeq = seq

	if err != nil {
		// Rows from the previous load stay visible, so the pager follows them.
		m.err = err
		if m.loadedOnce {
			m.query.Page = m.page.Number
		}
		return err
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	m.page = page
	m.applied = req
	m.loadedOnce = true
	m.err = nil
	return nil
}

// Load fetches q and applies the result unless a later load was dispatched meanwhile.
func (m *Model[T]) Load(ctx context.Context, q Query) error {
	return m.Dispatch(q)(ctx)
}

// Refresh reloads the current query.
func (m *Model[T]) Refresh(ctx context.Context) error {
	return m.Load(ctx, m.Query())
}

// SetSearch changes the search text, back on the first page, and loads.
func (m *Model[T]) SetSearch(ctx context.Context, text string) error {
	return m.Load(ctx, m.Query().WithSearch(text))
}

// SetStatusFilter changes the status filter, back on the first page, and loads.
func (m *Model[T]) SetStatusFilter(ctx context.Context, s service.Status) error {
	return m.Load(ctx, m.Query().WithStatus(s))
}

// SetViewMode changes the view mode, back on the first page, and loads.
func (m *Model[T]) SetViewMode(ctx context.Context, v ViewMode) error {
	return m.Load(ctx, m.Query().WithView(v))
}

// SetSort changes the presentation order. Sorting is local, so nothing is fetched.
func (m *Model[T]) SetSort(k SortKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = m.query.WithSort(k)
}

// NextPage loads the following page. It reports false, without fetching,
// on the last page or while a load is in flight.
func (m *Model[T]) NextPage(ctx context.Context) (bool, error) {
	v := m.View()
	if !v.CanNext {
		return false, nil
	}
	return true, m.Load(ctx, v.Query.WithPage(v.Page.Number+1))
}

// PrevPage loads the preceding page. It reports false, without fetching,
// on the first page or while a load is in flight.
func (m *Model[T]) PrevPage(ctx context.Context) (bool, error) {
	v := m.View()
	if !v.CanPrev {
		return false, nil
	}
	return true, m.Load(ctx, v.Query.WithPage(v.Page.Number-1))
}

// GoToPage loads page n of the current query.
func (m *Model[T]) GoToPage(ctx context.Context, n int) error {
	return m.Load(ctx, m.Query().WithPage(n))
}

// ResetFilters restores the default search, filter, sort and page, and loads.
func (m *Model[T]) ResetFilters(ctx context.Context) error {
	return m.Load(ctx, m.Query().Reset(m.def))
}

// VisibleRows returns the applied page's rows, matched against any search
// text the endpoint did not filter by and ordered by the current sort key.
func (m *Model[T]) VisibleRows() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visibleRows()
}

func (m *Model[T]) visibleRows() []T {
	rows := make([]T, 0, len(m.page.Content))
	filter := m.applied.ClientFilter
	for _, item := range m.page.Content {
		if filter == "" || m.src.Matches(item, filter) {
			rows = append(rows, item)
		}
	}
	key := m.query.Sort
	sort.SliceStable(rows, func(i, j int) bool { return m.src.Less(key, rows[i], rows[j]) })
	return rows
}

// View is an immutable snapshot of a model.
type View[T any] struct {
	Query Query
	Page  service.Page[T]
	Rows  []T

	// InitialLoading is set until the first load succeeds.
	InitialLoading bool
	// Fetching is set while a later load is in flight.
	Fetching bool

	// Err is the last load error. The rows are those of the last success.
	Err error

	CanPrev bool
	CanNext bool
}

// Message is the user-visible error message, or "".
func (v View[T]) Message() string {
	if v.Err == nil {
		return ""
	}
	return service.Message(v.Err)
}

// Loading reports whether any load is in flight.
func (v View[T]) Loading() bool { return v.InitialLoading || v.Fetching }

// View returns a snapshot.
func (m *Model[T]) View() View[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	loading := m.doneSeq != m.seq
	content := make([]T, len(m.page.Content))
	copy(content, m.page.Content)
	page := m.page
	page.Content = content

	v := View[T]{
		Query:          m.query,
		Page:           page,
		Rows:           m.visibleRows(),
		InitialLoading: !m.loadedOnce && (loading || m.seq == 0),
		Fetching:       m.loadedOnce && loading,
		Err:            m.err,
	}
	v.CanPrev = m.loadedOnce && !loading && !m.page.First
	v.CanNext = m.loadedOnce && !loading && !m.page.Last
	return v
}
