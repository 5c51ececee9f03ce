package listview

import "tasktrack/internal/service"

// StatusAll is the status filter that filters nothing.
const StatusAll service.Status = "ALL"

// ViewMode selects whose resources a list shows.
type ViewMode int

const (
	// ViewMine shows the signed-in user's resources.
	ViewMine ViewMode = iota
	// ViewAll shows every resource (admins).
	ViewAll
)

func (v ViewMode) String() string {
	if v == ViewAll {
		return "all"
	}
	return "mine"
}

// SortKey names a presentation order.
type SortKey string

// Query is the state a list is fetched and presented from.
type Query struct {
	SearchText string
	Status     service.Status
	Sort       SortKey
	Page       int
	View       ViewMode
}

// Filtered reports whether a status filter is set.
func (q Query) Filtered() bool {
	return q.Status != "" && q.Status != StatusAll
}

// WithSearch changes the search text and goes back to the first page.
func (q Query) WithSearch(text string) Query {
	q.SearchText = text
	q.Page = 0
	return q
}

// WithStatus changes the status filter and goes back to the first page.
func (q Query) WithStatus(s service.Status) Query {
	if s == "" {
		s = StatusAll
	}
	q.Status = s
	q.Page = 0
	return q
}

// WithView changes the view mode and goes back to the first page.
func (q Query) WithView(v ViewMode) Query {
	q.View = v
	q.Page = 0
	return q
}

// WithSort changes the order rows are shown in. The page is kept.
func (q Query) WithSort(k SortKey) Query {
	q.Sort = k
	return q
}

// WithPage moves to page n. Negative pages clamp to 0.
func (q Query) WithPage(n int) Query {
	if n < 0 {
		n = 0
	}
	q.Page = n
	return q
}

// Reset restores def's filters, sort and page. The view mode is kept.
func (q Query) Reset(def Query) Query {
	def.View = q.View
	return def
}

// NextStatusFilter cycles ALL → TO_DO → IN_PROGRESS → COMPLETED → ALL.
func NextStatusFilter(s service.Status) service.Status {
	switch s {
	case StatusAll, "":
		return service.StatusToDo
	case service.StatusCompleted:
		return StatusAll
	}
	if next, ok := service.NextStatus(s); ok {
		return next
	}
	return StatusAll
}
