package listview

import (
	"context"
	"fmt"
	"strings"

	"tasktrack/internal/service"
)

// Task sort keys.
const (
	SortRecent SortKey = "recent"
	SortTitle  SortKey = "title"
)

// TaskSource lists tasks.
type TaskSource struct {
	Service service.Service
	// View is the initial view mode.
	View ViewMode
}

var _ Source[service.Task] = TaskSource{}

// DefaultQuery implements Source.
func (s TaskSource) DefaultQuery() Query {
	return Query{Status: StatusAll, Sort: SortRecent, View: s.View}
}

// Effective implements Source.
func (TaskSource) Effective(q Query) Request {
	return EffectiveRequest(q)
}

// EffectiveRequest picks the task endpoint for q. The view is checked
// before the search text: the mine view has no search endpoint, so search
// text there is matched client side on the mine pages.
func EffectiveRequest(q Query) Request {
	search := strings.TrimSpace(q.SearchText)
	r := Request{Page: q.Page}
	if q.Filtered() {
		r.Status = q.Status
	}

	switch {
	case q.View == ViewMine && q.Filtered():
		r.Endpoint = EndpointMyTasksByStatus
		r.ClientFilter = search
	case q.View == ViewMine:
		r.Endpoint = EndpointMyTasks
		r.ClientFilter = search
	case search != "" && !q.Filtered():
		r.Endpoint = EndpointSearchTasks
		r.Title = search
	case search != "":
		r.Endpoint = EndpointSearchTasksByStatus
		r.Title = search
	case !q.Filtered():
		r.Endpoint = EndpointTasks
	default:
		r.Endpoint = EndpointTasksByStatus
	}
	return r
}

// Fetch implements Source.
func (s TaskSource) Fetch(ctx context.Context, r Request) (service.Page[service.Task], error) {
	switch r.Endpoint {
	case EndpointTasks:
		return s.Service.ListTasksPage(ctx, r.Page)
	case EndpointTasksByStatus:
		return s.Service.ListTasksByStatusPage(ctx, r.Status, r.Page)
	case EndpointMyTasks:
		return s.Service.ListMyTasksPage(ctx, r.Page)
	case EndpointMyTasksByStatus:
		return s.Service.ListMyTasksByStatusPage(ctx, r.Status, r.Page)
	case EndpointSearchTasks:
		return s.Service.SearchTasksPage(ctx, r.Title, r.Page)
	case EndpointSearchTasksByStatus:
		return s.Service.SearchTasksByStatusPage(ctx, r.Title, r.Status, r.Page)
	}
	return service.Page[service.Task]{}, fmt.Errorf("endpoint %s does not list tasks", r.Endpoint)
}

// Matches implements Source over title and description.
func (TaskSource) Matches(t service.Task, text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(strings.ToLower(t.Title), text) ||
		strings.Contains(strings.ToLower(t.Description), text)
}

// Less implements Source. Ids stand in for recency.
func (TaskSource) Less(key SortKey, a, b service.Task) bool {
	if key == SortTitle {
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
	}
	return a.ID > b.ID
}
