package listview

import (
	"context"

	"tasktrack/internal/service"
)

// Endpoint identifies the API call a request resolves to.
type Endpoint int

const (
	EndpointTasks Endpoint = iota
	EndpointTasksByStatus
	EndpointMyTasks
	EndpointMyTasksByStatus
	EndpointSearchTasks
	EndpointSearchTasksByStatus
	EndpointPersons
)

var endpointNames = map[Endpoint]string{
	EndpointTasks:               "tasks",
	EndpointTasksByStatus:       "tasks-by-status",
	EndpointMyTasks:             "my-tasks",
	EndpointMyTasksByStatus:     "my-tasks-by-status",
	EndpointSearchTasks:         "search-tasks",
	EndpointSearchTasksByStatus: "search-tasks-by-status",
	EndpointPersons:             "persons",
}

func (e Endpoint) String() string { return endpointNames[e] }

// Request is one fetch derived from a Query.
type Request struct {
	Endpoint Endpoint
	Page     int
	Status   service.Status
	Title    string
	// ClientFilter is search text the endpoint does not filter by; rows are
	// matched against it locally.
	ClientFilter string
}

// Source adapts one resource to the list model.
type Source[T any] interface {
	// DefaultQuery is the query a fresh list starts from.
	DefaultQuery() Query
	// Effective maps a query to exactly one request.
	Effective(q Query) Request
	Fetch(ctx context.Context, r Request) (service.Page[T], error)
	// Matches reports whether item matches the client-side search text.
	Matches(item T, text string) bool
	// Less orders rows for the given sort key.
	Less(key SortKey, a, b T) bool
}
