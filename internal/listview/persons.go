package listview

import (
	"context"
	"strconv"
	"strings"

	"tasktrack/internal/service"
)

// Person sort keys.
const (
	SortNewest   SortKey = "id"
	SortFullName SortKey = "fullName"
	SortUsername SortKey = "username"
)

// PersonSource lists persons. The endpoint filters nothing; search text is
// matched locally.
type PersonSource struct {
	Service service.Service
}

var _ Source[service.Person] = PersonSource{}

// DefaultQuery implements Source.
func (PersonSource) DefaultQuery() Query {
	return Query{Status: StatusAll, Sort: SortNewest, View: ViewAll}
}

// Effective implements Source.
func (PersonSource) Effective(q Query) Request {
	return Request{
		Endpoint:     EndpointPersons,
		Page:         q.Page,
		ClientFilter: strings.TrimSpace(q.SearchText),
	}
}

// Fetch implements Source.
func (s PersonSource) Fetch(ctx context.Context, r Request) (service.Page[service.Person], error) {
	return s.Service.ListPersonsPage(ctx, r.Page)
}

// Matches implements Source over full name, username, id and role.
func (PersonSource) Matches(p service.Person, text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, field := range []string{p.FullName, p.Username, strconv.FormatInt(p.PersonID, 10), string(p.Role)} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}

// Less implements Source.
func (PersonSource) Less(key SortKey, a, b service.Person) bool {
	var x, y string
	switch key {
	case SortFullName:
		x, y = strings.ToLower(a.FullName), strings.ToLower(b.FullName)
	case SortUsername:
		x, y = strings.ToLower(a.Username), strings.ToLower(b.Username)
	}
	if x != y {
		return x < y
	}
	return a.PersonID > b.PersonID
}
