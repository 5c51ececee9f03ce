package commands

import (
	"fmt"
	"strings"

	"tasktrack/internal/listview"
	"tasktrack/internal/navigate"
	"tasktrack/internal/service"
)

// optionalString is a string flag that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// statusFlag parses --status values; "all" and "" mean no filter.
type statusFlag struct {
	status service.Status
}

func (s *statusFlag) String() string { return string(s.status) }

func (s *statusFlag) Set(v string) error {
	if strings.EqualFold(strings.TrimSpace(v), "all") || strings.TrimSpace(v) == "" {
		s.status = listview.StatusAll
		return nil
	}
	st, err := service.ParseStatus(v)
	if err != nil {
		return fmt.Errorf("invalid status: %s", v)
	}
	s.status = st
	return nil
}

func (s *statusFlag) value() service.Status {
	if s.status == "" {
		return listview.StatusAll
	}
	return s.status
}

func taskRoute(all bool) string {
	if all {
		return navigate.AdminTasks
	}
	return navigate.AppTasks
}

func parseTaskSort(s string) (listview.SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "recent", "id":
		return listview.SortRecent, nil
	case "title":
		return listview.SortTitle, nil
	}
	return "", fmt.Errorf("invalid sort: %s (want recent or title)", s)
}

func parsePersonSort(s string) (listview.SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id", "recent":
		return listview.SortNewest, nil
	case "name", "fullname":
		return listview.SortFullName, nil
	case "username":
		return listview.SortUsername, nil
	}
	return "", fmt.Errorf("invalid sort: %s (want id, name or username)", s)
}
