// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"tasktrack/internal/service"
)

// DefaultPageSize is the page size the fake serves, as the backend does.
const DefaultPageSize = 10

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.Mutex
	persons  []fakePerson
	tasks    []service.Task
	nextID   int64
	session  int64 // person id, 0 when signed out
	calls    map[string]int
	PageSize int

	// Error injection for testing
	RegisterErr       error
	LoginErr          error
	LogoutErr         error
	MeErr             error
	ListPersonsErr    error
	PatchProfileErr   error
	ChangePasswordErr error
	DeletePersonErr   error
	ListTasksErr      error
	GetTaskErr        error
	CreateTaskErr     error
	UpdateTaskErr     error
	DeleteTaskErr     error

	// MeGate, when set, blocks Me until it is closed.
	MeGate chan struct{}
}

type fakePerson struct {
	service.Person
	password string
}

// NewFakeService creates an empty FakeService with nobody signed in.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:   1,
		calls:    make(map[string]int),
		PageSize: DefaultPageSize,
	}
}

// APIError builds the error the backend would answer with.
func APIError(status int, message string) error {
	return &service.APIError{StatusCode: status, Payload: service.MessagePayload{Message: message}}
}

// AddPerson adds a person with the given password and returns it with its id.
func (f *FakeService) AddPerson(p service.Person, password string) service.Person {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.PersonID = f.allocID()
	if p.Role == "" {
		p.Role = service.RoleUser
	}
	f.persons = append(f.persons, fakePerson{Person: p, password: password})
	return p
}

// AddTask adds a task and returns it with its id. A zero status becomes TO_DO.
func (f *FakeService) AddTask(t service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.allocID()
	if t.TrackingStatus == "" {
		t.TrackingStatus = service.StatusToDo
	}
	if p, ok := f.person(t.UserID); ok {
		t.Username = p.Username
	}
	f.tasks = append(f.tasks, t)
	return t
}

// SignIn makes id the session owner without a Login call.
func (f *FakeService) SignIn(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = id
}

// SignedIn returns the session owner id, or 0.
func (f *FakeService) SignedIn() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// Calls returns how many times the named method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Task returns a stored task.
func (f *FakeService) Task(id int64) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(id)
	if i < 0 {
		return service.Task{}, false
	}
	return f.tasks[i], true
}

// TaskCount returns the number of stored tasks.
func (f *FakeService) TaskCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func (f *FakeService) allocID() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *FakeService) person(id int64) (service.Person, bool) {
	for _, p := range f.persons {
		if p.PersonID == id {
			return p.Person, true
		}
	}
	return service.Person{}, false
}

func (f *FakeService) taskIndex(id int64) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// current returns the session owner. Callers hold f.mu.
func (f *FakeService) current() (service.Person, error) {
	p, ok := f.person(f.session)
	if f.session == 0 || !ok {
		return service.Person{}, APIError(http.StatusUnauthorized, "Unauthorized")
	}
	return p, nil
}

func (f *FakeService) currentAdmin() (service.Person, error) {
	p, err := f.current()
	if err != nil {
		return p, err
	}
	if !p.IsAdmin() {
		return p, APIError(http.StatusForbidden, "Access denied")
	}
	return p, nil
}

func paginate[T any](items []T, page, size int) service.Page[T] {
	start := page * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	content := make([]T, end-start)
	copy(content, items[start:end])
	return service.NewPage(content, page, size, len(items))
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, body service.CreatePersonDto) (service.Person, error) {
	f.record("Register")
	if f.RegisterErr != nil {
		return service.Person{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if strings.EqualFold(p.Username, body.Username) {
			return service.Person{}, APIError(http.StatusConflict, "Username already exists")
		}
	}
	p := service.Person{PersonID: f.allocID(), FullName: body.FullName, Username: body.Username, Role: service.RoleUser}
	f.persons = append(f.persons, fakePerson{Person: p, password: body.Password})
	f.session = p.PersonID
	return p, nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, body service.LoginPersonDto) (service.Person, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return service.Person{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if p.Username == body.Username && p.password == body.Password {
			f.session = p.PersonID
			return p.Person, nil
		}
	}
	return service.Person{}, &service.APIError{
		StatusCode: http.StatusUnauthorized,
		Payload:    service.ErrorFieldPayload{Error: "Invalid credentials"},
	}
}

// Logout implements service.Service. The session is dropped even when LogoutErr is set.
func (f *FakeService) Logout(ctx context.Context) error {
	f.record("Logout")
	f.mu.Lock()
	f.session = 0
	f.mu.Unlock()
	return f.LogoutErr
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.Person, error) {
	f.record("Me")
	if f.MeGate != nil {
		select {
		case <-f.MeGate:
		case <-ctx.Done():
			return service.Person{}, ctx.Err()
		}
	}
	if f.MeErr != nil {
		return service.Person{}, f.MeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current()
}

// GetPerson implements service.Service.
func (f *FakeService) GetPerson(ctx context.Context, id int64) (service.Person, error) {
	f.record("GetPerson")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.current(); err != nil {
		return service.Person{}, err
	}
	p, ok := f.person(id)
	if !ok {
		return service.Person{}, APIError(http.StatusNotFound, "Person not found")
	}
	return p, nil
}

// ListPersons implements service.Service.
func (f *FakeService) ListPersons(ctx context.Context) ([]service.Person, error) {
	f.record("ListPersons")
	if f.ListPersonsErr != nil {
		return nil, f.ListPersonsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.currentAdmin(); err != nil {
		return nil, err
	}
	result := make([]service.Person, 0, len(f.persons))
	for _, p := range f.persons {
		result = append(result, p.Person)
	}
	return result, nil
}

// ListPersonsPage implements service.Service.
func (f *FakeService) ListPersonsPage(ctx context.Context, page int) (service.Page[service.Person], error) {
	f.record("ListPersonsPage")
	if f.ListPersonsErr != nil {
		return service.Page[service.Person]{}, f.ListPersonsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.currentAdmin(); err != nil {
		return service.Page[service.Person]{}, err
	}
	all := make([]service.Person, 0, len(f.persons))
	for _, p := range f.persons {
		all = append(all, p.Person)
	}
	return paginate(all, page, f.PageSize), nil
}

// PatchProfile implements service.Service.
func (f *FakeService) PatchProfile(ctx context.Context, id int64, body service.PatchPersonProfileDto) (service.Person, error) {
	f.record("PatchProfile")
	if f.PatchProfileErr != nil {
		return service.Person{}, f.PatchProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.current(); err != nil {
		return service.Person{}, err
	}
	for i := range f.persons {
		if f.persons[i].PersonID != id {
			continue
		}
		if body.FullName != nil {
			f.persons[i].FullName = *body.FullName
		}
		if body.Username != nil {
			f.persons[i].Username = *body.Username
		}
		return f.persons[i].Person, nil
	}
	return service.Person{}, APIError(http.StatusNotFound, "Person not found")
}

// ChangePassword implements service.Service.
func (f *FakeService) ChangePassword(ctx context.Context, id int64, body service.ChangePasswordDto) (service.Person, error) {
	f.record("ChangePassword")
	if f.ChangePasswordErr != nil {
		return service.Person{}, f.ChangePasswordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.current(); err != nil {
		return service.Person{}, err
	}
	for i := range f.persons {
		if f.persons[i].PersonID != id {
			continue
		}
		if f.persons[i].password != body.CurrentPassword {
			return service.Person{}, APIError(http.StatusBadRequest, "Current password is incorrect")
		}
		f.persons[i].password = body.NewPassword
		return f.persons[i].Person, nil
	}
	return service.Person{}, APIError(http.StatusNotFound, "Person not found")
}

// DeletePerson implements service.Service.
func (f *FakeService) DeletePerson(ctx context.Context, id int64) error {
	f.record("DeletePerson")
	if f.DeletePersonErr != nil {
		return f.DeletePersonErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.currentAdmin(); err != nil {
		return err
	}
	for i, p := range f.persons {
		if p.PersonID == id {
			f.persons = append(f.persons[:i], f.persons[i+1:]...)
			return nil
		}
	}
	return APIError(http.StatusNotFound, "Person not found")
}

func (f *FakeService) taskPage(method string, admin bool, page int, keep func(service.Person, service.Task) bool) (service.Page[service.Task], error) {
	f.record(method)
	if f.ListTasksErr != nil {
		return service.Page[service.Task]{}, f.ListTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		me  service.Person
		err error
	)
	if admin {
		me, err = f.currentAdmin()
	} else {
		me, err = f.current()
	}
	if err != nil {
		return service.Page[service.Task]{}, err
	}

	var matched []service.Task
	for _, t := range f.tasks {
		if keep(me, t) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, page, f.PageSize), nil
}

func titleMatches(title, query string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

// ListTasksPage implements service.Service.
func (f *FakeService) ListTasksPage(ctx context.Context, page int) (service.Page[service.Task], error) {
	return f.taskPage("ListTasksPage", true, page, func(service.Person, service.Task) bool { return true })
}

// ListTasksByStatusPage implements service.Service.
func (f *FakeService) ListTasksByStatusPage(ctx context.Context, status service.Status, page int) (service.Page[service.Task], error) {
	return f.taskPage("ListTasksByStatusPage", true, page, func(_ service.Person, t service.Task) bool {
		return t.TrackingStatus == status
	})
}

// ListMyTasksPage implements service.Service.
func (f *FakeService) ListMyTasksPage(ctx context.Context, page int) (service.Page[service.Task], error) {
	return f.taskPage("ListMyTasksPage", false, page, func(me service.Person, t service.Task) bool {
		return t.UserID == me.PersonID
	})
}

// ListMyTasksByStatusPage implements service.Service.
func (f *FakeService) ListMyTasksByStatusPage(ctx context.Context, status service.Status, page int) (service.Page[service.Task], error) {
	return f.taskPage("ListMyTasksByStatusPage", false, page, func(me service.Person, t service.Task) bool {
		return t.UserID == me.PersonID && t.TrackingStatus == status
	})
}

// SearchTasksPage implements service.Service.
func (f *FakeService) SearchTasksPage(ctx context.Context, title string, page int) (service.Page[service.Task], error) {
	return f.taskPage("SearchTasksPage", true, page, func(_ service.Person, t service.Task) bool {
		return titleMatches(t.Title, title)
	})
}

// SearchTasksByStatusPage implements service.Service.
func (f *FakeService) SearchTasksByStatusPage(ctx context.Context, title string, status service.Status, page int) (service.Page[service.Task], error) {
	return f.taskPage("SearchTasksByStatusPage", true, page, func(_ service.Person, t service.Task) bool {
		return titleMatches(t.Title, title) && t.TrackingStatus == status
	})
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int64) (service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	me, err := f.current()
	if err != nil {
		return service.Task{}, err
	}
	i := f.taskIndex(id)
	if i < 0 {
		return service.Task{}, APIError(http.StatusNotFound, "Task not found")
	}
	if !me.IsAdmin() && f.tasks[i].UserID != me.PersonID {
		return service.Task{}, APIError(http.StatusForbidden, "Access denied")
	}
	return f.tasks[i], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, body service.CreateTaskDto) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	me, err := f.current()
	if err != nil {
		return service.Task{}, err
	}
	status := body.TrackingStatus
	if status == "" {
		status = service.StatusToDo
	}
	t := service.Task{
		ID:             f.allocID(),
		Title:          body.Title,
		Description:    body.Description,
		TrackingStatus: status,
		UserID:         me.PersonID,
		Username:       me.Username,
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, body service.CreateTaskDto) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	me, err := f.current()
	if err != nil {
		return service.Task{}, err
	}
	i := f.taskIndex(id)
	if i < 0 {
		return service.Task{}, APIError(http.StatusNotFound, "Task not found")
	}
	if !me.IsAdmin() && f.tasks[i].UserID != me.PersonID {
		return service.Task{}, APIError(http.StatusForbidden, "Access denied")
	}
	f.tasks[i].Title = body.Title
	f.tasks[i].Description = body.Description
	if body.TrackingStatus != "" {
		f.tasks[i].TrackingStatus = body.TrackingStatus
	}
	return f.tasks[i], nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	me, err := f.current()
	if err != nil {
		return err
	}
	i := f.taskIndex(id)
	if i < 0 {
		return APIError(http.StatusNotFound, "Task not found")
	}
	if !me.IsAdmin() && f.tasks[i].UserID != me.PersonID {
		return APIError(http.StatusForbidden, "Access denied")
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}
