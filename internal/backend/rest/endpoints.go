package rest

import (
	"context"
	"net/http"
	"net/url"

	"tasktrack/internal/service"
)

// Register creates a USER account. The server starts a session for it.
func (c *Client) Register(ctx context.Context, body service.CreatePersonDto) (service.Person, error) {
	if body.Role == "" {
		body.Role = service.RoleUser
	}
	var p service.Person
	err := c.do(ctx, http.MethodPost, c.endpoint(c.authPath, "register"), body, &p)
	return p, err
}

func (c *Client) Login(ctx context.Context, body service.LoginPersonDto) (service.Person, error) {
	var p service.Person
	err := c.do(ctx, http.MethodPost, c.endpoint(c.authPath, "login"), body, &p)
	return p, err
}

// Logout ends the server session. The local token is dropped whatever the outcome.
func (c *Client) Logout(ctx context.Context) error {
	defer c.dropSession()
	return c.do(ctx, http.MethodPost, c.endpoint(c.authPath, "logout"), nil, nil)
}

func (c *Client) Me(ctx context.Context) (service.Person, error) {
	var p service.Person
	err := c.do(ctx, http.MethodGet, c.endpoint(c.authPath, "me"), nil, &p)
	return p, err
}

func (c *Client) GetPerson(ctx context.Context, id int64) (service.Person, error) {
	var p service.Person
	err := c.do(ctx, http.MethodGet, c.endpoint(c.personsPath, idElem(id)), nil, &p)
	return p, err
}

func (c *Client) ListPersons(ctx context.Context) ([]service.Person, error) {
	var persons []service.Person
	if err := c.do(ctx, http.MethodGet, c.endpoint(c.personsPath, "all"), nil, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (c *Client) ListPersonsPage(ctx context.Context, page int) (service.Page[service.Person], error) {
	var p service.Page[service.Person]
	err := c.do(ctx, http.MethodGet, c.endpoint(c.personsPath, "paginated", pageElem(page)), nil, &p)
	return p, err
}

func (c *Client) PatchProfile(ctx context.Context, id int64, body service.PatchPersonProfileDto) (service.Person, error) {
	var p service.Person
	err := c.do(ctx, http.MethodPatch, c.endpoint(c.personsPath, idElem(id), "profile"), body, &p)
	return p, err
}

func (c *Client) ChangePassword(ctx context.Context, id int64, body service.ChangePasswordDto) (service.Person, error) {
	var p service.Person
	err := c.do(ctx, http.MethodPut, c.endpoint(c.personsPath, idElem(id), "password"), body, &p)
	return p, err
}

func (c *Client) DeletePerson(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(c.personsPath, idElem(id)), nil, nil)
}

func (c *Client) ListTasksPage(ctx context.Context, page int) (service.Page[service.Task], error) {
	return c.taskPage(ctx, c.endpoint(c.tasksPath, "paginated", pageElem(page)))
}

func (c *Client) ListTasksByStatusPage(ctx context.Context, status service.Status, page int) (service.Page[service.Task], error) {
	return c.taskPage(ctx, c.endpoint(c.tasksPath, "status", string(status), "paginated", pageElem(page)))
}

func (c *Client) ListMyTasksPage(ctx context.Context, page int) (service.Page[service.Task], error) {
	return c.taskPage(ctx, c.endpoint(c.tasksPath, "my-tasks", "paginated", pageElem(page)))
}

func (c *Client) ListMyTasksByStatusPage(ctx context.Context, status service.Status, page int) (service.Page[service.Task], error) {
	u := c.endpoint(c.tasksPath, "my-tasks", "filter", "paginated", pageElem(page))
	u.RawQuery = url.Values{"status": {string(status)}}.Encode()
	return c.taskPage(ctx, u)
}

func (c *Client) SearchTasksPage(ctx context.Context, title string, page int) (service.Page[service.Task], error) {
	u := c.endpoint(c.tasksPath, "search", "paginated", pageElem(page))
	u.RawQuery = url.Values{"title": {title}}.Encode()
	return c.taskPage(ctx, u)
}

func (c *Client) SearchTasksByStatusPage(ctx context.Context, title string, status service.Status, page int) (service.Page[service.Task], error) {
	u := c.endpoint(c.tasksPath, "search", "status", string(status), "paginated", pageElem(page))
	u.RawQuery = url.Values{"title": {title}}.Encode()
	return c.taskPage(ctx, u)
}

func (c *Client) taskPage(ctx context.Context, u *url.URL) (service.Page[service.Task], error) {
	var p service.Page[service.Task]
	if err := c.do(ctx, http.MethodGet, u, nil, &p); err != nil {
		return service.Page[service.Task]{}, err
	}
	if p.Content == nil {
		p.Content = []service.Task{}
	}
	return p, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (service.Task, error) {
	var t service.Task
	err := c.do(ctx, http.MethodGet, c.endpoint(c.tasksPath, idElem(id)), nil, &t)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, body service.CreateTaskDto) (service.Task, error) {
	var t service.Task
	err := c.do(ctx, http.MethodPost, c.endpoint(c.tasksPath), body, &t)
	return t, err
}

func (c *Client) UpdateTask(ctx context.Context, id int64, body service.CreateTaskDto) (service.Task, error) {
	var t service.Task
	err := c.do(ctx, http.MethodPut, c.endpoint(c.tasksPath, idElem(id)), body, &t)
	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(c.tasksPath, idElem(id)), nil, nil)
}
