package service

import "context"

// Service is the task-tracking API as seen by the client.
// Page numbers are 0-based, as on the server.
type Service interface {
	// Register creates a USER account and starts a session for it.
	Register(ctx context.Context, body CreatePersonDto) (Person, error)

	// Login starts a session.
	Login(ctx context.Context, body LoginPersonDto) (Person, error)

	// Logout ends the session. Local credentials are dropped even when the call fails.
	Logout(ctx context.Context) error

	// Me returns the person behind the current session.
	Me(ctx context.Context) (Person, error)

	GetPerson(ctx context.Context, id int64) (Person, error)
	ListPersons(ctx context.Context) ([]Person, error)
	ListPersonsPage(ctx context.Context, page int) (Page[Person], error)
	PatchProfile(ctx context.Context, id int64, body PatchPersonProfileDto) (Person, error)
	ChangePassword(ctx context.Context, id int64, body ChangePasswordDto) (Person, error)
	DeletePerson(ctx context.Context, id int64) error

	// ListTasksPage returns every task (ADMIN).
	ListTasksPage(ctx context.Context, page int) (Page[Task], error)
	// ListTasksByStatusPage returns every task with the given status (ADMIN).
	ListTasksByStatusPage(ctx context.Context, status Status, page int) (Page[Task], error)
	// ListMyTasksPage returns the session owner's tasks.
	ListMyTasksPage(ctx context.Context, page int) (Page[Task], error)
	// ListMyTasksByStatusPage returns the session owner's tasks with the given status.
	ListMyTasksByStatusPage(ctx context.Context, status Status, page int) (Page[Task], error)
	// SearchTasksPage returns tasks whose title matches.
	SearchTasksPage(ctx context.Context, title string, page int) (Page[Task], error)
	// SearchTasksByStatusPage returns tasks whose title matches and with the given status.
	SearchTasksByStatusPage(ctx context.Context, title string, status Status, page int) (Page[Task], error)

	GetTask(ctx context.Context, id int64) (Task, error)
	CreateTask(ctx context.Context, body CreateTaskDto) (Task, error)
	UpdateTask(ctx context.Context, id int64, body CreateTaskDto) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
