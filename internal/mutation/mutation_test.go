package mutation_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/listview"
	"tasktrack/internal/mutation"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
	"tasktrack/internal/testutil"
)

type fixture struct {
	fake  *testutil.FakeService
	list  *listview.Model[service.Task]
	tasks *mutation.Tasks
	user  service.Person
}

func newFixture(t *testing.T, n int) fixture {
	t.Helper()
	fake := testutil.NewFakeService()
	fake.PageSize = 2
	user := fake.AddPerson(service.Person{Username: "alice"}, "pw")
	fake.SignIn(user.PersonID)
	for i := 0; i < n; i++ {
		fake.AddTask(service.Task{Title: "task", Description: "details", UserID: user.PersonID})
	}

	list, err := listview.New(listview.Config[service.Task]{Source: listview.TaskSource{Service: fake}})
	require.NoError(t, err)
	require.NoError(t, list.Refresh(context.Background()))

	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: fake, List: list})
	require.NoError(t, err)
	return fixture{fake: fake, list: list, tasks: tasks, user: user}
}

func TestValidation(t *testing.T) {
	tests := map[string]struct {
		body     any
		expField string
		expMsg   string
	}{
		"Blank titles are rejected.": {
			body:     service.CreateTaskDto{Title: "   "},
			expField: "title",
			expMsg:   "title is required",
		},
		"Long titles are rejected.": {
			body:     service.CreateTaskDto{Title: string(make([]byte, 256))},
			expField: "title",
		},
		"Unknown statuses are rejected.": {
			body:     service.CreateTaskDto{Title: "ok", TrackingStatus: "BLOCKED"},
			expField: "trackingStatus",
		},
		"Short passwords are rejected on register.": {
			body:     service.CreatePersonDto{FullName: "A", Username: "a", Password: "123"},
			expField: "password",
			expMsg:   "password must be at least 6 characters",
		},
		"Password confirmation must match.": {
			body:     mutation.PasswordChange{Current: "old", New: "newpass", Confirm: "newpasz"},
			expField: "confirmPassword",
			expMsg:   "passwords do not match",
		},
		"Blank profile names are rejected.": {
			body:     service.PatchPersonProfileDto{FullName: ptr(" ")},
			expField: "fullName",
		},
		"Valid bodies pass.": {
			body: service.CreateTaskDto{Title: "ok", TrackingStatus: service.StatusToDo},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := mutation.Validate(test.body)
			if test.expField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *mutation.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, test.expField, verr.Field)
			assert.ErrorIs(t, err, service.ErrNotValid)
			if test.expMsg != "" {
				assert.Equal(t, test.expMsg, verr.Message)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func TestCreateValidatesBeforeCalling(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.tasks.Create(context.Background(), service.CreateTaskDto{Title: ""})
	assert.ErrorIs(t, err, service.ErrNotValid)
	assert.Equal(t, 0, f.fake.Calls("CreateTask"))
}

func TestCreateRefreshesList(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, service.CreateTaskDto{Title: "write docs"})
	require.NoError(t, err)
	assert.Equal(t, service.StatusToDo, task.TrackingStatus)

	rows := f.list.VisibleRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "write docs", rows[0].Title)
}

func TestDeleteRepairsPagination(t *testing.T) {
	tests := map[string]struct {
		tasks   int
		page    int
		expPage int
	}{
		"Deleting the only row of a later page steps back.": {
			tasks:   3,
			page:    1,
			expPage: 0,
		},
		"Deleting one of several rows stays.": {
			tasks:   4,
			page:    1,
			expPage: 1,
		},
		"The first page never steps back.": {
			tasks:   2,
			page:    0,
			expPage: 0,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			f := newFixture(t, test.tasks)

			require.NoError(f.list.GoToPage(ctx, test.page))
			rows := f.list.VisibleRows()
			require.NotEmpty(rows)

			require.NoError(f.tasks.Delete(ctx, rows[0].ID))
			assert.Equal(t, test.expPage, f.list.Query().Page)
			assert.Equal(t, test.expPage, f.list.Page().Number)
			assert.NotEmpty(t, f.list.VisibleRows())
		})
	}
}

func TestDeleteFailureLeavesList(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, f.list.GoToPage(ctx, 1))
	before := f.list.View()

	f.fake.DeleteTaskErr = testutil.APIError(http.StatusInternalServerError, "boom")
	err := f.tasks.Delete(ctx, before.Rows[0].ID)
	require.Error(t, err)
	assert.Equal(t, "boom", service.Message(err))
	assert.Equal(t, before.Query, f.list.Query())
	assert.Equal(t, before.Rows, f.list.VisibleRows())
}

func TestDeleteClosesDetail(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	id := f.list.VisibleRows()[0].ID

	_, err := f.tasks.OpenDetail(ctx, id)
	require.NoError(t, err)
	require.NoError(t, f.tasks.Delete(ctx, id))

	_, ok := f.tasks.Detail()
	assert.False(t, ok)
}

func TestUpdateRefreshesOpenDetail(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, 2)
	ctx := context.Background()
	rows := f.list.VisibleRows()

	_, err := f.tasks.OpenDetail(ctx, rows[0].ID)
	require.NoError(err)
	getsBefore := f.fake.Calls("GetTask")

	_, err = f.tasks.Update(ctx, rows[0].ID, service.CreateTaskDto{Title: "renamed", Description: "new"})
	require.NoError(err)
	assert.Equal(t, getsBefore+1, f.fake.Calls("GetTask"))

	d, ok := f.tasks.Detail()
	require.True(ok)
	assert.Equal(t, "renamed", d.Title)

	// Another task's update leaves the detail alone.
	_, err = f.tasks.Update(ctx, rows[1].ID, service.CreateTaskDto{Title: "other"})
	require.NoError(err)
	assert.Equal(t, getsBefore+1, f.fake.Calls("GetTask"))

	f.tasks.CloseDetail()
	_, ok = f.tasks.Detail()
	assert.False(t, ok)
}

func TestAdvanceAndRegress(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, 1)
	ctx := context.Background()
	id := f.list.VisibleRows()[0].ID

	_, ok, err := f.tasks.Regress(ctx, id)
	require.NoError(err)
	assert.False(t, ok)
	assert.Equal(t, 0, f.fake.Calls("UpdateTask"))

	for _, exp := range []service.Status{service.StatusInProgress, service.StatusCompleted} {
		task, ok, err := f.tasks.Advance(ctx, id)
		require.NoError(err)
		assert.True(t, ok)
		assert.Equal(t, exp, task.TrackingStatus)
		assert.Equal(t, "details", task.Description, "the full task is sent")
		assert.Equal(t, exp, f.list.VisibleRows()[0].TrackingStatus)
	}

	_, ok, err = f.tasks.Advance(ctx, id)
	require.NoError(err)
	assert.False(t, ok)
	assert.Equal(t, 2, f.fake.Calls("UpdateTask"))

	task, ok, err := f.tasks.Regress(ctx, id)
	require.NoError(err)
	assert.True(t, ok)
	assert.Equal(t, service.StatusInProgress, task.TrackingStatus)
}

func TestTransitionFetchesUnlistedTask(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	// Task 4 sits on page 1, outside the loaded page.
	stored, ok := f.fake.Task(4)
	require.True(t, ok)

	task, err := f.tasks.TransitionStatus(ctx, stored.ID, service.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, service.StatusCompleted, task.TrackingStatus)
	assert.Equal(t, 1, f.fake.Calls("GetTask"))
}

func TestPersons(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	fake := testutil.NewFakeService()
	fake.PageSize = 2
	root := fake.AddPerson(service.Person{FullName: "Root", Username: "root", Role: service.RoleAdmin}, "toor12")
	fake.AddPerson(service.Person{Username: "a"}, "pw")
	last := fake.AddPerson(service.Person{Username: "b"}, "pw")

	store, err := session.New(session.Config{Service: fake})
	require.NoError(err)
	_, err = store.Login(ctx, service.LoginPersonDto{Username: "root", Password: "toor12"})
	require.NoError(err)

	list, err := listview.New(listview.Config[service.Person]{Source: listview.PersonSource{Service: fake}})
	require.NoError(err)
	require.NoError(list.GoToPage(ctx, 1))

	persons, err := mutation.NewPersons(mutation.PersonsConfig{Service: fake, List: list, Session: store})
	require.NoError(err)

	require.NoError(persons.Delete(ctx, last.PersonID))
	assert.Equal(t, 0, list.Query().Page)

	p, err := persons.PatchProfile(ctx, root.PersonID, service.PatchPersonProfileDto{FullName: ptr("Super User")})
	require.NoError(err)
	assert.Equal(t, "Super User", p.FullName)
	assert.Equal(t, "Super User", store.Snapshot().User.FullName)

	_, err = persons.PatchProfile(ctx, root.PersonID, service.PatchPersonProfileDto{})
	assert.ErrorIs(t, err, service.ErrNotValid)

	err = persons.ChangePassword(ctx, root.PersonID, mutation.PasswordChange{Current: "toor12", New: "secret1", Confirm: "secret2"})
	assert.ErrorIs(t, err, service.ErrNotValid)
	assert.Equal(t, 0, fake.Calls("ChangePassword"))

	err = persons.ChangePassword(ctx, root.PersonID, mutation.PasswordChange{Current: "wrong1", New: "secret1", Confirm: "secret1"})
	require.Error(err)
	assert.Equal(t, "Current password is incorrect", service.Message(err))

	require.NoError(persons.ChangePassword(ctx, root.PersonID, mutation.PasswordChange{Current: "toor12", New: "secret1", Confirm: "secret1"}))
}
