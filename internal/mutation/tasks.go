// Package mutation runs create, update, delete and status changes and keeps
// the owning list and any open detail consistent afterwards.
package mutation

import (
	"context"
	"fmt"
	"sync"

	"tasktrack/internal/listview"
	"tasktrack/internal/log"
	"tasktrack/internal/service"
)

// TasksConfig is the configuration for the task orchestrator.
type TasksConfig struct {
	Service service.Service
	// List is refreshed after every mutation. Optional.
	List   *listview.Model[service.Task]
	Logger log.Logger
}

func (c *TasksConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("service is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "mutation.Tasks"})
	return nil
}

// Tasks orchestrates task mutations.
type Tasks struct {
	svc    service.Service
	list   *listview.Model[service.Task]
	logger log.Logger

	mu     sync.Mutex
	detail *service.Task
}

// NewTasks returns a task orchestrator.
func NewTasks(cfg TasksConfig) (*Tasks, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Tasks{svc: cfg.Service, list: cfg.List, logger: cfg.Logger}, nil
}

// Create validates and creates a task, then refreshes the list.
func (t *Tasks) Create(ctx context.Context, body service.CreateTaskDto) (service.Task, error) {
	if err := Validate(body); err != nil {
		return service.Task{}, err
	}
	task, err := t.svc.CreateTask(ctx, body)
	if err != nil {
		return service.Task{}, err
	}
	t.logger.Debugf("created task %d", task.ID)
	refresh(ctx, t.list, t.logger)
	return task, nil
}

// Update validates and replaces a task, then refreshes the list and the open detail.
func (t *Tasks) Update(ctx context.Context, id int64, body service.CreateTaskDto) (service.Task, error) {
	if err := Validate(body); err != nil {
		return service.Task{}, err
	}
	task, err := t.svc.UpdateTask(ctx, id, body)
	if err != nil {
		return service.Task{}, err
	}
	t.logger.Debugf("updated task %d", id)
	refresh(ctx, t.list, t.logger)
	t.syncDetail(ctx, id)
	return task, nil
}

// Delete removes a task, closes its detail if open, and reloads the list,
// stepping back a page when the last row of a page went away.
func (t *Tasks) Delete(ctx context.Context, id int64) error {
	err := deleteWithRepair(ctx, t.list, t.logger, func() error {
		return t.svc.DeleteTask(ctx, id)
	})
	if err != nil {
		return err
	}
	t.logger.Debugf("deleted task %d", id)

	t.mu.Lock()
	if t.detail != nil && t.detail.ID == id {
		t.detail = nil
	}
	t.mu.Unlock()
	return nil
}

// TransitionStatus moves a task to status to. The whole task is sent back
// with the new status; whether the move is legal is the server's call.
func (t *Tasks) TransitionStatus(ctx context.Context, id int64, to service.Status) (service.Task, error) {
	current, err := t.lookup(ctx, id)
	if err != nil {
		return service.Task{}, err
	}
	task, err := t.svc.UpdateTask(ctx, id, service.CreateTaskDto{
		Title:          current.Title,
		Description:    current.Description,
		TrackingStatus: to,
	})
	if err != nil {
		return service.Task{}, err
	}
	t.logger.Debugf("task %d: %s -> %s", id, current.TrackingStatus, to)
	refresh(ctx, t.list, t.logger)
	t.syncDetail(ctx, id)
	return task, nil
}

// Advance moves a task to its next status. It reports false, doing
// nothing, for completed tasks.
func (t *Tasks) Advance(ctx context.Context, id int64) (service.Task, bool, error) {
	return t.step(ctx, id, service.NextStatus)
}

// Regress moves a task to its previous status. It reports false, doing
// nothing, for tasks still to do.
func (t *Tasks) Regress(ctx context.Context, id int64) (service.Task, bool, error) {
	return t.step(ctx, id, service.PrevStatus)
}

func (t *Tasks) step(ctx context.Context, id int64, move func(service.Status) (service.Status, bool)) (service.Task, bool, error) {
	current, err := t.lookup(ctx, id)
	if err != nil {
		return service.Task{}, false, err
	}
	to, ok := move(current.TrackingStatus)
	if !ok {
		return current, false, nil
	}
	task, err := t.TransitionStatus(ctx, id, to)
	if err != nil {
		return service.Task{}, false, err
	}
	return task, true, nil
}

// OpenDetail fetches a task and keeps it as the open detail.
func (t *Tasks) OpenDetail(ctx context.Context, id int64) (service.Task, error) {
	task, err := t.svc.GetTask(ctx, id)
	if err != nil {
		return service.Task{}, err
	}
	t.mu.Lock()
	t.detail = &task
	t.mu.Unlock()
	return task, nil
}

// CloseDetail forgets the open detail.
func (t *Tasks) CloseDetail() {
	t.mu.Lock()
	t.detail = nil
	t.mu.Unlock()
}

// Detail returns the open detail, if any.
func (t *Tasks) Detail() (service.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detail == nil {
		return service.Task{}, false
	}
	return *t.detail, true
}

// lookup finds a task in the open detail, then the loaded page, then asks the server.
func (t *Tasks) lookup(ctx context.Context, id int64) (service.Task, error) {
	if d, ok := t.Detail(); ok && d.ID == id {
		return d, nil
	}
	if t.list != nil {
		for _, task := range t.list.Page().Content {
			if task.ID == id {
				return task, nil
			}
		}
	}
	return t.svc.GetTask(ctx, id)
}

// syncDetail re-fetches the open detail when it shows task id.
func (t *Tasks) syncDetail(ctx context.Context, id int64) {
	d, ok := t.Detail()
	if !ok || d.ID != id {
		return
	}
	task, err := t.svc.GetTask(ctx, id)
	if err != nil {
		t.logger.Warningf("could not refresh task %d: %v", id, err)
		return
	}
	t.mu.Lock()
	if t.detail != nil && t.detail.ID == id {
		t.detail = &task
	}
	t.mu.Unlock()
}
