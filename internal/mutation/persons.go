package mutation

import (
	"context"
	"fmt"

	"tasktrack/internal/listview"
	"tasktrack/internal/log"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

// PersonsConfig is the configuration for the person orchestrator.
type PersonsConfig struct {
	Service service.Service
	// List is refreshed after every mutation. Optional.
	List *listview.Model[service.Person]
	// Session gets the new user after the signed-in user edits their profile. Optional.
	Session *session.Store
	Logger  log.Logger
}

func (c *PersonsConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("service is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "mutation.Persons"})
	return nil
}

// Persons orchestrates account mutations.
type Persons struct {
	svc     service.Service
	list    *listview.Model[service.Person]
	session *session.Store
	logger  log.Logger
}

// NewPersons returns a person orchestrator.
func NewPersons(cfg PersonsConfig) (*Persons, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Persons{svc: cfg.Service, list: cfg.List, session: cfg.Session, logger: cfg.Logger}, nil
}

// Delete removes a person and reloads the list with page repair.
func (p *Persons) Delete(ctx context.Context, id int64) error {
	err := deleteWithRepair(ctx, p.list, p.logger, func() error {
		return p.svc.DeletePerson(ctx, id)
	})
	if err != nil {
		return err
	}
	p.logger.Debugf("deleted person %d", id)
	return nil
}

// PatchProfile updates name and/or username.
func (p *Persons) PatchProfile(ctx context.Context, id int64, body service.PatchPersonProfileDto) (service.Person, error) {
	if body.FullName == nil && body.Username == nil {
		return service.Person{}, &ValidationError{Message: "nothing to update"}
	}
	if err := Validate(body); err != nil {
		return service.Person{}, err
	}
	person, err := p.svc.PatchProfile(ctx, id, body)
	if err != nil {
		return service.Person{}, err
	}
	if p.session != nil {
		if snap := p.session.Snapshot(); snap.User != nil && snap.User.PersonID == id {
			p.session.SetUser(person)
		}
	}
	refresh(ctx, p.list, p.logger)
	return person, nil
}

// PasswordChange is the password form.
type PasswordChange struct {
	Current string `json:"currentPassword" validate:"required"`
	New     string `json:"newPassword" validate:"required,min=6"`
	Confirm string `json:"confirmPassword" validate:"eqfield=New"`
}

// ChangePassword checks the confirmation locally and changes the password.
func (p *Persons) ChangePassword(ctx context.Context, id int64, form PasswordChange) error {
	if err := Validate(form); err != nil {
		return err
	}
	_, err := p.svc.ChangePassword(ctx, id, service.ChangePasswordDto{
		CurrentPassword: form.Current,
		NewPassword:     form.New,
	})
	if err != nil {
		return err
	}
	p.logger.Infof("password changed for person %d", id)
	return nil
}
