// Package session holds the process-wide view of who is signed in.
package session

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"tasktrack/internal/log"
	"tasktrack/internal/service"
)

// Status is the resolution state of the session.
type Status int

const (
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the store.
type Session struct {
	Status Status
	User   *service.Person
}

// IsAuthenticated reports whether the session has a signed-in user.
func (s Session) IsAuthenticated() bool { return s.Status == StatusAuthenticated }

// Role returns the user's role, or "" when signed out.
func (s Session) Role() service.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Home paths per role.
const (
	HomeAdmin = "/admin"
	HomeApp   = "/app"
)

// HomeByRole maps a role to its landing path.
func HomeByRole(role service.Role) string {
	if role == service.RoleAdmin {
		return HomeAdmin
	}
	return HomeApp
}

// Config is the configuration for the store.
type Config struct {
	Service service.Service
	Logger  log.Logger
}

func (c *Config) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("service is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "session.Store"})
	return nil
}

// Store is the auth session store. It starts unknown and is resolved by
// EnsureSession, Login or Register. It is safe for concurrent use.
type Store struct {
	svc     service.Service
	logger  log.Logger
	restore singleflight.Group

	mu     sync.RWMutex
	status Status
	user   *service.Person
}

// New returns an unknown session store.
func New(cfg Config) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Store{
		svc:    cfg.Service,
		logger: cfg.Logger,
		status: StatusUnknown,
	}, nil
}

// Snapshot returns the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := Session{Status: s.status}
	if s.user != nil {
		u := *s.user
		sess.User = &u
	}
	return sess
}

// EnsureSession resolves an unknown session with a single "who am I" call
// shared by every concurrent caller. A resolved session answers without
// touching the network. Restore failures are silent.
func (s *Store) EnsureSession(ctx context.Context) bool {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	if status != StatusUnknown {
		return status == StatusAuthenticated
	}

	v, _, _ := s.restore.Do("me", func() (any, error) {
		// A login may have resolved the session while we queued.
		s.mu.RLock()
		status := s.status
		s.mu.RUnlock()
		if status != StatusUnknown {
			return status == StatusAuthenticated, nil
		}

		p, err := s.svc.Me(ctx)
		if err != nil {
			s.logger.Debugf("session restore failed: %v", err)
			return s.resolve(StatusUnauthenticated, nil), nil
		}
		return s.resolve(StatusAuthenticated, &p), nil
	})
	return v.(bool)
}

// resolve applies a restore result unless a login, register or logout
// settled the session while the restore was in flight. It reports whether
// the session ends up authenticated.
func (s *Store) resolve(status Status, user *service.Person) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusUnknown {
		s.status = status
		s.user = user
	}
	return s.status == StatusAuthenticated
}

// Login signs in and marks the session authenticated. Errors are returned unchanged.
func (s *Store) Login(ctx context.Context, creds service.LoginPersonDto) (service.Person, error) {
	p, err := s.svc.Login(ctx, creds)
	if err != nil {
		return service.Person{}, err
	}
	s.set(StatusAuthenticated, &p)
	s.logger.Infof("signed in as %s", p.Username)
	return p, nil
}

// Register creates an account and marks the session authenticated.
func (s *Store) Register(ctx context.Context, details service.CreatePersonDto) (service.Person, error) {
	p, err := s.svc.Register(ctx, details)
	if err != nil {
		return service.Person{}, err
	}
	s.set(StatusAuthenticated, &p)
	s.logger.Infof("registered %s", p.Username)
	return p, nil
}

// Logout ends the session. The store is reset whatever the API says; the
// returned error is informational.
func (s *Store) Logout(ctx context.Context) error {
	defer s.set(StatusUnauthenticated, nil)
	if err := s.svc.Logout(ctx); err != nil {
		s.logger.Warningf("logout call failed: %v", err)
		return err
	}
	return nil
}

// SetUser replaces the signed-in user, e.g. after a profile edit.
func (s *Store) SetUser(p service.Person) {
	s.set(StatusAuthenticated, &p)
}

// Reset forgets the session so the next EnsureSession asks the server again.
func (s *Store) Reset() {
	s.set(StatusUnknown, nil)
}

func (s *Store) set(status Status, user *service.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.user = user
}
