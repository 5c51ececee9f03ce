// Package service defines the backend-agnostic contract for the task-tracking API.
package service

import (
	"fmt"
	"strings"
)

// Status is the tracking status of a task.
type Status string

// Statuses in their strict order.
const (
	StatusToDo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses lists every status in order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusCompleted}

// Label returns the human label for the status.
func (s Status) Label() string {
	switch s {
	case StatusToDo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// NextStatus returns the status after s, or false at the end of the sequence.
func NextStatus(s Status) (Status, bool) {
	switch s {
	case StatusToDo:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	}
	return "", false
}

// PrevStatus returns the status before s, or false at the start of the sequence.
func PrevStatus(s Status) (Status, bool) {
	switch s {
	case StatusCompleted:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusToDo, true
	}
	return "", false
}

// ParseStatus parses a status name. It is case-insensitive and accepts the
// shorthands todo, doing and done.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "TO_DO", "TODO":
		return StatusToDo, nil
	case "IN_PROGRESS", "INPROGRESS", "DOING":
		return StatusInProgress, nil
	case "COMPLETED", "DONE":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("invalid status: %q: %w", s, ErrNotValid)
}

// Role is the role of a person.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Task is a single tracked task.
type Task struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	TrackingStatus Status `json:"trackingStatus"`
	UserID         int64  `json:"userId"`
	Username       string `json:"username"`
}

// Person is a registered user.
type Person struct {
	PersonID int64  `json:"personId"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the person has the ADMIN role.
func (p Person) IsAdmin() bool { return p.Role == RoleAdmin }

// CreateTaskDto is the body for creating and updating tasks.
type CreateTaskDto struct {
	Title          string `json:"title" validate:"notblank,max=255"`
	Description    string `json:"description,omitempty"`
	TrackingStatus Status `json:"trackingStatus,omitempty" validate:"omitempty,status"`
}

// LoginPersonDto is the login body.
type LoginPersonDto struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password,omitempty" validate:"required"`
}

// CreatePersonDto is the registration body.
type CreatePersonDto struct {
	FullName string `json:"fullName" validate:"notblank"`
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password,omitempty" validate:"required,min=6"`
	Role     Role   `json:"role,omitempty"`
}

// PatchPersonProfileDto is the partial profile update body.
type PatchPersonProfileDto struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,notblank"`
	Username *string `json:"username,omitempty" validate:"omitempty,notblank"`
}

// ChangePasswordDto is the password change body.
type ChangePasswordDto struct {
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}
