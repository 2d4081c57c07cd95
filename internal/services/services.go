package services

import (
	"context"
	"errors"
	"slices"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyTitle      = errors.New("task title is required")
	ErrUnauthenticated = errors.New("unauthenticated")
)

type TaskService interface {
	// CreateTask validates the priority and status, stamps callerID as the
	// owner and returns the new task ID.
	//
	// It returns models.ErrInvalidFilterValue if either enum doesn't parse.
	CreateTask(ctx context.Context, callerID int64, params CreateTaskParams) (int64, error)

	// ListTasks returns a page of the caller's tasks filtered by exact
	// priority and status. Filter values are not validated: an unknown
	// value yields an empty page.
	ListTasks(ctx context.Context, callerID int64, params ListTasksParams) ([]TaskDTO, error)

	// SearchTasks returns a page of the caller's tasks whose title or
	// description contains the search text. Blank text lists everything.
	SearchTasks(ctx context.Context, callerID int64, params SearchTasksParams) ([]TaskDTO, error)

	// UpdateTask replaces every mutable field of the caller's task.
	//
	// It returns models.ErrInvalidFilterValue on a bad enum and
	// ErrTaskNotFound if the caller owns no task with that ID.
	UpdateTask(ctx context.Context, callerID int64, params UpdateTaskParams) (*TaskDTO, error)

	// DeleteTask reports whether the caller's task was found and deleted.
	// A missing task and a concurrent modification both yield false.
	DeleteTask(ctx context.Context, callerID, taskID int64) (bool, error)
}

type UserService interface {
	// ResolveCallerID maps an identity to an internal user ID, creating
	// the user on first sight.
	//
	// It returns ErrUnauthenticated if the identity is missing or has no subject.
	ResolveCallerID(ctx context.Context, identity *Identity) (int64, error)

	// DeleteUser removes the user with the given external ID together
	// with every task the user owns.
	//
	// It returns ErrUserNotFound if no such user exists.
	DeleteUser(ctx context.Context, externalID string) error
}

type AuthService interface {
	// ParseIdentity verifies a bearer token and extracts the caller identity.
	// Every failure wraps ErrUnauthenticated.
	ParseIdentity(token string) (*Identity, error)
}

// TaskDTO is the part of a task exposed to callers. It never
// carries the owner.
type TaskDTO struct {
	ID          int64
	Title       string
	Description string
	Priority    models.Priority
	Status      models.Status
}

func newTaskDTO(task *models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
	}
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

type ListTasksParams struct {
	Priority   *string
	Status     *string
	PageSize   int
	PageNumber int
}

type SearchTasksParams struct {
	Search     *string
	PageSize   int
	PageNumber int
}

type UpdateTaskParams struct {
	ID          int64
	Title       string
	Description string
	Priority    string
	Status      string
}

// Identity is the verified assertion presented by the identity provider.
type Identity struct {
	Subject  string
	Username string
	Roles    []string
}

func (i *Identity) HasAnyRole(roles ...string) bool {
	if i == nil {
		return false
	}
	for _, role := range roles {
		if slices.Contains(i.Roles, role) {
			return true
		}
	}
	return false
}

type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}
