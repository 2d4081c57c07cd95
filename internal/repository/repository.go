package repository

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/query"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	// ErrConflict reports that a concurrent writer changed the
	// record between it being read and being written.
	ErrConflict = errors.New("concurrent modification")
)

type TaskRepository interface {
	// FindPage returns the tasks matching pred ordered by ascending ID.
	FindPage(ctx context.Context, pred query.Predicate, page Page) ([]*models.Task, error)

	// FindOne returns the first task matching pred or ErrNotFound.
	FindOne(ctx context.Context, pred query.Predicate) (*models.Task, error)

	// Create stores a new task and returns its assigned ID.
	Create(ctx context.Context, task *models.Task) (int64, error)

	// Save overwrites the mutable fields of an existing task. It returns
	// ErrNotFound if the task no longer exists for its owner.
	Save(ctx context.Context, task *models.Task) error

	// Delete removes a task previously read with FindOne. It returns
	// ErrConflict if the task disappeared in the meantime.
	Delete(ctx context.Context, task *models.Task) error

	// DeleteByOwner removes every task owned by ownerID.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}

type UserRepository interface {
	// FindByExternalID returns the user or ErrNotFound.
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// Create stores a new user and returns its assigned ID. It returns
	// ErrAlreadyExists if the external ID is taken.
	Create(ctx context.Context, user *models.User) (int64, error)

	// Delete removes the user row only; owned tasks are the caller's concern.
	Delete(ctx context.Context, userID int64) error
}

// Pinger reports whether the underlying store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
