package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/query"
)

// MemoryStore keeps tasks and users in process memory. It backs the
// "memory" storage driver and the service tests.
type MemoryStore struct {
	mu         sync.RWMutex
	tasks      map[int64]models.Task
	users      map[int64]models.User
	nextTaskID int64
	nextUserID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[int64]models.Task),
		users: make(map[int64]models.User),
	}
}

func (s *MemoryStore) Tasks() TaskRepository {
	return memoryTasks{s}
}

func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

type memoryTasks struct {
	s *MemoryStore
}

func (r memoryTasks) FindPage(_ context.Context, pred query.Predicate, page Page) ([]*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.sortedTaskIDs()
	result := make([]*models.Task, 0, page.Size)
	skip := page.Offset()
	for _, id := range ids {
		task := r.s.tasks[id]
		if !pred.Match(&task) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(result) == page.Size {
			break
		}
		result = append(result, &task)
	}
	return result, nil
}

func (r memoryTasks) FindOne(_ context.Context, pred query.Predicate) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.sortedTaskIDs() {
		task := r.s.tasks[id]
		if pred.Match(&task) {
			return &task, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryTasks) Create(_ context.Context, task *models.Task) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextTaskID++
	stored := *task
	stored.ID = r.s.nextTaskID
	r.s.tasks[stored.ID] = stored
	return stored.ID, nil
}

func (r memoryTasks) Save(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.tasks[task.ID]
	if !ok || stored.OwnerID != task.OwnerID {
		return ErrNotFound
	}
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Priority = task.Priority
	stored.Status = task.Status
	r.s.tasks[task.ID] = stored
	return nil
}

func (r memoryTasks) Delete(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.tasks[task.ID]
	if !ok || stored.OwnerID != task.OwnerID {
		return ErrConflict
	}
	delete(r.s.tasks, task.ID)
	return nil
}

func (r memoryTasks) DeleteByOwner(_ context.Context, ownerID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, task := range r.s.tasks {
		if task.OwnerID == ownerID {
			delete(r.s.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

// sortedTaskIDs must be called with mu held.
func (s *MemoryStore) sortedTaskIDs() []int64 {
	ids := make([]int64, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type memoryUsers struct {
	s *MemoryStore
}

func (r memoryUsers) FindByExternalID(_ context.Context, externalID string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.ExternalID == externalID {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryUsers) Create(_ context.Context, user *models.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.ExternalID == user.ExternalID {
			return 0, ErrAlreadyExists
		}
	}

	r.s.nextUserID++
	stored := *user
	stored.ID = r.s.nextUserID
	r.s.users[stored.ID] = stored
	return stored.ID, nil
}

func (r memoryUsers) Delete(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return ErrNotFound
	}
	delete(r.s.users, userID)
	return nil
}
