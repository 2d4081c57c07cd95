package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/query"
)

func seedTasks(t *testing.T, repo TaskRepository, ownerID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), &models.Task{
			OwnerID:  ownerID,
			Title:    "task",
			Priority: models.PriorityLow,
			Status:   models.StatusPending,
		})
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
}

func TestMemoryTasksCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryStore().Tasks()
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Task{OwnerID: 1, Title: "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Create(ctx, &models.Task{OwnerID: 1, Title: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("unexpected ids: %d %d", first, second)
	}
}

func TestMemoryTasksFindPagePaginatesInIDOrder(t *testing.T) {
	repo := NewMemoryStore().Tasks()
	seedTasks(t, repo, 1, 5)
	seedTasks(t, repo, 2, 3)

	owner := query.All().And(query.Eq(query.FieldOwner, int64(1)))
	page, err := repo.FindPage(context.Background(), owner, Page{Size: 2, Number: 1})
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if len(page) != 2 || page[0].ID != 3 || page[1].ID != 4 {
		t.Fatalf("unexpected page: %+v", page)
	}

	last, err := repo.FindPage(context.Background(), owner, Page{Size: 2, Number: 2})
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if len(last) != 1 || last[0].ID != 5 {
		t.Fatalf("unexpected last page: %+v", last)
	}

	beyond, err := repo.FindPage(context.Background(), owner, Page{Size: 2, Number: 9})
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("expected empty page, got %+v", beyond)
	}
}

func TestMemoryTasksReturnsCopies(t *testing.T) {
	repo := NewMemoryStore().Tasks()
	ctx := context.Background()
	id, _ := repo.Create(ctx, &models.Task{OwnerID: 1, Title: "original"})

	task, err := repo.FindOne(ctx, query.ByIDAndOwner(id, 1))
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	task.Title = "mutated"

	again, _ := repo.FindOne(ctx, query.ByIDAndOwner(id, 1))
	if again.Title != "original" {
		t.Fatalf("store was mutated through returned task: %q", again.Title)
	}
}

func TestMemoryTasksSaveRequiresOwner(t *testing.T) {
	repo := NewMemoryStore().Tasks()
	ctx := context.Background()
	id, _ := repo.Create(ctx, &models.Task{OwnerID: 1, Title: "mine"})

	err := repo.Save(ctx, &models.Task{ID: id, OwnerID: 2, Title: "stolen"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryTasksDeleteVanishedIsConflict(t *testing.T) {
	repo := NewMemoryStore().Tasks()
	ctx := context.Background()
	id, _ := repo.Create(ctx, &models.Task{OwnerID: 1})
	task, _ := repo.FindOne(ctx, query.ByIDAndOwner(id, 1))

	if err := repo.Delete(ctx, task); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, task); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryTasksDeleteByOwner(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Tasks()
	seedTasks(t, repo, 1, 3)
	seedTasks(t, repo, 2, 2)

	deleted, err := repo.DeleteByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}

	rest, _ := repo.FindPage(context.Background(), query.All(), Page{Size: 10})
	if len(rest) != 2 {
		t.Fatalf("expected other owner's tasks to remain, got %+v", rest)
	}
}

func TestMemoryUsersUniqueExternalID(t *testing.T) {
	users := NewMemoryStore().Users()
	ctx := context.Background()

	id, err := users.Create(ctx, &models.User{ExternalID: "kc-1", DisplayName: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err = users.Create(ctx, &models.User{ExternalID: "kc-1"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	found, err := users.FindByExternalID(ctx, "kc-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != id || found.DisplayName != "alice" {
		t.Fatalf("unexpected user: %+v", found)
	}

	if err = users.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err = users.FindByExternalID(ctx, "kc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err = users.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
