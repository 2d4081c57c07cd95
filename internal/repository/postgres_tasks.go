package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/query"
)

type PostgresTasks struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresTasks(logger zerolog.Logger, pgPool *pgxpool.Pool) *PostgresTasks {
	return &PostgresTasks{
		logger: logger,
		pgPool: pgPool,
	}
}

const selectTaskColumns = `
SELECT id,
       assigned_user_id,
       title,
       description,
       priority,
       status
FROM task
`

func (r *PostgresTasks) FindPage(ctx context.Context, pred query.Predicate, page Page) ([]*models.Task, error) {
	where, args, err := whereClause(pred, nil)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to render task predicate")
		return nil, err
	}

	args = append(args, page.Size, page.Offset())
	sql := selectTaskColumns +
		"WHERE " + where + "\n" +
		"ORDER BY id ASC\n" +
		"LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pgPool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, page.Size)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Int("page_size", page.Size).
		Int("page_number", page.Number).
		Msg("selected tasks")
	return tasks, nil
}

func (r *PostgresTasks) FindOne(ctx context.Context, pred query.Predicate) (*models.Task, error) {
	where, args, err := whereClause(pred, nil)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to render task predicate")
		return nil, err
	}

	sql := selectTaskColumns +
		"WHERE " + where + "\n" +
		"ORDER BY id ASC\n" +
		"LIMIT 1"

	task, err := scanTask(r.pgPool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (r *PostgresTasks) Create(ctx context.Context, task *models.Task) (int64, error) {
	const insertTaskQuery = `
INSERT INTO task (assigned_user_id,
                  title,
                  description,
                  priority,
                  status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	var taskID int64
	err := r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
	).Scan(&taskID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", task.OwnerID).
			Msg("failed to insert task")
		return 0, err
	}
	r.logger.Debug().
		Int64("task_id", taskID).
		Msg("inserted task")
	return taskID, nil
}

func (r *PostgresTasks) Save(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE task
SET title = $1,
    description = $2,
    priority = $3,
    status = $4
WHERE id = $5 AND assigned_user_id = $6
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")
	return nil
}

func (r *PostgresTasks) Delete(ctx context.Context, task *models.Task) error {
	const deleteTaskQuery = `
DELETE FROM task
WHERE id = $1 AND assigned_user_id = $2
`
	tag, err := r.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		if isConflict(err) {
			return ErrConflict
		}

		r.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		// The row was read a moment ago, so someone else removed it.
		return ErrConflict
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("deleted task")
	return nil
}

func (r *PostgresTasks) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	const deleteTasksByOwnerQuery = `
DELETE FROM task
WHERE assigned_user_id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteTasksByOwnerQuery, ownerID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", ownerID).
			Msg("failed to delete tasks by owner")
		return 0, err
	}
	r.logger.Debug().
		Int64("user_id", ownerID).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted tasks by owner")
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var (
		task     models.Task
		priority string
		status   string
	)
	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&priority,
		&status,
	)
	if err != nil {
		return nil, err
	}
	task.Priority = models.Priority(priority)
	task.Status = models.Status(status)
	return &task, nil
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable:
		return true
	}
	return false
}
