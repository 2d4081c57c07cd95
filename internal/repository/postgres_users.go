package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

type PostgresUsers struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresUsers(logger zerolog.Logger, pgPool *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *PostgresUsers) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	const selectUserByExternalIDQuery = `
SELECT id,
       user_name
FROM task_user
WHERE keycloak_user_id = $1
`
	user := &models.User{ExternalID: externalID}
	var displayName *string
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByExternalIDQuery,
		externalID,
	).Scan(
		&user.ID,
		&displayName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("external_id", externalID).
			Msg("failed to select user by external id")
		return nil, err
	}
	if displayName != nil {
		user.DisplayName = *displayName
	}
	return user, nil
}

func (r *PostgresUsers) Create(ctx context.Context, user *models.User) (int64, error) {
	const insertUserQuery = `
INSERT INTO task_user (keycloak_user_id,
                       user_name)
VALUES ($1, $2)
RETURNING id
`
	var userID int64
	err := r.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		user.ExternalID,
		user.DisplayName,
	).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrAlreadyExists
		}

		r.logger.Error().
			Err(err).
			Str("external_id", user.ExternalID).
			Msg("failed to insert user")
		return 0, err
	}
	r.logger.Debug().
		Int64("user_id", userID).
		Str("external_id", user.ExternalID).
		Msg("inserted user")
	return userID, nil
}

func (r *PostgresUsers) Delete(ctx context.Context, userID int64) error {
	const deleteUserQuery = `
DELETE FROM task_user
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteUserQuery, userID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to delete user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Debug().
		Int64("user_id", userID).
		Msg("deleted user")
	return nil
}
