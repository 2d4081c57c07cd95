package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/repository"
)

type identityCache interface {
	Lookup(ctx context.Context, externalID string) (int64, bool)
	Remember(ctx context.Context, externalID string, userID int64)
	Forget(ctx context.Context, externalID string)
}

type userServiceImpl struct {
	logger zerolog.Logger
	users  repository.UserRepository
	tasks  repository.TaskRepository
	cache  identityCache
}

func NewUserService(
	logger zerolog.Logger,
	users repository.UserRepository,
	tasks repository.TaskRepository,
	cache identityCache,
) UserService {
	if cache == nil {
		cache = (*repository.IdentityCache)(nil)
	}
	return &userServiceImpl{
		logger: logger,
		users:  users,
		tasks:  tasks,
		cache:  cache,
	}
}

func (s *userServiceImpl) ResolveCallerID(ctx context.Context, identity *Identity) (int64, error) {
	if identity == nil || identity.Subject == "" {
		s.logger.Error().Msg("identity without subject")
		return 0, ErrUnauthenticated
	}

	if userID, ok := s.cache.Lookup(ctx, identity.Subject); ok {
		return userID, nil
	}

	user, err := s.users.FindByExternalID(ctx, identity.Subject)
	if err == nil {
		s.cache.Remember(ctx, identity.Subject, user.ID)
		return user.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("external_id", identity.Subject).
			Msg("failed to select user")
		return 0, err
	}

	userID, err := s.createUser(ctx, identity)
	if err != nil {
		return 0, err
	}
	s.cache.Remember(ctx, identity.Subject, userID)
	return userID, nil
}

func (s *userServiceImpl) createUser(ctx context.Context, identity *Identity) (int64, error) {
	displayName := identity.Username
	if displayName == "" {
		displayName = models.DefaultDisplayName
	}

	userID, err := s.users.Create(ctx, &models.User{
		ExternalID:  identity.Subject,
		DisplayName: displayName,
	})
	if err != nil {
		if !errors.Is(err, repository.ErrAlreadyExists) {
			s.logger.Error().
				Err(err).
				Str("external_id", identity.Subject).
				Msg("failed to create user")
			return 0, err
		}

		// A concurrent first request created the same user.
		user, err := s.users.FindByExternalID(ctx, identity.Subject)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("external_id", identity.Subject).
				Msg("failed to select concurrently created user")
			return 0, err
		}
		return user.ID, nil
	}

	s.logger.Info().
		Int64("user_id", userID).
		Str("external_id", identity.Subject).
		Str("display_name", displayName).
		Msg("created user")
	return userID, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, externalID string) error {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Str("external_id", externalID).
				Msg("user not found")
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("external_id", externalID).
			Msg("failed to select user")
		return err
	}

	deleted, err := s.tasks.DeleteByOwner(ctx, user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to delete user tasks")
		return err
	}

	err = s.users.Delete(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to delete user")
		return err
	}
	s.cache.Forget(ctx, externalID)

	s.logger.Info().
		Int64("user_id", user.ID).
		Int64("tasks_deleted", deleted).
		Msg("deleted user")
	return nil
}
