package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/query"
	"github.com/adanyl0v/go-task-tracker/internal/repository"
)

type taskServiceImpl struct {
	logger     zerolog.Logger
	tasks      repository.TaskRepository
	predicates *query.Builder
	pagination Pagination
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.TaskRepository,
	predicates *query.Builder,
	pagination Pagination,
) TaskService {
	return &taskServiceImpl{
		logger:     logger,
		tasks:      tasks,
		predicates: predicates,
		pagination: pagination,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, callerID int64, params CreateTaskParams) (int64, error) {
	priority, status, err := parseEnums(params.Priority, params.Status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", callerID).
			Msg("invalid task enums")
		return 0, err
	}
	if strings.TrimSpace(params.Title) == "" {
		return 0, ErrEmptyTitle
	}

	task := &models.Task{
		OwnerID:     callerID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    priority,
		Status:      status,
	}
	taskID, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", callerID).
			Msg("failed to create task")
		return 0, err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("user_id", callerID).
		Msg("created task")
	return taskID, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, callerID int64, params ListTasksParams) ([]TaskDTO, error) {
	pred := s.predicates.Filter(&callerID, params.Priority, params.Status)
	tasks, err := s.findPage(ctx, pred, params.PageSize, params.PageNumber)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", callerID).
			Msg("failed to list tasks")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Int64("user_id", callerID).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) SearchTasks(ctx context.Context, callerID int64, params SearchTasksParams) ([]TaskDTO, error) {
	pred := s.predicates.Search(&callerID, params.Search)
	tasks, err := s.findPage(ctx, pred, params.PageSize, params.PageNumber)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", callerID).
			Msg("failed to search tasks")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Int64("user_id", callerID).
		Msg("searched tasks")
	return tasks, nil
}

func (s *taskServiceImpl) findPage(ctx context.Context, pred query.Predicate, size, number int) ([]TaskDTO, error) {
	page := repository.Page{Size: size, Number: number}.
		Normalize(s.pagination.DefaultPageSize, s.pagination.MaxPageSize)

	tasks, err := s.tasks.FindPage(ctx, pred, page)
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, newTaskDTO(task))
	}
	return dtos, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, callerID int64, params UpdateTaskParams) (*TaskDTO, error) {
	priority, status, err := parseEnums(params.Priority, params.Status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("invalid task enums")
		return nil, err
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrEmptyTitle
	}

	task, err := s.tasks.FindOne(ctx, query.ByIDAndOwner(params.ID, callerID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", params.ID).
				Int64("user_id", callerID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to select task")
		return nil, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.Priority = priority
	task.Status = status

	err = s.tasks.Save(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", task.ID).
				Int64("user_id", callerID).
				Msg("task vanished before update")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", callerID).
		Msg("updated task")
	dto := newTaskDTO(task)
	return &dto, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, callerID, taskID int64) (bool, error) {
	task, err := s.tasks.FindOne(ctx, query.ByIDAndOwner(taskID, callerID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", taskID).
				Int64("user_id", callerID).
				Msg("task not found or not owned by caller")
			return false, nil
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select task")
		return false, err
	}

	err = s.tasks.Delete(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.logger.Warn().
				Err(err).
				Int64("task_id", taskID).
				Msg("task changed concurrently, not deleted")
			return false, nil
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return false, err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("user_id", callerID).
		Msg("deleted task")
	return true, nil
}

func parseEnums(rawPriority, rawStatus string) (models.Priority, models.Status, error) {
	priority, err := models.ParsePriority(rawPriority)
	if err != nil {
		return "", "", err
	}
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return "", "", err
	}
	return priority, status, nil
}
