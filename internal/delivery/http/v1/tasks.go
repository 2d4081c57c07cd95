package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/services"
)

type taskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

func newTaskResponse(task *services.TaskDTO) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
}

func newTaskResponses(tasks []services.TaskDTO) []taskResponse {
	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}
	return response
}

type createTaskResponse struct {
	ID int64 `json:"id"`
}

type taskFieldsRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Priority    string `json:"priority" form:"priority"`
	Status      string `json:"status" form:"status"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req taskFieldsRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	taskID, err := h.tasks.CreateTask(c, callerID, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		h.metrics.observeTaskOperation("create", "error")
		abort(c, newServiceError(err))
		return
	}

	h.metrics.observeTaskOperation("create", "ok")
	h.logger.Info().
		Int64("task_id", taskID).
		Int64("user_id", callerID).
		Msg("created task")
	c.JSON(http.StatusCreated, createTaskResponse{ID: taskID})
}

type getTasksRequest struct {
	Priority   *string `form:"priority"`
	Status     *string `form:"status"`
	PageSize   int     `form:"pageSize"`
	PageNumber int     `form:"pageNumber"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req getTasksRequest
	err := c.ShouldBindQuery(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	tasks, err := h.tasks.ListTasks(c, callerID, services.ListTasksParams{
		Priority:   req.Priority,
		Status:     req.Status,
		PageSize:   req.PageSize,
		PageNumber: req.PageNumber,
	})
	if err != nil {
		h.metrics.observeTaskOperation("list", "error")
		abort(c, newServiceError(err))
		return
	}

	h.metrics.observeTaskOperation("list", "ok")
	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

type searchTasksRequest struct {
	Search     *string `form:"search"`
	PageSize   int     `form:"pageSize"`
	PageNumber int     `form:"pageNumber"`
}

func (h *handlerImpl) HandleSearchTasks(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req searchTasksRequest
	err := c.ShouldBindQuery(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	tasks, err := h.tasks.SearchTasks(c, callerID, services.SearchTasksParams{
		Search:     req.Search,
		PageSize:   req.PageSize,
		PageNumber: req.PageNumber,
	})
	if err != nil {
		h.metrics.observeTaskOperation("search", "error")
		abort(c, newServiceError(err))
		return
	}

	h.metrics.observeTaskOperation("search", "ok")
	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("searched tasks")
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	var req taskFieldsRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, callerID, services.UpdateTaskParams{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		h.metrics.observeTaskOperation("update", "error")
		abort(c, newServiceError(err))
		return
	}

	h.metrics.observeTaskOperation("update", "ok")
	h.logger.Info().
		Int64("task_id", taskID).
		Msg("updated task")
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	deleted, err := h.tasks.DeleteTask(c, callerID, taskID)
	if err != nil {
		h.metrics.observeTaskOperation("delete", "error")
		abort(c, newServiceError(err))
		return
	}

	if !deleted {
		h.metrics.observeTaskOperation("delete", "not_found")
		h.logger.Warn().
			Int64("task_id", taskID).
			Msg("task not deleted")
		c.String(http.StatusNotFound, deleteNotFoundMessage)
		return
	}

	h.metrics.observeTaskOperation("delete", "ok")
	h.logger.Info().
		Int64("task_id", taskID).
		Msg("deleted task")
	c.String(http.StatusOK, taskDeletedMessage)
}

// taskID reads the task id from the path, falling back to the taskId query parameter.
func (h *handlerImpl) taskID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("taskId")
	}
	if raw == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errInvalidTaskID.Error()))
		return 0, false
	}

	taskID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", raw).
			Msg("failed to parse task id")
		abort(c, newBadRequestError(errInvalidTaskID.Error()))
		return 0, false
	}
	return taskID, true
}
