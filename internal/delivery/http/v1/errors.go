package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidTaskID      = errors.New("invalid task id")
)

const (
	taskNotFoundMessage   = "Task not found"
	deleteNotFoundMessage = "Task not found or you don't have permission to delete it"
	taskDeletedMessage    = "Task deleted successfully"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// newServiceError maps a service failure onto the response it produces.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, models.ErrInvalidFilterValue),
		errors.Is(err, services.ErrEmptyTitle):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(taskNotFoundMessage)
	case errors.Is(err, services.ErrUnauthenticated):
		return newUnauthorizedError(http.StatusText(http.StatusUnauthorized))
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
