package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adanyl0v/go-task-tracker/internal/services"
)

const (
	callerIDCtxKey  = "caller_id"
	requestIDCtxKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

const (
	roleManageTask = "role_manage_task"
	roleAdmin      = "role_admin"
)

func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to generate request id")
			abort(c, newStatusTextError(http.StatusInternalServerError))
			return
		}
		requestID = id.String()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) HandleRequestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	event := h.logger.Info()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("request_id", c.GetString(requestIDCtxKey)).
		Msg("handled request")
}

func (h *handlerImpl) HandleMetrics(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.metrics.observeRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
}

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return
	}

	identity, err := h.auth.ParseIdentity(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse token")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return
	}

	if !identity.HasAnyRole(roleManageTask, roleAdmin) {
		h.logger.Warn().
			Str("subject", identity.Subject).
			Strs("roles", identity.Roles).
			Msg("caller lacks task role")
		abort(c, newForbiddenError(http.StatusText(http.StatusForbidden)))
		return
	}

	callerID, err := h.users.ResolveCallerID(c, identity)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
			return
		}

		h.logger.Error().
			Err(err).
			Str("subject", identity.Subject).
			Msg("failed to resolve caller")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Set(callerIDCtxKey, callerID)
	c.Next()
}

func (h *handlerImpl) callerID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(callerIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no caller id found in context")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return 0, false
	}
	callerID, ok := value.(int64)
	if !ok {
		h.logger.Error().Msg("caller id has unexpected type")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return 0, false
	}
	return callerID, true
}
