package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c, healthPingTimeout)
		defer cancel()

		err := h.store.Ping(ctx)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("store is unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
