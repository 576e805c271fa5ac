package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopfeed/backend/internal/infrastructure/logger"
	"github.com/shopfeed/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves liveness information
type SystemHandler struct {
	BaseHandler
	db        Pinger
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, version string, log *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: newBaseHandler(log),
		db:          db,
		version:     version,
		startTime:   time.Now(),
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Database  string `json:"database"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health pings the database. An unreachable database answers 503.
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Database:  "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if err := h.db.Ping(ctx); err != nil {
		logger.For(ctx, h.logger).Warn("Health check failed", zap.Error(err))
		resp.Database = "unavailable"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Status: false, Data: resp})
		return
	}
	h.Success(c, resp)
}
