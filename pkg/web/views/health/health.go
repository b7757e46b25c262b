package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/labportal/internal/config"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/logger"
)

const pingTimeout = 2 * time.Second

type Check struct {
	Status string `json:"status"`
	Driver string `json:"driver,omitempty"`
}

type Handle struct {
	ds     *db.Datastore
	rc     *r.Client
	driver config.DBDriver
}

// NewHealthHandle checks the record store behind ds and the session redis rc.
func NewHealthHandle(ds *db.Datastore, rc *r.Client, driver config.DBDriver) *Handle {
	return &Handle{ds: ds, rc: rc, driver: driver}
}

func (h *Handle) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"driver": h.driver,
	})
}

func (h *Handle) Live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready answers 503 until both the record store and the session store respond.
func (h *Handle) Ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()

	records := h.recordStore(pingCtx)
	sessions := h.sessionStore(pingCtx)

	status, msg := http.StatusOK, "ready"
	if records.Status != "ok" || sessions.Status != "ok" {
		status, msg = http.StatusServiceUnavailable, "not_ready"
		logger.Warnf(ctx, "readiness failed: records=%s sessions=%s", records.Status, sessions.Status)
	}
	ctx.JSON(status, gin.H{
		"status": msg,
		"checks": gin.H{
			"records":  records,
			"sessions": sessions,
		},
	})
}

func (h *Handle) recordStore(ctx context.Context) *Check {
	c := &Check{Driver: string(h.driver)}
	if h.ds == nil {
		c.Status = "not_initialized"
		return c
	}
	sqlDB, err := h.ds.DBIns().DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		c.Status = "unhealthy"
		return c
	}
	c.Status = "ok"
	return c
}

func (h *Handle) sessionStore(ctx context.Context) *Check {
	switch {
	case h.rc == nil:
		return &Check{Status: "not_initialized"}
	case h.rc.Ping(ctx).Err() != nil:
		return &Check{Status: "unhealthy"}
	default:
		return &Check{Status: "ok"}
	}
}
