package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var startedAt = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func New(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

// Health reports liveness plus a database ping. Degraded means the API is
// up but the store is not reachable.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
	defer cancel()

	dbStatus := "up"
	if err := h.ping(ctx); err != nil {
		logrus.WithError(err).Warn("health: database ping failed")
		dbStatus = "down"
	}

	status := http.StatusOK
	overall := "ok"
	if dbStatus != "up" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	return c.JSON(status, map[string]any{
		"status":        overall,
		"service":       "airrvie-api",
		"database":      dbStatus,
		"uptimeSeconds": int(time.Since(startedAt).Seconds()),
		"time":          time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) ping(ctx context.Context) error {
	if h.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
