package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabularium/internal/domain/schema"
	"tabularium/internal/infrastructure/storage/postgres"
)

// HealthHandler provides health check endpoints. The pool is optional; the
// schema engine works without a database.
type HealthHandler struct {
	hub  *schema.Hub
	pool *postgres.Pool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(hub *schema.Hub, pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{hub: hub, pool: pool}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{
		"registry": "healthy",
	}

	if h.pool == nil {
		checks["database"] = "disabled"
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
		return
	}

	if err := h.pool.Ping(c.Request.Context()); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "checks": checks})
		return
	}

	checks["database"] = "healthy"
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	departments := make([]string, 0)
	tables := 0
	for _, reg := range h.hub.Departments() {
		departments = append(departments, reg.DepartmentID)
		tables += len(reg.OwnedTables) + len(reg.LinkedTables)
	}

	body := gin.H{
		"app":         "tabularium",
		"version":     "0.1.0",
		"departments": departments,
		"tables":      tables,
	}

	if h.pool != nil {
		stat := h.pool.Stat()
		body["database"] = map[string]any{
			"total_conns":    stat.TotalConns(),
			"acquired_conns": stat.AcquiredConns(),
			"idle_conns":     stat.IdleConns(),
			"max_conns":      stat.MaxConns(),
		}
	}

	c.JSON(http.StatusOK, body)
}
