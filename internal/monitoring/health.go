package monitoring

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

type HealthCheckFunc func(ctx context.Context) error

// HealthChecker runs registered dependency checks on demand.
type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]HealthCheckFunc
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheckFunc),
	}
}

func (h *HealthChecker) Register(name string, check HealthCheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *HealthChecker) Run(ctx context.Context) (bool, []HealthCheck) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	funcs := make([]HealthCheckFunc, 0, len(h.checks))
	for name, check := range h.checks {
		names = append(names, name)
		funcs = append(funcs, check)
	}
	h.mu.RUnlock()

	healthy := true
	results := make([]HealthCheck, len(names))
	for i := range names {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := funcs[i](checkCtx)
		cancel()

		result := HealthCheck{
			Name:    names[i],
			Status:  "ok",
			LastRun: time.Now(),
		}
		if err != nil {
			result.Status = "failing"
			result.Message = err.Error()
			healthy = false
		}
		results[i] = result
	}
	return healthy, results
}

// Handler serves the health endpoint: 200 when every check passes, 503
// otherwise, always with per-check detail.
func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		healthy, results := h.Run(c.Request.Context())

		status := http.StatusOK
		overall := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status": overall,
			"checks": results,
		})
	}
}
