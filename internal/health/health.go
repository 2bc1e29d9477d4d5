package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const checkTimeout = 5 * time.Second

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Checker performs health checks on service dependencies.
type Checker struct {
	version string
	checks  map[string]CheckFunc
}

// NewChecker creates a health checker. A nil redis client is not checked.
func NewChecker(redisClient *redis.Client, version string) *Checker {
	c := &Checker{
		version: version,
		checks:  make(map[string]CheckFunc),
	}
	if redisClient != nil {
		c.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	return c
}

// AddCheck registers an additional dependency under name.
func (c *Checker) AddCheck(name string, check CheckFunc) *Checker {
	c.checks[name] = check
	return c
}

// Check performs health checks on all dependencies and returns the overall status.
func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult, len(c.checks)),
	}

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		start := time.Now()
		if err := c.checks[name](checkCtx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
			continue
		}
		status.Checks[name] = CheckResult{
			Status:    StatusHealthy,
			LatencyMs: time.Since(start).Milliseconds(),
		}
	}

	return status
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.version})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
