package postgresql

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck reports database reachability and pool pressure.
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	AcquiredConn int32         `json:"acquired_connections"`
	IdleConns    int32         `json:"idle_connections"`
	MaxConns     int32         `json:"max_connections"`
	Error        string        `json:"error,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckHealth pings the database and runs a trivial query.
func CheckHealth(ctx context.Context, c PostgreSQLClient) *HealthCheck {
	start := time.Now()
	health := &HealthCheck{Status: StatusHealthy}

	if stats := c.Stats(); stats != nil {
		health.AcquiredConn = stats.AcquiredConns()
		health.IdleConns = stats.IdleConns()
		health.MaxConns = stats.MaxConns()
	}

	var one int
	if err := c.Ping(ctx); err != nil {
		health.Status = StatusUnhealthy
		health.Error = fmt.Sprintf("ping failed: %v", err)
	} else if err := c.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		health.Status = StatusUnhealthy
		health.Error = fmt.Sprintf("query failed: %v", err)
	}

	health.ResponseTime = time.Since(start)
	return health
}

// Probe adapts CheckHealth to a readiness probe.
func Probe(c PostgreSQLClient) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if health := CheckHealth(ctx, c); health.Status != StatusHealthy {
			return fmt.Errorf("postgresql %s", health.Error)
		}
		return nil
	}
}
