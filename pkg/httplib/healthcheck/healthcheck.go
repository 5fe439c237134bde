package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Probe reports whether a dependency can serve traffic.
type Probe func(ctx context.Context) error

// HealthCheck answers GET /health (liveness) and GET /ready (readiness).
type HealthCheck struct {
	probes   map[string]Probe
	timeout  time.Duration
	draining atomic.Bool
}

// New creates a health check that runs probes on /ready.
func New(timeout time.Duration, probes map[string]Probe) *HealthCheck {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthCheck{probes: probes, timeout: timeout}
}

// Shutdown makes both endpoints answer 503 so load balancers stop routing.
func (hc *HealthCheck) Shutdown() {
	hc.draining.Store(true)
}

// Handler is used to control the flow of GET /health and GET /ready
func (hc *HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case IsHealthCheckRequest(r):
			hc.ServeHTTP(w, r)
		case IsReadinessRequest(r):
			hc.serveReady(w, r)
		default:
			h.ServeHTTP(w, r)
		}
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc *HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if hc.draining.Load() {
		writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}
	writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (hc *HealthCheck) serveReady(w http.ResponseWriter, r *http.Request) {
	if hc.draining.Load() {
		writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), hc.timeout)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(hc.probes))
	for name, probe := range hc.probes {
		if err := probe(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result[name] = err.Error()
			continue
		}
		result[name] = "ok"
	}
	writeStatus(w, status, result)
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/health"
}

// IsReadinessRequest reports whether r asks for the readiness of dependencies.
func IsReadinessRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/ready"
}
