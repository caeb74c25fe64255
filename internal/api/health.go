package api

import (
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a comprehensive health check response
type HealthCheckResponse struct {
	Status        HealthStatus           `json:"status"`
	Timestamp     string                 `json:"timestamp"`
	EngineVersion string                 `json:"engine_version"`
	GitCommit     string                 `json:"git_commit,omitempty"`
	BuildTime     string                 `json:"build_time,omitempty"`
	Uptime        string                 `json:"uptime"`
	Checks        map[string]HealthCheck `json:"checks"`
	System        SystemInfo             `json:"system"`
	RequestID     string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked string       `json:"last_checked"`
	Duration    string       `json:"duration,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	MemoryAlloc   uint64 `json:"memory_alloc_bytes"`
	MemorySys     uint64 `json:"memory_sys_bytes"`
	GCCycles      uint32 `json:"gc_cycles"`
}

// MetricsResponse represents basic performance metrics
type MetricsResponse struct {
	Timestamp     string               `json:"timestamp"`
	EngineVersion string               `json:"engine_version"`
	Uptime        string               `json:"uptime"`
	System        SystemInfo           `json:"system"`
	Operations    map[string]OpMetrics `json:"operations"`
	RequestID     string               `json:"request_id,omitempty"`
}

// OpMetrics represents operation-specific metrics
type OpMetrics struct {
	TotalRequests   uint64  `json:"total_requests"`
	SuccessRequests uint64  `json:"success_requests"`
	ErrorRequests   uint64  `json:"error_requests"`
	AvgDurationMs   float64 `json:"avg_duration_ms"`
	LastRequest     string  `json:"last_request,omitempty"`

	total time.Duration
}

// HealthMonitor accumulates per-operation request metrics
type HealthMonitor struct {
	startTime time.Time

	mu      sync.Mutex
	metrics map[string]*OpMetrics
}

// NewHealthMonitor creates a new health monitor
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		startTime: time.Now(),
		metrics:   make(map[string]*OpMetrics),
	}
}

// Record adds one finished request to op's counters
func (m *HealthMonitor) Record(op string, d time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	om, ok := m.metrics[op]
	if !ok {
		om = &OpMetrics{}
		m.metrics[op] = om
	}
	om.TotalRequests++
	if failed {
		om.ErrorRequests++
	} else {
		om.SuccessRequests++
	}
	om.total += d
	om.AvgDurationMs = float64(om.total.Microseconds()) / 1000 / float64(om.TotalRequests)
	om.LastRequest = time.Now().UTC().Format(time.RFC3339)
}

// Snapshot copies the current counters
func (m *HealthMonitor) Snapshot() map[string]OpMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]OpMetrics, len(m.metrics))
	for op, om := range m.metrics {
		out[op] = *om
	}
	return out
}

// Uptime is the time since the monitor was created
func (m *HealthMonitor) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// handleHealthCheck provides comprehensive health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	checks := make(map[string]HealthCheck)
	overallStatus := HealthStatusHealthy

	for _, t := range wheel.Types() {
		check := s.checkCatalogHealth(t)
		checks["catalog_"+string(t)] = check
		switch {
		case check.Status == HealthStatusUnhealthy:
			overallStatus = HealthStatusUnhealthy
		case check.Status == HealthStatusDegraded && overallStatus == HealthStatusHealthy:
			overallStatus = HealthStatusDegraded
		}
	}

	response := HealthCheckResponse{
		Status:        overallStatus,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
		Uptime:        s.monitor.Uptime().String(),
		Checks:        checks,
		System:        getSystemInfo(),
		RequestID:     requestID,
	}

	statusCode := http.StatusOK
	if overallStatus == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, r, statusCode, response)
}

// handleMetrics reports per-operation request metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	response := MetricsResponse{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		Uptime:        s.monitor.Uptime().String(),
		System:        getSystemInfo(),
		Operations:    s.monitor.Snapshot(),
		RequestID:     middleware.GetReqID(r.Context()),
	}

	s.writeJSON(w, r, http.StatusOK, response)
}

// handleReadiness provides readiness probe endpoint
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ready := true
	message := "Ready"

	var missing []string
	for _, t := range wheel.Types() {
		if s.checkCatalogHealth(t).Status != HealthStatusHealthy {
			missing = append(missing, string(t))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		ready = false
		message = fmt.Sprintf("Catalogs unavailable: %v", missing)
	}

	response := map[string]interface{}{
		"ready":          ready,
		"message":        message,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"request_id":     middleware.GetReqID(r.Context()),
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}
	s.writeJSON(w, r, statusCode, response)
}

// handleLiveness provides liveness probe endpoint
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"alive":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"uptime":         s.monitor.Uptime().String(),
		"request_id":     middleware.GetReqID(r.Context()),
	}

	s.writeJSON(w, r, http.StatusOK, response)
}

// checkCatalogHealth verifies that the catalog for t builds and is complete
func (s *Server) checkCatalogHealth(t wheel.Type) HealthCheck {
	start := time.Now()

	status := HealthStatusHealthy
	var message string

	c, err := areas.For(t)
	switch {
	case err != nil:
		status = HealthStatusUnhealthy
		message = err.Error()
	case c.SlotCount() != wheel.SlotCount(t):
		status = HealthStatusDegraded
		message = fmt.Sprintf("catalog has %d slots, wheel has %d", c.SlotCount(), wheel.SlotCount(t))
	default:
		message = fmt.Sprintf("%d areas over %d slots", c.Len(), c.SlotCount())
	}

	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// getSystemInfo collects system information
func getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		MemoryAlloc:   m.Alloc,
		MemorySys:     m.Sys,
		GCCycles:      m.NumGC,
	}
}
