// Package health provides liveness and readiness endpoints for the orrery's
// diagnostics server, with checks that watch the simulation loop.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"slices"
	"sync"
	"time"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// Names returns the registered check names in sorted order.
func (hc *HealthChecker) Names() []string {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CheckHealth executes all registered checks. The overall status is
// "healthy" only if every check passes.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}

// LivenessHandler returns 200 OK while the process can serve requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs every check and answers 200 OK when all pass, or
// 503 Service Unavailable otherwise.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// SimulationProgressCheck fails when the frame counter stops advancing for
// longer than the stall window.
type SimulationProgressCheck struct {
	frames func() uint64
	stall  time.Duration
	now    func() time.Time

	mu        sync.Mutex
	last      uint64
	changedAt time.Time
}

// NewSimulationProgressCheck creates a progress check over frames, a
// function that may be called from any goroutine.
func NewSimulationProgressCheck(frames func() uint64, stall time.Duration) *SimulationProgressCheck {
	return newSimulationProgressCheck(frames, stall, time.Now)
}

func newSimulationProgressCheck(frames func() uint64, stall time.Duration, now func() time.Time) *SimulationProgressCheck {
	return &SimulationProgressCheck{
		frames:    frames,
		stall:     stall,
		now:       now,
		last:      frames(),
		changedAt: now(),
	}
}

// Name returns the name of this health check.
func (s *SimulationProgressCheck) Name() string {
	return "simulation"
}

// Check verifies that at least one frame completed within the stall window.
func (s *SimulationProgressCheck) Check(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if current := s.frames(); current != s.last {
		s.last = current
		s.changedAt = now
		return nil
	}
	if idle := now.Sub(s.changedAt); idle > s.stall {
		return fmt.Errorf("simulation stalled at frame %d for %s", s.last, idle.Round(time.Millisecond))
	}
	return nil
}

// MemoryHealthCheck fails when heap allocation exceeds a limit.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a memory check. A nil getMemoryUsage reads
// the runtime's heap allocation.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = AllocatedMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within the limit.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// AllocatedMB returns the heap bytes currently allocated, in MiB.
func AllocatedMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
