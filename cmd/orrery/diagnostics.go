// cmd/orrery/diagnostics.go
package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/health"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/metrics"
)

const (
	// simulation is unhealthy when no frame completed for this long
	stallTimeout = 5 * time.Second

	// memory limit of the readiness check
	maxMemoryMB = 500

	shutdownTimeout = 5 * time.Second
)

// diagnostics owns the metrics collector and the health server. The zero
// value is a disabled endpoint.
type diagnostics struct {
	collector *metrics.Collector
	server    *health.Server
	logger    *logging.Logger
}

// startDiagnostics serves /health, /ready and /metrics on the configured
// address. An empty address disables the endpoint.
func startDiagnostics(ctx context.Context, sim *engine.Simulation, logger *logging.Logger) (*diagnostics, error) {
	d := &diagnostics{logger: logger}
	addr := sim.Config.Diagnostics.MetricsAddr
	if addr == "" {
		return d, nil
	}

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, logging.WrapError(err, "failed to register metrics")
	}
	collector.Attach(sim.EventBus)

	hc := health.NewHealthChecker()
	hc.AddCheck(health.NewSimulationProgressCheck(sim.Frames, stallTimeout))
	hc.AddCheck(health.NewMemoryHealthCheck(maxMemoryMB, nil))

	server := health.NewServer(addr, health.NewMux(hc, collector.Handler()), logger)
	if err := server.Start(ctx); err != nil {
		collector.Detach()
		return nil, err
	}
	logger.Info(ctx, "Diagnostics endpoint started",
		"address", server.Addr(),
		"checks", hc.Names(),
	)

	d.collector = collector
	d.server = server
	return d, nil
}

// Close stops the server and detaches the collector. It is safe to call
// more than once.
func (d *diagnostics) Close(ctx context.Context) {
	if d.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			d.logger.Error(ctx, "Diagnostics server shutdown failed", err)
		}
		d.server = nil
	}
	if d.collector != nil {
		d.collector.Detach()
		d.collector = nil
	}
}
