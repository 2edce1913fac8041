// Package metrics exposes simulation counters to Prometheus.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opd-ai/go-orrery/pkg/event"
)

// Collector bundles the orrery's Prometheus metrics and feeds them from the
// simulation event bus.
type Collector struct {
	gatherer prometheus.Gatherer

	Frames             prometheus.Counter
	FrameDelta         prometheus.Histogram
	CameraMoves        prometheus.Counter
	ProjectilesFired   prometheus.Counter
	ProjectilesExpired prometheus.Counter
	ProjectilesActive  prometheus.Gauge
	FocusChanges       *prometheus.CounterVec
	HeadingChanges     prometheus.Counter
	WheelEventsIgnored prometheus.Counter

	subscriptions []*event.Subscription
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice on the same registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Frames, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Number of simulation steps completed.",
	}), "orrery_frames_total"); err != nil {
		return nil, err
	}
	if c.FrameDelta, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_frame_delta_seconds",
		Help:    "Wall-clock delta applied per simulation step, after capping.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.016, 0.033, 0.05, 0.1, 0.25},
	}), "orrery_frame_delta_seconds"); err != nil {
		return nil, err
	}
	if c.CameraMoves, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_camera_moves_total",
		Help: "Number of steps in which the camera followed its focus.",
	}), "orrery_camera_moves_total"); err != nil {
		return nil, err
	}
	if c.ProjectilesFired, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_projectiles_fired_total",
		Help: "Number of projectiles fired from the airplane.",
	}), "orrery_projectiles_fired_total"); err != nil {
		return nil, err
	}
	if c.ProjectilesExpired, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_projectiles_expired_total",
		Help: "Number of projectiles removed after reaching their range.",
	}), "orrery_projectiles_expired_total"); err != nil {
		return nil, err
	}
	if c.ProjectilesActive, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_projectiles_active",
		Help: "Projectiles alive at the end of the last step.",
	}), "orrery_projectiles_active"); err != nil {
		return nil, err
	}
	if c.FocusChanges, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_focus_changes_total",
		Help: "Camera focus transitions, labeled by new target and cause.",
	}, []string{"target", "cause"}), "orrery_focus_changes_total"); err != nil {
		return nil, err
	}
	if c.HeadingChanges, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_heading_changes_total",
		Help: "Airplane heading adjustments.",
	}), "orrery_heading_changes_total"); err != nil {
		return nil, err
	}
	if c.WheelEventsIgnored, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_wheel_events_ignored_total",
		Help: "Line-unit wheel events that left the focus unchanged.",
	}), "orrery_wheel_events_ignored_total"); err != nil {
		return nil, err
	}
	return c, nil
}

// Attach subscribes the collector to bus
func (c *Collector) Attach(bus *event.Bus) {
	c.subscriptions = append(c.subscriptions,
		bus.Subscribe(event.FrameCompleted, c.onFrame),
		bus.Subscribe(event.ProjectileFired, func(event.Event) { c.ProjectilesFired.Inc() }),
		bus.Subscribe(event.ProjectileExpired, func(event.Event) { c.ProjectilesExpired.Inc() }),
		bus.Subscribe(event.FocusChanged, c.onFocus),
		bus.Subscribe(event.HeadingChanged, func(event.Event) { c.HeadingChanges.Inc() }),
		bus.Subscribe(event.WheelIgnored, func(event.Event) { c.WheelEventsIgnored.Inc() }),
	)
}

// Detach cancels the subscriptions made by Attach
func (c *Collector) Detach() {
	for _, sub := range c.subscriptions {
		sub.Cancel()
	}
	c.subscriptions = nil
}

func (c *Collector) onFrame(e event.Event) {
	fe, ok := e.(*event.FrameEvent)
	if !ok {
		return
	}
	c.Frames.Inc()
	c.FrameDelta.Observe(fe.DeltaSeconds)
	c.ProjectilesActive.Set(float64(fe.Projectiles))
	if fe.CameraMoved {
		c.CameraMoves.Inc()
	}
}

func (c *Collector) onFocus(e event.Event) {
	fe, ok := e.(*event.FocusEvent)
	if !ok {
		return
	}
	c.FocusChanges.WithLabelValues(fe.To, fe.Cause).Inc()
}

// Handler exposes a /metrics handler for the collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return collector, err
		}
		existing, ok := are.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return existing, nil
	}
	return collector, nil
}
