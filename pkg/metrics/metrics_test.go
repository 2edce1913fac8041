package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/opd-ai/go-orrery/pkg/event"
)

func newTestCollector(t *testing.T) (*Collector, *event.Bus) {
	t.Helper()
	c, err := NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	bus := event.NewEventBus()
	c.Attach(bus)
	return c, bus
}

func TestCollector_CountsEvents(t *testing.T) {
	c, bus := newTestCollector(t)

	bus.Publish(event.NewFrameEvent(nil, 0, 0.016, 2, true))
	bus.Publish(event.NewFrameEvent(nil, 1, 0.016, 1, false))
	bus.Publish(event.NewProjectileEvent(event.ProjectileFired, nil, 1, 0))
	bus.Publish(event.NewProjectileEvent(event.ProjectileFired, nil, 2, 0))
	bus.Publish(event.NewProjectileEvent(event.ProjectileExpired, nil, 1, 100))
	bus.Publish(event.NewFocusEvent(nil, "Global", "Earth", "button"))
	bus.Publish(event.NewFocusEvent(nil, "Earth", "Global", "right_mouse"))
	bus.Publish(event.NewHeadingEvent(nil, 0.7, 0))
	bus.Publish(&event.BaseEvent{EventType: event.WheelIgnored})

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"frames", c.Frames, 2},
		{"camera moves", c.CameraMoves, 1},
		{"fired", c.ProjectilesFired, 2},
		{"expired", c.ProjectilesExpired, 1},
		{"active", c.ProjectilesActive, 1},
		{"focus earth", c.FocusChanges.WithLabelValues("Earth", "button"), 1},
		{"focus global", c.FocusChanges.WithLabelValues("Global", "right_mouse"), 1},
		{"heading", c.HeadingChanges, 1},
		{"wheel ignored", c.WheelEventsIgnored, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollector_Detach(t *testing.T) {
	c, bus := newTestCollector(t)
	c.Detach()
	bus.Publish(event.NewFrameEvent(nil, 0, 0.016, 0, false))
	if got := testutil.ToFloat64(c.Frames); got != 0 {
		t.Errorf("frames = %v after Detach", got)
	}
}

func TestNewCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	second.Frames.Inc()
	if got := testutil.ToFloat64(first.Frames); got != 1 {
		t.Errorf("collectors not shared, first frames = %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c, bus := newTestCollector(t)
	bus.Publish(event.NewFrameEvent(nil, 0, 0.02, 0, false))

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"orrery_frames_total 1", "orrery_frame_delta_seconds_count 1", "orrery_projectiles_active 0"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
