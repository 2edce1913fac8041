package engo

import (
	"testing"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-orrery/pkg/camera"
)

func TestNewCameraSystem(t *testing.T) {
	source := camera.NewCamera(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{5, 0, 7}, 0.5)
	cs := NewCameraSystem(source, 0)

	if cs.GetZoom() != 0.5 {
		t.Errorf("zoom = %v, want 0.5", cs.GetZoom())
	}
	if cs.GetCurrentPosition() != (mgl32.Vec3{5, 0, 7}) {
		t.Errorf("centre = %v, want target", cs.GetCurrentPosition())
	}
	if cs.PixelsPerUnit() != 0.5/EngoScale {
		t.Errorf("PixelsPerUnit() = %v with default scale", cs.PixelsPerUnit())
	}
}

func TestCameraSystem_UpdateFollowsSource(t *testing.T) {
	source := camera.NewCamera(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{}, 1)
	cs := NewCameraSystem(source, 1)

	source.Place(mgl32.Vec3{60, 50, 50}, mgl32.Vec3{10, 0, 0})
	source.Zoom = 2
	if cs.GetCurrentPosition() != (mgl32.Vec3{}) {
		t.Fatal("camera system moved before Update")
	}
	cs.Update(0.016)
	if cs.GetCurrentPosition() != (mgl32.Vec3{10, 0, 0}) || cs.GetZoom() != 2 {
		t.Errorf("after Update centre = %v zoom = %v", cs.GetCurrentPosition(), cs.GetZoom())
	}

	source.Zoom = 0
	cs.Update(0.016)
	if cs.GetZoom() != 2 {
		t.Errorf("non-positive zoom was copied: %v", cs.GetZoom())
	}
}

func TestCameraSystem_NilSource(t *testing.T) {
	cs := NewCameraSystem(nil, 1)
	cs.Update(0.016)
	if cs.GetZoom() != 1 {
		t.Errorf("zoom = %v, want 1", cs.GetZoom())
	}
}

func TestCameraSystem_WorldToScreen(t *testing.T) {
	tests := []struct {
		name   string
		target mgl32.Vec3
		zoom   float32
		pos    mgl32.Vec3
		want   engo.Point
	}{
		{"origin at centre", mgl32.Vec3{}, 1, mgl32.Vec3{}, engo.Point{X: 400, Y: 300}},
		{"x to the right", mgl32.Vec3{}, 1, mgl32.Vec3{200, 0, 0}, engo.Point{X: 500, Y: 300}},
		{"z maps to y", mgl32.Vec3{}, 1, mgl32.Vec3{0, 0, -100}, engo.Point{X: 400, Y: 250}},
		{"height dropped", mgl32.Vec3{}, 1, mgl32.Vec3{0, 70, 0}, engo.Point{X: 400, Y: 300}},
		{"zoom", mgl32.Vec3{}, 2, mgl32.Vec3{100, 0, 100}, engo.Point{X: 500, Y: 400}},
		{"recentred", mgl32.Vec3{100, 0, 50}, 1, mgl32.Vec3{100, 0, 50}, engo.Point{X: 400, Y: 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewCameraSystem(camera.NewCamera(mgl32.Vec3{0, 100, 0}, tt.target, tt.zoom), 2)
			cs.SetViewport(800, 600)
			if got := cs.WorldToScreen(tt.pos); !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestCameraSystem_ScreenToWorld_Inverse(t *testing.T) {
	cs := NewCameraSystem(camera.NewCamera(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{-30, 0, 12}, 0.75), 2)
	cs.SetViewport(1024, 768)

	points := []mgl32.Vec3{{0, 0, 0}, {1500, 0, -20}, {-42.5, 0, 300}}
	for _, p := range points {
		back := cs.ScreenToWorld(cs.WorldToScreen(p))
		if !near(back.X(), p.X()) || back.Y() != 0 || !near(back.Z(), p.Z()) {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}
}
