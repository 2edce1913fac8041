package engo

import (
	"image"
	"image/color"
	"testing"

	"github.com/EngoEngine/engo/common"
)

func TestShapeFor(t *testing.T) {
	tests := []struct {
		model string
		want  shape
	}{
		{"models/Sun.glb", shapeStar},
		{"models/Saturn.glb", shapeRinged},
		{"models/Earth.glb", shapeDisc},
		{"saturn", shapeRinged},
		{"", shapeDisc},
		{AirplaneSprite, shapeAirplane},
		{ProjectileSprite, shapeProjectile},
	}
	for _, tt := range tests {
		if got := shapeFor(tt.model); got != tt.want {
			t.Errorf("shapeFor(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestAssetManager_Image(t *testing.T) {
	am := NewAssetManager()

	tests := []struct {
		name  string
		model string
		size  int
		x, y  int
		alpha uint8
	}{
		{"disc centre", "models/Earth.glb", bodyImageSize, 32, 32, 255},
		{"disc edge", "models/Earth.glb", bodyImageSize, 58, 32, 255},
		{"disc corner", "models/Earth.glb", bodyImageSize, 0, 0, 0},
		{"star core", "models/Sun.glb", bodyImageSize, 32, 32, 255},
		{"star corner", "models/Sun.glb", bodyImageSize, 0, 0, 0},
		{"ring", "models/Saturn.glb", bodyImageSize, 58, 32, 200},
		{"above ringed disc", "models/Saturn.glb", bodyImageSize, 32, 5, 0},
		{"airplane nose", AirplaneSprite, airplaneImageSize, 7, 0, 255},
		{"airplane corner", AirplaneSprite, airplaneImageSize, 0, 0, 0},
		{"projectile", ProjectileSprite, projectileImageSize, 1, 1, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := am.Image(tt.model)
			if img.Bounds().Dx() != tt.size || img.Bounds().Dy() != tt.size {
				t.Fatalf("image size = %v, want %d", img.Bounds(), tt.size)
			}
			if a := img.NRGBAAt(tt.x, tt.y).A; a != tt.alpha {
				t.Errorf("alpha at (%d, %d) = %d, want %d", tt.x, tt.y, a, tt.alpha)
			}
		})
	}

	t.Run("star halo", func(t *testing.T) {
		a := am.Image("models/Sun.glb").NRGBAAt(58, 32).A
		if a == 0 || a == 255 {
			t.Errorf("halo alpha = %d, want partial", a)
		}
	})
}

func TestAssetManager_SpriteCaches(t *testing.T) {
	am := NewAssetManager()
	uploads := 0
	am.upload = func(*image.NRGBA) common.Drawable {
		uploads++
		return common.Rectangle{}
	}

	for i := 0; i < 3; i++ {
		am.Sprite("models/Earth.glb")
	}
	am.Sprite("models/Mars.glb")
	if uploads != 2 {
		t.Errorf("uploads = %d, want one per model", uploads)
	}
	if am.Image("models/Earth.glb") != am.Image("models/Earth.glb") {
		t.Error("images are not cached")
	}
}

func TestAssetManager_FontBeforeLoad(t *testing.T) {
	if NewAssetManager().Font() != nil {
		t.Error("Font() should be nil before LoadAssets")
	}
}

func TestSpriteDiameter(t *testing.T) {
	sun, earth, moon := spriteDiameter(109), spriteDiameter(1), spriteDiameter(0.27)
	if !(sun > earth && earth > moon) {
		t.Errorf("diameters not ordered: sun %v earth %v moon %v", sun, earth, moon)
	}
	if spriteDiameter(0) != 6 {
		t.Errorf("spriteDiameter(0) = %v, want 6", spriteDiameter(0))
	}
	if spriteDiameter(1e9) != 48 {
		t.Errorf("spriteDiameter is not capped: %v", spriteDiameter(1e9))
	}
}

func TestHexColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}
	tests := []struct {
		hex  string
		want color.Color
	}{
		{"#2E6FDB", color.RGBA{0x2e, 0x6f, 0xdb, 255}},
		{"#000000", color.RGBA{0, 0, 0, 255}},
		{"blue", fallback},
		{"", fallback},
	}
	for _, tt := range tests {
		if got := hexColor(tt.hex, fallback); got != tt.want {
			t.Errorf("hexColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}
