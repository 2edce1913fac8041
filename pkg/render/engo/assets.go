// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"path"
	"strings"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

// Sprite keys for the entities that have no model path
const (
	AirplaneSprite   = "sprite:airplane"
	ProjectileSprite = "sprite:projectile"
)

const (
	bodyImageSize       = 64
	airplaneImageSize   = 16
	projectileImageSize = 4

	fontURL  = "orrery/goregular.ttf"
	fontSize = 14
)

// AssetManager turns model paths into procedural sprites. Images are white
// on transparent and tinted by the render component's colour.
type AssetManager struct {
	images  map[string]*image.NRGBA
	sprites map[string]common.Drawable
	font    *common.Font

	// upload converts an image to a drawable; it needs a GL context
	upload func(*image.NRGBA) common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		images:  make(map[string]*image.NRGBA),
		sprites: make(map[string]common.Drawable),
		upload:  convertToEngoTexture,
	}
}

// LoadAssets loads the HUD font. Sprites are generated on first use.
func (am *AssetManager) LoadAssets() error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	font := &common.Font{URL: fontURL, FG: color.White, Size: fontSize}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("failed to prepare HUD font: %w", err)
	}
	am.font = font
	return nil
}

// Font returns the HUD font, or nil before LoadAssets
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// Sprite returns the drawable for a model path or sprite key
func (am *AssetManager) Sprite(model string) common.Drawable {
	if sprite, exists := am.sprites[model]; exists {
		return sprite
	}
	sprite := am.upload(am.Image(model))
	am.sprites[model] = sprite
	return sprite
}

// Image returns the procedural image for a model path or sprite key
func (am *AssetManager) Image(model string) *image.NRGBA {
	if img, exists := am.images[model]; exists {
		return img
	}

	var img *image.NRGBA
	switch shapeFor(model) {
	case shapeAirplane:
		img = drawPattern(airplanePattern)
	case shapeProjectile:
		img = drawPattern(projectilePattern)
	case shapeStar:
		img = drawDisc(bodyImageSize, 0.3, 0.5)
	case shapeRinged:
		img = drawDisc(bodyImageSize, 0.3, 0)
		drawRing(img, 0.46, 0.12)
	default:
		img = drawDisc(bodyImageSize, 0.5, 0)
	}
	am.images[model] = img
	return img
}

type shape int

const (
	shapeDisc shape = iota
	shapeStar
	shapeRinged
	shapeAirplane
	shapeProjectile
)

// shapeFor picks a shape from the model's base name, e.g. "models/Sun.glb"
func shapeFor(model string) shape {
	switch model {
	case AirplaneSprite:
		return shapeAirplane
	case ProjectileSprite:
		return shapeProjectile
	}
	name := strings.ToLower(strings.TrimSuffix(path.Base(model), path.Ext(model)))
	switch name {
	case "sun", "star":
		return shapeStar
	case "saturn":
		return shapeRinged
	}
	return shapeDisc
}

var airplanePattern = [][]int{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

var projectilePattern = [][]int{
	{0, 1, 1, 0},
	{1, 1, 1, 1},
	{1, 1, 1, 1},
	{0, 1, 1, 0},
}

var white = color.NRGBA{255, 255, 255, 255}

// drawPattern draws a square 2D pixel pattern
func drawPattern(pattern [][]int) *image.NRGBA {
	size := len(pattern)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y, row := range pattern {
		for x, pixel := range row {
			if x < size && pixel == 1 {
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return img
}

// drawDisc draws a filled disc of the given radius (as a fraction of size)
// with an optional halo fading out to the image edge.
func drawDisc(size int, radius, halo float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	r := radius * float64(size)
	outer := math.Max(r, halo*float64(size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			switch {
			case d <= r:
				img.SetNRGBA(x, y, white)
			case d < outer:
				a := 160 * (1 - (d-r)/(outer-r))
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, uint8(a)})
			}
		}
	}
	return img
}

// drawRing adds a flattened ring of the given semi-major axis and band
// width, both as fractions of the image size.
func drawRing(img *image.NRGBA, radius, band float64) {
	size := float64(img.Bounds().Dx())
	c := size / 2
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			dx := (float64(x) + 0.5 - c) / size
			dy := (float64(y) + 0.5 - c) / size * 3
			d := math.Hypot(dx, dy)
			if d <= radius && d >= radius-band && img.NRGBAAt(x, y).A == 0 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 200})
			}
		}
	}
}

// convertToEngoTexture uploads an image as an Engo texture
func convertToEngoTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// spriteDiameter is the on-screen size in pixels of a body of the given
// radius in scene units. It grows logarithmically so small moons stay
// visible next to the sun.
func spriteDiameter(radius float32) float32 {
	d := 6 + 4*math.Log2(1+float64(radius))
	return float32(math.Min(d, 48))
}

// hexColor parses "#rrggbb", falling back to fallback
func hexColor(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}
