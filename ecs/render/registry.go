package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

const whiteKey = "white"

// whitePixel is a 1x1 white source for flat-colored triangles. It is cut from
// the middle of a 3x3 image so filtering never samples a transparent edge.
func whitePixel() *ebiten.Image {
	if img := GetImage(whiteKey); img != nil {
		return img
	}
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	img := base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	RegisterImage(whiteKey, img)
	return img
}
