package render

import (
	"image"

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

// ImageFor returns the GPU copy of src cached under key, uploading it the
// first time.
func ImageFor(key string, src image.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	if img := GetImage(key); img != nil {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	RegisterImage(key, img)
	return img
}

// ForgetImages drops cached images whose keys are not in keep.
func ForgetImages(keep map[string]struct{}) {
	for key, img := range images {
		if _, ok := keep[key]; ok {
			continue
		}
		img.Deallocate()
		delete(images, key)
	}
}
