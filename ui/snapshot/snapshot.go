// Package snapshot writes console frames as PNG images.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/glog"
	"golang.org/x/image/draw"

	"github.com/jyane/famicore/nes"
)

// Image converts a framebuffer of 0xAARRGGBB pixels to an image.
func Image(framebuffer []uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, nes.ScreenWidth, nes.ScreenHeight))
	for i, p := range framebuffer {
		if i >= nes.ScreenWidth*nes.ScreenHeight {
			break
		}
		img.SetRGBA(i%nes.ScreenWidth, i/nes.ScreenWidth, color.RGBA{
			R: uint8(p >> 16),
			G: uint8(p >> 8),
			B: uint8(p),
			A: uint8(p >> 24),
		})
	}
	return img
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, scale int) *image.RGBA {
	if scale < 1 {
		glog.Warningf("Snapshot scale %d is too small, using 1", scale)
		scale = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save writes the framebuffer as a PNG file, scaled by scale.
func Save(path string, framebuffer []uint32, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, Scale(Image(framebuffer), scale)); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	glog.Infof("Saved snapshot to %s", path)
	return nil
}
