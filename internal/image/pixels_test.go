package image

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/imagepalette/imagepalette/colour"
)

func TestPixelsNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 70, G: 80, B: 90, A: 128})
	img.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 0}) // dropped

	data, err := Pixels(img)
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}

	if data.Width != 2 || data.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", data.Width, data.Height)
	}
	if len(data.Pixels) != 3 {
		t.Fatalf("got %d pixels, want 3 (transparent dropped)", len(data.Pixels))
	}

	// Partially transparent pixels keep their channels.
	want := colour.RGB{R: 70, G: 80, B: 90}
	found := false
	for _, px := range data.Pixels {
		if px == want {
			found = true
		}
	}
	if !found {
		t.Errorf("partially transparent pixel %+v missing from %+v", want, data.Pixels)
	}
}

func TestPixelsRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 0}) // dropped

	data, err := Pixels(img)
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}
	if len(data.Pixels) != 1 {
		t.Fatalf("got %d pixels, want 1", len(data.Pixels))
	}
	if want := (colour.RGB{R: 10, G: 20, B: 30}); data.Pixels[0] != want {
		t.Errorf("pixel = %+v, want %+v", data.Pixels[0], want)
	}
}

func TestPixelsYCbCr(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	// Neutral chroma: Y becomes grey level.
	for i := range img.Y {
		img.Y[i] = 128
	}
	for i := range img.Cb {
		img.Cb[i] = 128
		img.Cr[i] = 128
	}

	data, err := Pixels(img)
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}
	if len(data.Pixels) != 4 {
		t.Fatalf("got %d pixels, want 4", len(data.Pixels))
	}
	for _, px := range data.Pixels {
		if px.R != px.G || px.G != px.B {
			t.Errorf("neutral chroma pixel not grey: %+v", px)
		}
	}
}

func TestPixelsPaletted(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		color.NRGBA{R: 0, G: 0, B: 0, A: 0}, // transparent entry
	}
	img := image.NewPaletted(image.Rect(0, 0, 3, 1), palette)
	img.SetColorIndex(0, 0, 0)
	img.SetColorIndex(1, 0, 1)
	img.SetColorIndex(2, 0, 2)

	data, err := Pixels(img)
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}
	if len(data.Pixels) != 2 {
		t.Fatalf("got %d pixels, want 2 (transparent entry dropped)", len(data.Pixels))
	}
	if want := (colour.RGB{R: 255, G: 0, B: 0}); data.Pixels[0] != want {
		t.Errorf("pixel 0 = %+v, want %+v", data.Pixels[0], want)
	}
	if want := (colour.RGB{R: 0, G: 255, B: 0}); data.Pixels[1] != want {
		t.Errorf("pixel 1 = %+v, want %+v", data.Pixels[1], want)
	}
}

func TestPixelsFullyTransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	data, err := Pixels(img)
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}
	if len(data.Pixels) != 0 {
		t.Errorf("got %d pixels, want 0", len(data.Pixels))
	}
	if data.Width != 4 || data.Height != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", data.Width, data.Height)
	}
}

func TestPixelsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{
			name: "gray",
			img:  image.NewGray(image.Rect(0, 0, 1, 1)),
		},
		{
			name: "gray16",
			img:  image.NewGray16(image.Rect(0, 0, 1, 1)),
		},
		{
			name: "cmyk",
			img:  image.NewCMYK(image.Rect(0, 0, 1, 1)),
		},
		{
			name: "rgba64",
			img:  image.NewRGBA64(image.Rect(0, 0, 1, 1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pixels(tt.img)
			if !errors.Is(err, ErrUnsupportedPixelFormat) {
				t.Errorf("Pixels(%s) error = %v, want ErrUnsupportedPixelFormat", tt.name, err)
			}
		})
	}
}
