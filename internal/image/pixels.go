package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/imagepalette/imagepalette/colour"
)

// PixelData is the flat pixel stream handed to the quantizer: opaque
// 3-channel colours plus the source image dimensions. Fully
// transparent pixels are already filtered out, so len(Pixels) can be
// smaller than Width*Height.
type PixelData struct {
	Pixels []colour.RGB
	Width  int
	Height int
}

// Pixels flattens a decoded image into a PixelData. Only 3- and
// 4-channel 8-bit layouts are understood: NRGBA, RGBA, YCbCr and
// Paletted images are accepted, anything else returns
// ErrUnsupportedPixelFormat. Pixels with alpha 0 are dropped;
// partially transparent pixels keep their colour channels.
func Pixels(img image.Image) (PixelData, error) {
	bounds := img.Bounds()
	data := PixelData{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	data.Pixels = make([]colour.RGB, 0, data.Width*data.Height)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				px := src.NRGBAAt(x, y)
				if px.A == 0 {
					continue
				}
				data.Pixels = append(data.Pixels, colour.RGB{R: px.R, G: px.G, B: px.B})
			}
		}

	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				px := src.RGBAAt(x, y)
				if px.A == 0 {
					continue
				}
				if px.A != 0xFF {
					// Alpha-premultiplied channels need scaling back.
					n := color.NRGBAModel.Convert(px).(color.NRGBA)
					data.Pixels = append(data.Pixels, colour.RGB{R: n.R, G: n.G, B: n.B})
					continue
				}
				data.Pixels = append(data.Pixels, colour.RGB{R: px.R, G: px.G, B: px.B})
			}
		}

	case *image.YCbCr:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				data.Pixels = append(data.Pixels, colour.ToRGB(src.YCbCrAt(x, y)))
			}
		}

	case *image.Paletted:
		// Palette entries are 8-bit RGBA; expand through the index.
		lookup := make([]colour.RGB, len(src.Palette))
		opaque := make([]bool, len(src.Palette))
		for i, c := range src.Palette {
			_, _, _, a := c.RGBA()
			opaque[i] = a != 0
			lookup[i] = colour.ToRGB(c)
		}
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				idx := src.ColorIndexAt(x, y)
				if !opaque[idx] {
					continue
				}
				data.Pixels = append(data.Pixels, lookup[idx])
			}
		}

	default:
		return PixelData{}, fmt.Errorf("%w: %T", ErrUnsupportedPixelFormat, img)
	}

	return data, nil
}
