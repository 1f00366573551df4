// Package imagepalette extracts the dominant colours of an image by
// adaptive octree quantization.
//
// The package decodes an image from a local path or HTTPS URL, feeds
// its opaque pixels through the quantizer and returns the surviving
// colours ranked by how many source pixels each one represents:
//
//	records, width, height, err := imagepalette.Load("wallpaper.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("total:", width*height)
//	for _, rec := range records {
//		fmt.Printf("%s: %d\n", rec.Hex(), rec.Count)
//	}
package imagepalette

import (
	"github.com/imagepalette/imagepalette/colour"
	imageutil "github.com/imagepalette/imagepalette/internal/image"
	"github.com/imagepalette/imagepalette/quantizer"
)

// DefaultMaxColours is the leaf budget used by Load.
const DefaultMaxColours = quantizer.DefaultMaxColours

// Typed failure modes. All decoding failures satisfy
// errors.Is(err, ErrUnreadableSource) or ErrUnsupportedPixelFormat;
// a bad colour budget yields ErrInvalidConfiguration. No partial
// results accompany an error.
var (
	ErrUnreadableSource       = imageutil.ErrUnreadableSource
	ErrUnsupportedPixelFormat = imageutil.ErrUnsupportedPixelFormat
	ErrInvalidConfiguration   = quantizer.ErrInvalidConfiguration
)

// Load opens the image at the given path or URL and returns its 16
// dominant colours, ranked by pixel count, along with the image
// dimensions.
func Load(path string) ([]colour.Record, int, int, error) {
	return LoadWithMaxColours(path, quantizer.DefaultConfig().MaxColours)
}

// LoadWithMaxColours opens the image at the given path or URL and
// returns up to maxColours dominant colours, ranked by pixel count,
// along with the image dimensions. The budget must be between 1 and
// 256; fewer records than the budget can come back, since distinct
// leaves may settle on the same quantized colour.
func LoadWithMaxColours(path string, maxColours int) ([]colour.Record, int, int, error) {
	if err := (quantizer.Config{MaxColours: maxColours}).Validate(); err != nil {
		return nil, 0, 0, err
	}

	img, err := imageutil.NewSmartLoader().Load(path)
	if err != nil {
		return nil, 0, 0, err
	}

	data, err := imageutil.Pixels(img)
	if err != nil {
		return nil, 0, 0, err
	}

	records, err := quantizer.Quantize(data.Pixels, maxColours)
	if err != nil {
		return nil, 0, 0, err
	}

	return records, data.Width, data.Height, nil
}
