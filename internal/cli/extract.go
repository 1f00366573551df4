package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/imagepalette/imagepalette"
	"github.com/imagepalette/imagepalette/colour"
	imageutil "github.com/imagepalette/imagepalette/internal/image"
)

// extractOptions holds the extract command's flag values.
type extractOptions struct {
	colours int
	format  string
	output  string
	preview bool
}

// registerExtractFlags wires the extract flags onto a flag set.
func registerExtractFlags(fs *pflag.FlagSet, opts *extractOptions) {
	fs.IntVarP(&opts.colours, "colours", "c", imagepalette.DefaultMaxColours, "number of colours to extract (1-256)")
	fs.StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json)")
	fs.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&opts.preview, "preview", false, "show colour previews in terminal")
}

// newExtractCmd builds the extract command.
func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a ranked colour palette from an image",
		Long: `Extract the dominant colours of an image together with the number of
pixels each colour represents.

The image argument can be a file, a directory (a random image inside
it is used) or an HTTPS URL.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 16 colours (default) from an image
  imagepalette extract wallpaper.jpg

  # Extract 8 colours with terminal swatches
  imagepalette extract --preview --colours 8 wallpaper.png

  # Extract colours and output as JSON
  imagepalette extract --format json wallpaper.jpg

  # Extract colours and save to a file
  imagepalette extract --output palette.txt wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], opts)
		},
	}

	registerExtractFlags(cmd.Flags(), opts)
	return cmd
}

// runExtract executes the extract command.
func runExtract(imagePath string, opts *extractOptions) error {
	if err := imageutil.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	// Directories resolve to a random image inside them.
	resolved, err := imageutil.ResolveImagePath(imagePath)
	if err != nil {
		return err
	}
	if resolved != imagePath {
		logger.Debug("resolved image path", "from", imagePath, "to", resolved)
	}

	if logger.IsDebug() {
		// Dimensions come from the header only, so a remote image that
		// is not cached yet simply skips this line.
		if w, h, err := imageutil.GetImageDimensions(resolved); err == nil {
			logger.Debug("image dimensions", "width", w, "height", h)
		}
	}

	logger.Debug("extracting palette", "image", resolved, "colours", opts.colours)

	records, width, height, err := imagepalette.LoadWithMaxColours(resolved, opts.colours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	logger.Debug("palette extracted",
		"records", len(records), "width", width, "height", height)

	// Swatches only make sense on a terminal when printing to stdout.
	preview := opts.preview
	if preview && opts.output == "" && !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Debug("stdout is not a terminal, disabling preview")
		preview = false
	}

	output, err := formatRecords(records, width, height, opts.format, preview)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "file", opts.output)
		return nil
	}

	fmt.Print(output)
	return nil
}

// paletteJSON is the JSON output document for the extract command.
type paletteJSON struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Count   int          `json:"count"`
	Colours []recordJSON `json:"colours"`
}

type recordJSON struct {
	Hex   string     `json:"hex"`
	RGB   colour.RGB `json:"rgb"`
	Count int        `json:"count"`
}

// formatRecords renders the ranked records in the requested format.
func formatRecords(records []colour.Record, width, height int, format string, preview bool) (string, error) {
	switch format {
	case "hex":
		var sb strings.Builder
		for _, rec := range records {
			if preview {
				fmt.Fprintf(&sb, "%s %d\n", colour.FormatWithPreview(rec.RGB, 8), rec.Count)
			} else {
				fmt.Fprintf(&sb, "%s %d\n", rec.Hex(), rec.Count)
			}
		}
		return sb.String(), nil

	case "rgb":
		var sb strings.Builder
		for _, rec := range records {
			if preview {
				fmt.Fprintf(&sb, "%s  %s %d\n", colour.Preview(rec.RGB, 8), rec.RGB.String(), rec.Count)
			} else {
				fmt.Fprintf(&sb, "%s %d\n", rec.RGB.String(), rec.Count)
			}
		}
		return sb.String(), nil

	case "json":
		doc := paletteJSON{
			Width:   width,
			Height:  height,
			Count:   len(records),
			Colours: make([]recordJSON, len(records)),
		}
		for i, rec := range records {
			doc.Colours[i] = recordJSON{
				Hex:   rec.Hex(),
				RGB:   rec.RGB,
				Count: rec.Count,
			}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil

	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}
