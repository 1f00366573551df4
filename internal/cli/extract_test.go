package cli

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imagepalette/imagepalette/colour"
)

func testRecords() []colour.Record {
	return []colour.Record{
		{RGB: colour.RGB{R: 255, G: 0, B: 0}, Count: 12},
		{RGB: colour.RGB{R: 0, G: 255, B: 0}, Count: 3},
	}
}

func writeSolidPNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestRunExtractWritesPalette(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "solid.png")
	writeSolidPNG(t, imgPath, color.NRGBA{R: 255, A: 255})
	outPath := filepath.Join(dir, "palette.txt")

	opts := &extractOptions{colours: 4, format: "hex", output: outPath}
	if err := runExtract(imgPath, opts); err != nil {
		t.Fatalf("runExtract() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got, want := string(data), "#FF0000 4\n"; got != want {
		t.Errorf("palette file = %q, want %q", got, want)
	}
}

func TestFormatRecordsHex(t *testing.T) {
	out, err := formatRecords(testRecords(), 4, 4, "hex", false)
	if err != nil {
		t.Fatalf("formatRecords() error = %v", err)
	}

	want := "#FF0000 12\n#00FF00 3\n"
	if out != want {
		t.Errorf("formatRecords() = %q, want %q", out, want)
	}
}

func TestFormatRecordsRGB(t *testing.T) {
	out, err := formatRecords(testRecords(), 4, 4, "rgb", false)
	if err != nil {
		t.Fatalf("formatRecords() error = %v", err)
	}

	want := "rgb(255, 0, 0) 12\nrgb(0, 255, 0) 3\n"
	if out != want {
		t.Errorf("formatRecords() = %q, want %q", out, want)
	}
}

func TestFormatRecordsJSON(t *testing.T) {
	out, err := formatRecords(testRecords(), 4, 4, "json", false)
	if err != nil {
		t.Fatalf("formatRecords() error = %v", err)
	}

	expected := []string{
		`"width": 4`,
		`"height": 4`,
		`"count": 2`,
		`"hex": "#FF0000"`,
		`"hex": "#00FF00"`,
		`"count": 12`,
		`"count": 3`,
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
}

func TestFormatRecordsPreview(t *testing.T) {
	out, err := formatRecords(testRecords(), 4, 4, "hex", true)
	if err != nil {
		t.Fatalf("formatRecords() error = %v", err)
	}

	if !strings.Contains(out, "\033[48;2;255;0;0m") {
		t.Errorf("preview output missing ANSI swatch: %q", out)
	}
	if !strings.Contains(out, "#FF0000") {
		t.Errorf("preview output missing hex code: %q", out)
	}
}

func TestFormatRecordsUnknownFormat(t *testing.T) {
	if _, err := formatRecords(testRecords(), 4, 4, "yaml", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatRecordsEmpty(t *testing.T) {
	out, err := formatRecords(nil, 0, 0, "hex", false)
	if err != nil {
		t.Fatalf("formatRecords() error = %v", err)
	}
	if out != "" {
		t.Errorf("formatRecords(nil) = %q, want empty", out)
	}
}
