// Package image provides the decoding boundary: it turns file paths
// and URLs into flat pixel streams for the quantizer core.
package image

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/imagepalette/imagepalette/internal/util/imagecache"
)

// ErrUnreadableSource indicates the underlying file or stream could
// not be opened or decoded.
var ErrUnreadableSource = errors.New("unreadable image source")

// ErrUnsupportedPixelFormat indicates the decoded image uses a colour
// model other than 3- or 4-channel 8-bit.
var ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image path cannot be empty", ErrUnreadableSource)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image file not found: %s", ErrUnreadableSource, path)
		}
		return nil, fmt.Errorf("%w: failed to stat image file: %v", ErrUnreadableSource, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", ErrUnreadableSource, path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image file: %v", ErrUnreadableSource, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image (format: %s): %v", ErrUnreadableSource, format, err)
	}

	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
// Remote images are downloaded through the cache so repeated runs on
// the same URL do not re-fetch.
type SmartLoader struct {
	fileLoader *FileLoader
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	if isURL(path) {
		cached, err := imagecache.Fetch(context.Background(), path, imagecache.Options{})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
		}
		return l.fileLoader.Load(cached)
	}

	return l.fileLoader.Load(path)
}

// isURL reports whether the path refers to a remote image.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks if the given path is valid and points to a
// supported image file, a directory of images, or an HTTP(S) URL.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: image path cannot be empty", ErrUnreadableSource)
	}

	// URL validation happens at fetch time to avoid double-fetching.
	if isURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: image file or directory not found: %s", ErrUnreadableSource, path)
		}
		return fmt.Errorf("%w: failed to access image path: %v", ErrUnreadableSource, err)
	}

	// If it's a directory, just verify it exists (scanning happens later).
	if info.IsDir() {
		return nil
	}

	// Attempt to decode the image config to verify it's a supported format.
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("%w: failed to open image file: %v", ErrUnreadableSource, err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("%w: unsupported or invalid image format: %v", ErrUnreadableSource, err)
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages scans a directory and returns all valid image files.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read directory: %v", ErrUnreadableSource, err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			// Skip entries we can't stat (broken symlinks, permission issues).
			continue
		}

		if info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("%w: no supported image files found in directory: %s", ErrUnreadableSource, dirPath)
	}

	return imageFiles, nil
}

// GetImageDimensions returns the width and height of an image without fully loading it.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to open image: %v", ErrUnreadableSource, err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to decode image config: %v", ErrUnreadableSource, err)
	}

	return config.Width, config.Height, nil
}

// SelectRandomImage selects a random image from a list of image paths.
// Uses crypto/rand for cryptographically secure randomness.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	maxIndex := big.NewInt(int64(len(imagePaths)))
	randomIndex, err := rand.Int(rand.Reader, maxIndex)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}

	return imagePaths[randomIndex.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file, a directory
// or a URL. Directories are scanned for images and a random one is
// selected; files and URLs are returned as-is.
func ResolveImagePath(path string) (string, error) {
	if isURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to access path: %v", ErrUnreadableSource, err)
	}

	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}

	return SelectRandomImage(imageFiles)
}
