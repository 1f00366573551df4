// Package imagecache provides utilities for downloading and caching remote images.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imagepalette/imagepalette/internal/security"
	httputil "github.com/imagepalette/imagepalette/internal/util/http"
)

// Options configures image caching behavior.
type Options struct {
	// CacheDir is the directory where images will be cached.
	// If empty, defaults to the user cache dir under imagepalette/images.
	CacheDir string

	// Refresh forces a re-download even when a cached copy exists.
	Refresh bool
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "imagepalette", "images"), nil
	}
	return filepath.Join(cacheDir, "imagepalette", "images"), nil
}

// cacheFilename creates a deterministic filename from a URL: the
// SHA256 of the URL plus the URL's original extension.
func cacheFilename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	// Strip query parameters from the extension.
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}

	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// Fetch downloads a remote image into the cache directory and returns
// the local path, reusing an existing cached copy unless Refresh is
// set. The URL must pass HTTPS validation.
func Fetch(ctx context.Context, url string, opts Options) (string, error) {
	if err := security.ValidateHTTPURL(url); err != nil {
		return "", fmt.Errorf("refusing to fetch image: %w", err)
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, cacheFilename(url))

	if !opts.Refresh {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.WriteFile(cachedPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return cachedPath, nil
}
