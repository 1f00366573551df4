// Imagepalette - dominant colour extraction for images.
//
// Imagepalette quantizes an image's colour space with an adaptive
// octree and reports the dominant colours with their pixel counts.
package main

import (
	"os"

	"github.com/imagepalette/imagepalette/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
