// Package cli provides the command-line interface for imagepalette.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/imagepalette/imagepalette/internal/version"
)

// logger is the shared CLI logger. It stays at Warn unless --verbose
// raises it to Debug in the root command's PersistentPreRun.
var logger = hclog.New(&hclog.LoggerOptions{
	Name:  "imagepalette",
	Level: hclog.Warn,
})

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imagepalette",
		Short: "Extract dominant colours from an image",
		Long: `Imagepalette extracts the dominant colours of an image using
adaptive octree quantization and reports each colour with the number
of pixels it represents.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(hclog.Debug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd builds the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}
