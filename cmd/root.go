package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-jffs2extract/internal/config"
	"github.com/deploymenttheory/go-jffs2extract/internal/extractor"
)

const defaultLZMADictCap = 8 * 1024

var rootCmd = &cobra.Command{
	Use:   "jffs2extract <filesystem>",
	Short: "Offline JFFS2 image extractor",
	Long: `jffs2extract reads a raw JFFS2 image and writes every file, directory,
symlink and device node it contains to a destination directory, without
mounting the image or needing kernel JFFS2/MTD support.

It scans the image for node headers in both byte orders, so it does not
need to be told which endianness produced the image, and recovers one
destination subdirectory per logical filesystem it finds.`,
	Version: "0.1.0-dev",
	Args:    cobra.ExactArgs(1),
	RunE:    runExtract,
}

func init() {
	rootCmd.Flags().StringP("dest", "d", "jffs2-root", "destination directory to extract into")
	rootCmd.Flags().BoolP("force", "f", false, "overwrite a non-empty destination directory")
	rootCmd.Flags().CountP("verbose", "v", "increase verbosity (stack for more detail)")
}

// Execute runs the root command, exiting non-zero on a USAGE-class
// failure (bad arguments, unreadable input, destination exists without
// --force). A partially successful extraction still exits 0; per-node
// failures are logged, not fatal.
func Execute() {
	log.SetOutput(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	opts := extractor.Options{
		Source:      args[0],
		Dest:        cfg.Dest,
		Force:       cfg.Force,
		Verbose:     cfg.Verbose,
		LZMADictCap: defaultLZMADictCap,
	}

	summary, err := extractor.Run(opts)
	if err != nil {
		cobra.CheckErr(err)
		return err
	}

	for _, fs := range summary.Filesystems {
		fmt.Printf("%s (%s): %d written, %d skipped\n", fs.Name, fs.ID, fs.Result.Created, fs.Result.Skipped)
	}
	if len(summary.Filesystems) == 0 {
		fmt.Println("no JFFS2 filesystems found")
	}

	return nil
}
