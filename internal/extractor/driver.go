// Package extractor drives one end-to-end run: read an image, scan it
// under both byte orders, and materialize every logical filesystem found
// into its own numbered directory — the corpus's container-to-export
// pipeline, re-aimed at JFFS2.
package extractor

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/deploymenttheory/go-jffs2extract/internal/decompress"
	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
	"github.com/deploymenttheory/go-jffs2extract/internal/materialize"
	"github.com/deploymenttheory/go-jffs2extract/internal/scanner"
)

// Options configures one extraction run.
type Options struct {
	Source      string
	Dest        string
	Force       bool
	Verbose     int
	LZMADictCap int
}

// Summary reports what the run produced, one entry per surviving logical
// filesystem.
type Summary struct {
	Filesystems []FilesystemResult
}

// FilesystemResult names the directory a logical filesystem was written
// to alongside the scanner-assigned identity it carried, plus the tally
// of what its materialization pass did.
type FilesystemResult struct {
	Name   string
	ID     string
	Result *materialize.Result
}

// Run reads opts.Source once, scans it both big- and little-endian,
// discards any filesystem with no directory entries, and materializes
// the rest under opts.Dest/fs_N.
func Run(opts Options) (*Summary, error) {
	data, err := os.ReadFile(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("extractor: reading %q: %w", opts.Source, err)
	}

	if err := prepareDest(opts.Dest, opts.Force); err != nil {
		return nil, err
	}

	registry := decompress.NewRegistry(opts.LZMADictCap)
	decompressor := func(compr uint8, compressed []byte, dsize uint32) ([]byte, error) {
		return registry.Decompress(compr, compressed, dsize)
	}

	var found []*jffs2.LogicalFS
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		fss := scanner.Scan(data, scanner.Options{
			Order:      order,
			Decompress: decompressor,
			Verbose:    opts.Verbose > 1,
		})
		for _, fs := range fss {
			if !fs.Empty() {
				found = append(found, fs)
			}
		}
	}

	summary := &Summary{}
	for i, fs := range found {
		name := fmt.Sprintf("fs_%d", i+1)
		fsDest := filepath.Join(opts.Dest, name)
		if err := os.MkdirAll(fsDest, 0755); err != nil {
			return nil, fmt.Errorf("extractor: creating %q: %w", fsDest, err)
		}

		if opts.Verbose > 0 {
			log.Printf("extractor: %s (%s): %d dirents, %d inodes, big-endian=%v",
				name, fs.ID, len(fs.Dirents), len(fs.Inodes), fs.BigEndian)
		}

		result := materialize.Materialize(fs, fsDest, opts.Verbose > 0)
		summary.Filesystems = append(summary.Filesystems, FilesystemResult{
			Name:   name,
			ID:     fs.ID.String(),
			Result: result,
		})
	}

	return summary, nil
}

func prepareDest(dest string, force bool) error {
	info, err := os.Stat(dest)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("extractor: destination %q exists and is not a directory", dest)
		}
		entries, err := os.ReadDir(dest)
		if err != nil {
			return fmt.Errorf("extractor: reading %q: %w", dest, err)
		}
		if len(entries) > 0 && !force {
			return fmt.Errorf("extractor: destination %q already exists and is not empty (use --force)", dest)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("extractor: checking destination %q: %w", dest, err)
	}
	return os.MkdirAll(dest, 0755)
}
