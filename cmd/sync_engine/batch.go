package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate connection profiles for every SwissData file in a directory",
	Long: `Run the sync engine on every *.json file in --in-dir and write <name>.profile.json
files to --out-dir. Files are processed concurrently. Read and write failures stop the
batch; files that are not valid SwissData JSON are reported and skipped.`,
	RunE: runBatchCmd,
}

var (
	batchInputDir    string
	batchOutputDir   string
	batchConcurrency int
	batchStrict      bool
)

func init() {
	batchCmd.Flags().StringVar(&batchInputDir, "in-dir", "", "Directory of SwissData JSON files (required)")
	batchCmd.Flags().StringVar(&batchOutputDir, "out-dir", "", "Directory for generated profiles (required)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "Number of files processed at once")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "Reject input that fails schema validation")

	if err := batchCmd.MarkFlagRequired("in-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark in-dir flag as required: %v", err))
	}
	if err := batchCmd.MarkFlagRequired("out-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark out-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

// batchResult summarizes a batch run.
type batchResult struct {
	Written int
	Skipped map[string]error // input file name -> decode or validation error
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	result, err := runBatch(cmd.Context(), batchInputDir, batchOutputDir, batchConcurrency, batchStrict)
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Wrote %d profiles to %s\n", result.Written, batchOutputDir)
	if len(result.Skipped) == 0 {
		return nil
	}

	names := make([]string, 0, len(result.Skipped))
	for name := range result.Skipped {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "  skipped %s: %v\n", name, result.Skipped[name])
	}
	return fmt.Errorf("%d of %d files skipped", len(result.Skipped), len(result.Skipped)+result.Written)
}

// profileFileName maps an input file name to its output name.
func profileFileName(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".profile.json"
}

// runBatch processes every *.json file in inDir with at most concurrency
// workers. The first I/O error cancels the remaining work.
func runBatch(ctx context.Context, inDir, outDir string, concurrency int, strict bool) (*batchResult, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &batchResult{Skipped: make(map[string]error)}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasSuffix(name, ".profile.json") {
			continue
		}

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(filepath.Join(inDir, name))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}

			var buf bytes.Buffer
			if err := writeProfile(&buf, content, formatJSON, strict); err != nil {
				mu.Lock()
				result.Skipped[name] = err
				mu.Unlock()
				return nil
			}

			if err := writeFileAtomic(filepath.Join(outDir, profileFileName(name)), buf.Bytes()); err != nil {
				return err
			}

			mu.Lock()
			result.Written++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
