package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"leaselens/internal/pipeline"
	"leaselens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract facts from every PDF in a directory in parallel",
	Long: `Batch processes a directory of lease PDFs concurrently and writes
one facts JSON file per input document.

Example:
  leaselens batch ./leases
  leaselens batch ./leases --concurrency 8 --output-dir ./facts
  leaselens batch ./leases --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./leaselens-facts", "output directory for facts JSON")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM fallback for unresolved fields")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	fmt.Fprintf(os.Stderr, "Input dir:  %s\n", dir)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n", outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "LLM:        %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	engine, err := pipeline.NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	processor := worker.NewBatchProcessor(engine, concurrency)
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process directory: %w", err)
	}

	succeeded := 0
	failed := 0
	for _, result := range results {
		name := factsFilename(result.Path)
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
		} else {
			succeeded++
		}

		// Decode failures still get a facts file: all fields null plus
		// the decode_failed marker.
		if err := writeFacts(result.Facts, filepath.Join(outputDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, err)
			continue
		}
		if verbose && result.Error == nil {
			fmt.Fprintf(os.Stderr, "ok   %s\n", result.Path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d\n", len(results), succeeded, failed)
	return nil
}

// factsFilename maps lease.pdf → lease.json
func factsFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".json"
}
