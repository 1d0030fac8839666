package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"leaselens/internal/model"
	"leaselens/internal/pipeline"
)

var (
	outJSON        string
	extractTimeout time.Duration
	noCache        bool
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <lease.pdf>",
	Short: "Extract lease facts from a single PDF",
	Long: `Extract decodes a lease PDF and pulls out the standard fact set.
Every field is reported, null when nothing could be resolved. Dates are
formatted as DD-MM-YYYY.

Example:
  leaselens extract lease.pdf
  leaselens extract lease.pdf --json facts.json
  leaselens extract lease.pdf --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&outJSON, "json", "", "write facts JSON to this path instead of stdout")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "overall extraction timeout")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")

	extractCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM fallback for unresolved fields")
	extractCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	extractCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "LLM fallback: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	engine, err := pipeline.NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	facts := engine.ExtractFile(ctx, path)

	if verbose {
		resolved := len(model.AllFieldKinds()) - len(facts.Missing())
		fmt.Fprintf(os.Stderr, "Resolved %d/%d fields\n", resolved, len(model.AllFieldKinds()))
		if facts.DecodeFailed {
			fmt.Fprintf(os.Stderr, "Warning: document could not be decoded\n")
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeFacts(facts, outJSON)
}

// buildConfig merges defaults with CLI flags and provider env vars
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// writeFacts renders the flat facts object to a file or stdout
func writeFacts(facts *model.LeaseFacts, path string) error {
	out := make(map[string]any, len(facts.Fields)+1)
	for name, value := range facts.Flat() {
		out[name] = value
	}
	if facts.DecodeFailed {
		out["decode_failed"] = true
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal facts: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	return nil
}
