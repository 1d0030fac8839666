package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"leaselens/internal/pipeline"
	"leaselens/internal/server"
)

var (
	serveAddr      string
	uploadDir      string
	maxUploadBytes int64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction server",
	Long: `Serve starts an HTTP server exposing:
  GET  /health               liveness probe
  POST /upload-pdf           store a PDF upload, return metadata
  POST /extract-lease-facts  extract facts from an uploaded lease PDF

Example:
  leaselens serve
  leaselens serve --addr :9090 --llm openai`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&uploadDir, "upload-dir", "", "directory for stored uploads (default: ~/Downloads/pdf_uploads)")
	serveCmd.Flags().Int64Var(&maxUploadBytes, "max-upload-bytes", 25<<20, "maximum accepted upload size")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")

	serveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM fallback for unresolved fields")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Server.Addr = serveAddr
	cfg.Server.UploadDir = uploadDir
	cfg.Server.MaxUploadBytes = maxUploadBytes

	engine, err := pipeline.NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(engine, cfg.Server)
	return srv.ListenAndServe(ctx)
}
