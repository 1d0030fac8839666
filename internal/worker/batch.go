package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"leaselens/internal/model"
)

// Extractor is the pipeline surface the batch processor needs
type Extractor interface {
	ExtractFile(ctx context.Context, path string) *model.LeaseFacts
}

// ExtractJob extracts lease facts from one PDF
type ExtractJob struct {
	Path      string
	Extractor Extractor
}

// Execute runs the extraction. Extraction itself is total; the result
// error is set only when the document could not be decoded.
func (j *ExtractJob) Execute(ctx context.Context) Result {
	facts := j.Extractor.ExtractFile(ctx, j.Path)

	res := &ExtractResult{Path: j.Path, Facts: facts}
	if facts.DecodeFailed {
		res.Error = fmt.Errorf("decode %s: no extractable text", j.Path)
	}
	return res
}

// ExtractResult is the outcome of extracting one PDF
type ExtractResult struct {
	Path  string
	Facts *model.LeaseFacts
	Error error
}

// GetError returns the decode error, if any
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts facts from many PDFs concurrently
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(extractor Extractor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// ProcessPaths extracts facts from the given PDF paths concurrently.
// Results come back in completion order, not input order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ExtractJob{Path: path, Extractor: b.extractor})
	}

	results := pool.Wait()

	out := make([]*ExtractResult, 0, len(results))
	for _, result := range results {
		out = append(out, result.(*ExtractResult))
	}
	return out
}

// ProcessDir extracts facts from every PDF in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ExtractResult, error) {
	paths, err := ListPDFs(dir)
	if err != nil {
		return nil, fmt.Errorf("list PDFs: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ListPDFs returns the .pdf files directly inside dir, sorted by name
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
