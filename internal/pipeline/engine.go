// Package pipeline orchestrates lease fact extraction: decode, text
// normalization, pattern rules, and the optional LLM fallback, with
// result caching keyed on document content.
package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"leaselens/internal/cache"
	"leaselens/internal/extract"
	"leaselens/internal/llm"
	"leaselens/internal/model"
	"leaselens/internal/normalize"
	"leaselens/internal/pdftext"
)

// Engine runs the full extraction pipeline. It is total: any input,
// including garbage, yields a complete LeaseFacts with every field
// either resolved or absent.
type Engine struct {
	extractor *extract.PatternExtractor
	fallback  *llm.Fallback
	cache     cache.Cache
	config    *model.Config
}

// NewEngine creates an engine from configuration
func NewEngine(cfg *model.Config) (*Engine, error) {
	fallback, err := llm.NewFallback(llm.ConfigFromModel(cfg))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		extractor: extract.NewPatternExtractor(cfg.Extract.PositionalWindow),
		fallback:  fallback,
		config:    cfg,
	}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if base, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(base, "leaselens")
			}
		}
		if dir != "" {
			e.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	return e, nil
}

// NewEngineWithFallback wires an explicit fallback and no cache.
// Tests inject stub providers through this.
func NewEngineWithFallback(cfg *model.Config, fallback *llm.Fallback) *Engine {
	return &Engine{
		extractor: extract.NewPatternExtractor(cfg.Extract.PositionalWindow),
		fallback:  fallback,
		config:    cfg,
	}
}

// Fallback returns the engine's LLM fallback
func (e *Engine) Fallback() *llm.Fallback {
	return e.fallback
}

// ExtractFile decodes a PDF and extracts lease facts from it. A document
// that yields no text at all produces an all-absent result with the
// decode-failure flag set, never an error.
func (e *Engine) ExtractFile(ctx context.Context, path string) *model.LeaseFacts {
	pages, err := pdftext.DecodeFile(path)
	if err != nil {
		if e.config.Output.Verbose {
			log.Printf("decode %s: %v", path, err)
		}
		facts := model.NewLeaseFacts()
		facts.DecodeFailed = true
		return facts
	}
	return e.ExtractText(ctx, pages)
}

// ExtractBytes runs extraction on an in-memory PDF
func (e *Engine) ExtractBytes(ctx context.Context, data []byte) *model.LeaseFacts {
	pages, err := pdftext.Decode(data)
	if err != nil {
		facts := model.NewLeaseFacts()
		facts.DecodeFailed = true
		return facts
	}
	return e.ExtractText(ctx, pages)
}

// ExtractText extracts lease facts from decoded page text. Pattern
// results are authoritative; the fallback only ever fills fields the
// patterns left absent.
func (e *Engine) ExtractText(ctx context.Context, pages []string) *model.LeaseFacts {
	text := normalize.Text(pages)

	key := cache.DocumentKey(text)
	if facts, ok := e.cachedFacts(key); ok {
		return facts
	}

	facts := model.NewLeaseFacts()
	if text == "" {
		return facts
	}

	for kind, match := range e.extractor.Extract(text) {
		value, err := normalize.Field(kind, match.Candidate.RawText)
		if err != nil {
			// A match that fails canonicalization counts as no match
			continue
		}
		facts.Set(model.ExtractedField{
			Name:            kind,
			RawValue:        match.Candidate.RawText,
			NormalizedValue: value,
			Confidence:      match.Confidence,
			Source:          model.SourcePattern,
		})
	}

	if missing := facts.Missing(); len(missing) > 0 && e.fallback.IsEnabled() {
		values, err := e.fallback.Fill(ctx, text, missing)
		if err != nil && e.config.Output.Verbose {
			log.Printf("llm fallback: %v", err)
		}
		mergeFallback(facts, values)
	}

	e.storeFacts(key, facts)
	return facts
}

// cachedFacts loads a prior result for the document, if any
func (e *Engine) cachedFacts(key string) (*model.LeaseFacts, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, ok := e.cache.Get(key)
	if !ok {
		return nil, false
	}
	var facts model.LeaseFacts
	if err := json.Unmarshal(data, &facts); err != nil {
		_ = e.cache.Delete(key)
		return nil, false
	}
	return &facts, true
}

// storeFacts persists a result for later identical documents
func (e *Engine) storeFacts(key string, facts *model.LeaseFacts) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(facts)
	if err != nil {
		return
	}
	_ = e.cache.Set(key, data, 0)
}
