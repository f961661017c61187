package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// Ensure MetadataService implements the interface.
var _ driven.MetadataGenerator = (*MetadataService)(nil)

// Text bounds for metadata generation.
const (
	// maxExcerptChars bounds the text sent to the model, to respect
	// context limits.
	maxExcerptChars = 8000

	// maxFallbackTitleChars bounds the heuristic title length.
	maxFallbackTitleChars = 180

	// maxFallbackAbstractChars bounds the heuristic abstract length.
	maxFallbackAbstractChars = 1200
)

// extractionPrompt asks the model for strict JSON with the five semantic
// fields. The response must contain nothing but the JSON object.
const extractionPrompt = `You are a bibliographic metadata extractor for academic papers.
Read the following paper excerpt and respond with ONLY a JSON object, no
prose and no code fences, with exactly these keys:
  "title": string
  "authors": array of strings
  "keywords": array of strings
  "abstract": string
  "conclusion": string
Use empty strings or empty arrays for anything the excerpt does not contain.

Excerpt:
%s`

// MetadataService derives a DocumentMetadata record from extracted text.
// The primary path asks the language model for strict JSON; any failure
// there degrades to a deterministic heuristic, so Generate never fails.
type MetadataService struct {
	llm driven.LLMService
}

// NewMetadataService creates a metadata service.
// llm may be nil, in which case only the fallback path is used.
func NewMetadataService(llm driven.LLMService) *MetadataService {
	return &MetadataService{llm: llm}
}

// modelRecord is the strict JSON shape requested from the model.
type modelRecord struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Keywords   []string `json:"keywords"`
	Abstract   string   `json:"abstract"`
	Conclusion string   `json:"conclusion"`
}

// Generate produces the metadata record for one document.
func (s *MetadataService) Generate(ctx context.Context, text, fileName string) domain.DocumentMetadata {
	if s.llm != nil {
		meta, err := s.generateWithModel(ctx, text, fileName)
		if err == nil {
			return meta
		}
		logger.Warn("model metadata failed for %s, using fallback: %v", fileName, err)
	}
	return s.generateFallback(text, fileName)
}

// generateWithModel runs the primary structured-extraction path.
func (s *MetadataService) generateWithModel(ctx context.Context, text, fileName string) (domain.DocumentMetadata, error) {
	excerpt := truncate(text, maxExcerptChars)
	prompt := fmt.Sprintf(extractionPrompt, excerpt)

	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.1,
	})
	if err != nil {
		return domain.DocumentMetadata{}, fmt.Errorf("generate: %w", err)
	}

	var rec modelRecord
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &rec); err != nil {
		return domain.DocumentMetadata{}, fmt.Errorf("parse model response: %w", err)
	}

	meta := domain.NewDocumentMetadata(fileName)
	meta.Title = strings.TrimSpace(rec.Title)
	meta.Abstract = strings.TrimSpace(rec.Abstract)
	meta.Conclusion = strings.TrimSpace(rec.Conclusion)
	if rec.Authors != nil {
		meta.Authors = rec.Authors
	}
	if rec.Keywords != nil {
		meta.Keywords = rec.Keywords
	}
	if meta.Title == "" {
		meta.Title = fallbackTitle(text, fileName)
	}
	return meta, nil
}

// generateFallback is the deterministic path used when no model credential
// is configured or the primary path fails.
func (s *MetadataService) generateFallback(text, fileName string) domain.DocumentMetadata {
	meta := domain.NewDocumentMetadata(fileName)
	meta.Title = fallbackTitle(text, fileName)
	meta.Abstract = truncate(text, maxFallbackAbstractChars)
	return meta
}

// fallbackTitle returns the first non-blank line of the text, or the file
// name with its extension stripped when the text has none, truncated to the
// bounded length.
func fallbackTitle(text, fileName string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return truncate(line, maxFallbackTitleChars)
		}
	}
	title := fileName
	if idx := strings.LastIndex(title, "."); idx > 0 {
		title = title[:idx]
	}
	return truncate(title, maxFallbackTitleChars)
}

// truncate clips s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// stripCodeFences removes a surrounding markdown code fence, which some
// models add despite the prompt.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
