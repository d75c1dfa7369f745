package llm

import (
	"context"

	"github.com/manojvishalkijo/xevedoc/internal/entity"
)

// CategoryResult is the normalized shape we want back from categorization.
type CategoryResult struct {
	Category    string  `json:"category"`
	Confidence  float32 `json:"confidence"` // 0..1
	Subcategory string  `json:"subcategory,omitempty"`
	Reasoning   string  `json:"reasoning,omitempty"`
}

// Analyzer is the capability set the pipeline depends on. Implementations are
// backend adapters: they report failure through the error return and leave
// fallback construction to the caller (see fallback.go), so the
// absorb-or-propagate policy stays visible at the call site.
type Analyzer interface {
	// Categorize picks a label from a closed category set.
	Categorize(ctx context.Context, text string) (CategoryResult, error)

	// Summarize produces a narrative summary of the document.
	Summarize(ctx context.Context, text string) (string, error)

	// ExtractStructured pulls category-specific fields, entities, dates,
	// amounts and contacts out of the text.
	ExtractStructured(ctx context.Context, text, categoryHint string) (entity.ExtractedData, error)

	// Analyze runs the general-purpose analysis (topics, sentiment,
	// complexity, named entities).
	Analyze(ctx context.Context, text, typeHint string) (entity.DocumentAnalysis, error)
}

// Prompt bounds, in characters, applied to the text excerpt each capability
// sends to the backend. Truncation is silent.
const (
	CategorizeBound = 2000
	ExtractBound    = 2500
	AnalyzeBound    = 3000
)

// BoundText truncates text to at most n characters.
func BoundText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
