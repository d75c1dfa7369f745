package llm

import (
	"github.com/manojvishalkijo/xevedoc/internal/entity"
)

// Fallback values substituted when an enrichment capability fails. These are
// pure constructors invoked at the call site on error, never inside the
// backend adapter, so the policy can be tested on its own.

// DefaultCategory is the safe categorization result: categorization is an
// enrichment, so callers always receive a usable value.
func DefaultCategory() CategoryResult {
	return CategoryResult{
		Category:    "Other",
		Confidence:  0.5,
		Subcategory: "Unknown",
		Reasoning:   "Failed to categorize automatically",
	}
}

// DefaultAnalysis builds a degraded analysis record from a text excerpt:
// neutral sentiment, medium complexity, confidence 0.5, empty entity lists.
func DefaultAnalysis(text string) entity.DocumentAnalysis {
	const excerptLen = 200
	excerpt := text
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return entity.DocumentAnalysis{
		Summary:       excerpt,
		Category:      "Other",
		KeyTopics:     []string{},
		Sentiment:     "neutral",
		Complexity:    "medium",
		Names:         []string{},
		Organizations: []string{},
		Dates:         []string{},
		Amounts:       []string{},
		Locations:     []string{},
		Confidence:    0.5,
	}
}

// EmptyExtractedData is the zero-value structured payload with all containers
// present.
func EmptyExtractedData() entity.ExtractedData {
	return entity.NewExtractedData()
}

// Clamp01 forces a confidence into [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
