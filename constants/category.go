package constants

import "strings"

type Category string

const (
	Invoice            Category = "Invoice"
	Contract           Category = "Contract"
	Resume             Category = "Resume"
	Report             Category = "Report"
	Letter             Category = "Letter"
	LegalDocument      Category = "Legal Document"
	FinancialStatement Category = "Financial Statement"
	Other              Category = "Other"
)

// CategoryError marks documents that failed before categorization could run.
const CategoryError = "Error"

var allCategories = []Category{
	Invoice,
	Contract,
	Resume,
	Report,
	Letter,
	LegalDocument,
	FinancialStatement,
	Other,
}

// Categories returns the default closed category set as strings.
func Categories() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps a free-form label onto the known category set.
// Returns Other and false when the label is unrecognized.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Category{
		"bill":       Invoice,
		"receipt":    Invoice,
		"agreement":  Contract,
		"cv":         Resume,
		"curriculum": Resume,
		"memo":       Letter,
		"legal":      LegalDocument,
		"financial":  FinancialStatement,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
