package llm

// TypeSpecificFields returns the target field schema for a document category.
// Unknown categories get an empty schema; keeping this a lookup (rather than
// more hard-coded cases) leaves the category set a configuration concern.
func TypeSpecificFields(category string) map[string]any {
	fieldMaps := map[string]map[string]any{
		"Invoice": {
			"invoice_number": "",
			"due_date":       "",
			"total_amount":   "",
			"vendor":         "",
			"customer":       "",
		},
		"Resume": {
			"name":             "",
			"email":            "",
			"phone":            "",
			"experience_years": "",
			"skills":           []string{},
			"education":        "",
		},
		"Contract": {
			"parties":         []string{},
			"effective_date":  "",
			"expiration_date": "",
			"contract_value":  "",
			"terms":           "",
		},
		"Report": {
			"title":           "",
			"author":          "",
			"date":            "",
			"key_findings":    []string{},
			"recommendations": []string{},
		},
	}

	if fields, ok := fieldMaps[category]; ok {
		return fields
	}
	return map[string]any{}
}

// BuildCategoryJSONSchema returns the JSON-Schema (draft 2020-12 subset) a
// categorization response must satisfy. Category is constrained to the
// provided taxonomy when one is given.
func BuildCategoryJSONSchema(allowedCategories []string) map[string]any {
	catProp := map[string]any{"type": "string", "minLength": 1}
	if len(allowedCategories) > 0 {
		enum := make([]any, len(allowedCategories))
		for i, c := range allowedCategories {
			enum[i] = c
		}
		catProp = map[string]any{"type": "string", "enum": enum}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category":    catProp,
			"confidence":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"subcategory": map[string]any{"type": "string"},
			"reasoning":   map[string]any{"type": "string"},
		},
		"required":             []any{"category", "confidence"},
		"additionalProperties": true,
	}
}

// BuildAnalysisJSONSchema returns the shape a general-analysis response must
// satisfy. Entity lists are optional; the decoder backfills empty containers.
func BuildAnalysisJSONSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":    map[string]any{"type": "string"},
			"category":   map[string]any{"type": "string"},
			"keyTopics":  stringList,
			"sentiment":  map[string]any{"type": "string", "enum": []any{"positive", "negative", "neutral"}},
			"complexity": map[string]any{"type": "string", "enum": []any{"low", "medium", "high"}},
			"extractedData": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"names":         stringList,
					"organizations": stringList,
					"dates":         stringList,
					"amounts":       stringList,
					"locations":     stringList,
				},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required":             []any{"summary", "sentiment", "complexity", "confidence"},
		"additionalProperties": true,
	}
}
