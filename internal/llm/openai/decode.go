package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/manojvishalkijo/xevedoc/internal/entity"
	"github.com/manojvishalkijo/xevedoc/internal/llm"
)

// decodeExtractedData turns a model reply into a normalized ExtractedData.
// Key-values arrive as arbitrary JSON values and are coerced to strings;
// entity confidences are clamped into [0,1].
func decodeExtractedData(content string) (entity.ExtractedData, error) {
	raw, err := llm.ExtractJSONObject(content)
	if err != nil {
		return entity.ExtractedData{}, err
	}

	var payload struct {
		Entities  []entity.Entity      `json:"entities"`
		KeyValues map[string]any       `json:"keyValues"`
		Dates     []string             `json:"dates"`
		Amounts   []entity.MoneyAmount `json:"amounts"`
		Contacts  []entity.Contact     `json:"contacts"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entity.ExtractedData{}, fmt.Errorf("unmarshal extracted data: %w", err)
	}

	out := entity.ExtractedData{
		Entities: payload.Entities,
		Dates:    payload.Dates,
		Amounts:  payload.Amounts,
		Contacts: payload.Contacts,
	}
	out.Normalize()
	for i := range out.Entities {
		out.Entities[i].Confidence = llm.Clamp01(out.Entities[i].Confidence)
	}
	for k, v := range payload.KeyValues {
		if s := stringify(v); s != "" {
			out.KeyValues[k] = s
		}
	}
	return out, nil
}

// decodeAnalysis validates and flattens the nested analysis reply.
func decodeAnalysis(content string) (entity.DocumentAnalysis, error) {
	raw, err := llm.ExtractJSONObject(content)
	if err != nil {
		return entity.DocumentAnalysis{}, err
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildAnalysisJSONSchema(), raw); err != nil {
		return entity.DocumentAnalysis{}, err
	}

	var payload struct {
		Summary       string   `json:"summary"`
		Category      string   `json:"category"`
		KeyTopics     []string `json:"keyTopics"`
		Sentiment     string   `json:"sentiment"`
		Complexity    string   `json:"complexity"`
		ExtractedData struct {
			Names         []string `json:"names"`
			Organizations []string `json:"organizations"`
			Dates         []string `json:"dates"`
			Amounts       []string `json:"amounts"`
			Locations     []string `json:"locations"`
		} `json:"extractedData"`
		Confidence float32 `json:"confidence"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entity.DocumentAnalysis{}, fmt.Errorf("unmarshal analysis: %w", err)
	}

	out := entity.DocumentAnalysis{
		Summary:       payload.Summary,
		Category:      payload.Category,
		KeyTopics:     orEmpty(payload.KeyTopics),
		Sentiment:     payload.Sentiment,
		Complexity:    payload.Complexity,
		Names:         orEmpty(payload.ExtractedData.Names),
		Organizations: orEmpty(payload.ExtractedData.Organizations),
		Dates:         orEmpty(payload.ExtractedData.Dates),
		Amounts:       orEmpty(payload.ExtractedData.Amounts),
		Locations:     orEmpty(payload.ExtractedData.Locations),
		Confidence:    llm.Clamp01(payload.Confidence),
	}
	return out, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// stringify renders a key-value payload value for export. Lists join with
// commas; null and empty values drop out.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		var parts []string
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
