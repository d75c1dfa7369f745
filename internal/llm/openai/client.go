package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manojvishalkijo/xevedoc/internal/common"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
	"github.com/manojvishalkijo/xevedoc/internal/llm"
)

// Client implements llm.Analyzer against an OpenAI-compatible chat/completions
// endpoint. It is stateless per call; a single instance is safe for
// concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

var _ llm.Analyzer = (*Client)(nil)

// Categorize asks for a label from the configured taxonomy. Any backend or
// parse failure is returned as an error; the caller substitutes
// llm.DefaultCategory.
func (c *Client) Categorize(ctx context.Context, text string) (llm.CategoryResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	user := fmt.Sprintf(`Categorize this document and provide a confidence score (0-1). Available categories: %s.

Document text:
%s

Respond in JSON format:
{
  "category": "category_name",
  "confidence": 0.95,
  "subcategory": "optional_subcategory",
  "reasoning": "brief explanation"
}`, strings.Join(c.cfg.Categories, ", "), llm.BoundText(text, llm.CategorizeBound))

	content, err := c.chat(ctx, rid, chatRequest{
		System:      "You are a document classifier. Categorize documents into types and extract confidence scores. Respond in JSON format.",
		User:        user,
		Temperature: 0.2,
		MaxTokens:   300,
		JSONMode:    true,
	})
	if err != nil {
		c.log.Error("llm.categorize.backend_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return llm.CategoryResult{}, err
	}

	raw, err := llm.ExtractJSONObject(content)
	if err != nil {
		c.log.Error("llm.categorize.malformed", "req_id", rid, "error", err)
		return llm.CategoryResult{}, err
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildCategoryJSONSchema(c.cfg.Categories), raw); err != nil {
		c.log.Error("llm.categorize.schema_validation_failed", "req_id", rid, "error", err)
		return llm.CategoryResult{}, err
	}

	var out llm.CategoryResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return llm.CategoryResult{}, fmt.Errorf("unmarshal category: %w", err)
	}
	out.Confidence = llm.Clamp01(out.Confidence)

	c.log.Info("llm.categorize.ok",
		"req_id", rid,
		"category", out.Category,
		"confidence", out.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Summarize produces the narrative summary. A backend failure here is fatal
// to the document, so it surfaces as common.ErrAnalysisFailed.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	content, err := c.chat(ctx, rid, chatRequest{
		System:      "You are a professional document summarizer. Create concise, informative summaries.",
		User:        "Please provide a comprehensive summary of the following document:\n\n" + llm.BoundText(text, llm.AnalyzeBound),
		Temperature: c.cfg.Temperature,
		MaxTokens:   500,
	})
	if err != nil {
		c.log.Error("llm.summarize.backend_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: %v", common.ErrAnalysisFailed, err)
	}
	if strings.TrimSpace(content) == "" {
		return "Unable to generate summary", nil
	}

	c.log.Info("llm.summarize.ok", "req_id", rid, "chars", len(content),
		"elapsed_ms", time.Since(start).Milliseconds())
	return content, nil
}

// ExtractStructured pulls category-specific fields. Errors surface to the
// caller, which substitutes llm.EmptyExtractedData.
func (c *Client) ExtractStructured(ctx context.Context, text, categoryHint string) (entity.ExtractedData, error) {
	rid := uuid.New().String()
	start := time.Now()

	fields, _ := json.Marshal(llm.TypeSpecificFields(categoryHint))
	user := fmt.Sprintf(`Extract structured information from this %s document:

%s

Extract the following information in JSON format:
{
  "entities": [
    {"type": "PERSON", "value": "John Doe", "confidence": 0.95},
    {"type": "ORGANIZATION", "value": "Company Name", "confidence": 0.90}
  ],
  "keyValues": %s,
  "dates": ["2024-01-15", "2024-02-20"],
  "amounts": [{"value": 1500.00, "currency": "USD", "context": "invoice total"}],
  "contacts": [{"email": "email@example.com", "phone": "+1234567890"}]
}`, categoryHint, llm.BoundText(text, llm.ExtractBound), fields)

	content, err := c.chat(ctx, rid, chatRequest{
		System:      "You are an expert data extractor. Extract structured information from documents in JSON format.",
		User:        user,
		Temperature: 0.1,
		MaxTokens:   1500,
		JSONMode:    true,
	})
	if err != nil {
		c.log.Error("llm.extract.backend_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.ExtractedData{}, err
	}

	out, err := decodeExtractedData(content)
	if err != nil {
		c.log.Error("llm.extract.malformed", "req_id", rid, "error", err)
		return entity.ExtractedData{}, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"entities", len(out.Entities),
		"key_values", len(out.KeyValues),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Analyze runs the general-purpose analysis. Errors surface to the caller,
// which substitutes llm.DefaultAnalysis.
func (c *Client) Analyze(ctx context.Context, text, typeHint string) (entity.DocumentAnalysis, error) {
	rid := uuid.New().String()
	start := time.Now()

	if typeHint == "" {
		typeHint = "Unknown"
	}
	user := fmt.Sprintf(`Analyze the following document and provide a comprehensive analysis in JSON format:

Document Type: %s
Document Text:
%s

Please provide analysis in this JSON structure:
{
  "summary": "Brief summary of the document",
  "category": "Document category",
  "keyTopics": ["topic1", "topic2", "topic3"],
  "sentiment": "positive/negative/neutral",
  "complexity": "low/medium/high",
  "extractedData": {
    "names": ["person names found"],
    "organizations": ["company names found"],
    "dates": ["dates found"],
    "amounts": ["monetary amounts found"],
    "locations": ["locations found"]
  },
  "confidence": 0.95
}`, typeHint, llm.BoundText(text, llm.AnalyzeBound))

	content, err := c.chat(ctx, rid, chatRequest{
		System:      "You are an expert document analyzer. Analyze documents and extract structured information in JSON format.",
		User:        user,
		Temperature: c.cfg.Temperature,
		MaxTokens:   2000,
		JSONMode:    true,
	})
	if err != nil {
		c.log.Error("llm.analyze.backend_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.DocumentAnalysis{}, err
	}

	out, err := decodeAnalysis(content)
	if err != nil {
		c.log.Error("llm.analyze.malformed", "req_id", rid, "error", err)
		return entity.DocumentAnalysis{}, err
	}

	c.log.Info("llm.analyze.ok",
		"req_id", rid,
		"sentiment", out.Sentiment,
		"complexity", out.Complexity,
		"topics", len(out.KeyTopics),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

type chatRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

func (c *Client) chat(ctx context.Context, rid string, req chatRequest) (string, error) {
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
		"messages": []map[string]any{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
	}
	if req.JSONMode {
		body["response_format"] = map[string]any{"type": "json_object"}
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log.With("req_id", rid))
	if err != nil {
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}
