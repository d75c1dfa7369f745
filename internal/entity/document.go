package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/manojvishalkijo/xevedoc/constants"
)

// ProcessedDocument is the unit of work produced by the pipeline and consumed
// by export. It is read-only once handed downstream.
type ProcessedDocument struct {
	ID                 string              `json:"id"`
	FileName           string              `json:"file_name"`
	FilePath           string              `json:"file_path"`
	FileType           string              `json:"file_type"` // normalized lower-case extension
	FileSize           int64               `json:"file_size"` // bytes, best-effort; 0 if unreadable
	ProcessingMethod   string              `json:"processing_method"`
	ExtractedText      string              `json:"extracted_text"`
	Analysis           *DocumentAnalysis   `json:"analysis,omitempty"`
	Category           string              `json:"category"`
	CategoryConfidence float32             `json:"category_confidence"`
	Summary            string              `json:"summary"`
	ExtractedData      ExtractedData       `json:"extracted_data"`
	ProcessedAt        time.Time           `json:"processed_at"`
	Status             constants.DocStatus `json:"status"`
	Error              string              `json:"error,omitempty"`
}

// DocumentAnalysis is the general-purpose analysis result.
type DocumentAnalysis struct {
	Summary       string   `json:"summary"`
	Category      string   `json:"category"`
	KeyTopics     []string `json:"keyTopics"`
	Sentiment     string   `json:"sentiment"`  // positive | negative | neutral
	Complexity    string   `json:"complexity"` // low | medium | high
	Names         []string `json:"names"`
	Organizations []string `json:"organizations"`
	Dates         []string `json:"dates"`
	Amounts       []string `json:"amounts"`
	Locations     []string `json:"locations"`
	Confidence    float32  `json:"confidence"`
}

// Entity is a typed value recognized in the document text.
type Entity struct {
	Type       string  `json:"type"` // PERSON, ORGANIZATION, ...
	Value      string  `json:"value"`
	Confidence float32 `json:"confidence"`
}

// MoneyAmount is a monetary value with its surrounding context.
type MoneyAmount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	Context  string  `json:"context"`
}

// Contact is an email/phone pair found in the document.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExtractedData is the category-specific structured payload. Containers are
// always non-nil so export never branches on absence.
type ExtractedData struct {
	Entities  []Entity          `json:"entities"`
	KeyValues map[string]string `json:"keyValues"`
	Dates     []string          `json:"dates"`
	Amounts   []MoneyAmount     `json:"amounts"`
	Contacts  []Contact         `json:"contacts"`
}

// NewExtractedData returns an ExtractedData with every container allocated.
func NewExtractedData() ExtractedData {
	return ExtractedData{
		Entities:  []Entity{},
		KeyValues: map[string]string{},
		Dates:     []string{},
		Amounts:   []MoneyAmount{},
		Contacts:  []Contact{},
	}
}

// Normalize allocates any nil container in place. Decoded payloads pass
// through here so the always-present invariant holds regardless of source.
func (d *ExtractedData) Normalize() {
	if d.Entities == nil {
		d.Entities = []Entity{}
	}
	if d.KeyValues == nil {
		d.KeyValues = map[string]string{}
	}
	if d.Dates == nil {
		d.Dates = []string{}
	}
	if d.Amounts == nil {
		d.Amounts = []MoneyAmount{}
	}
	if d.Contacts == nil {
		d.Contacts = []Contact{}
	}
}

// NewDocumentID generates the opaque identifier assigned at record creation.
func NewDocumentID() string {
	return uuid.New().String()
}
