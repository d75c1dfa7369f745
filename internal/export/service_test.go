package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
	"github.com/manojvishalkijo/xevedoc/internal/export"
)

func sampleDocs() []*entity.ProcessedDocument {
	processedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	invoice := &entity.ProcessedDocument{
		ID:                 "doc-1",
		FileName:           "invoice.pdf",
		FilePath:           "/docs/invoice.pdf",
		FileType:           "pdf",
		FileSize:           4096,
		ProcessingMethod:   constants.MethodPDFParser,
		ExtractedText:      "ACME invoice #42 total $120",
		Category:           "Invoice",
		CategoryConfidence: 0.93,
		Summary:            "An invoice from ACME.",
		ExtractedData: entity.ExtractedData{
			Entities: []entity.Entity{
				{Type: "ORGANIZATION", Value: "ACME", Confidence: 0.9},
			},
			KeyValues: map[string]string{
				"invoice_number": "INV-42",
				"total_amount":   "$120",
				"empty_field":    "",
			},
			Dates:    []string{"2026-03-01"},
			Amounts:  []entity.MoneyAmount{{Value: 120, Currency: "USD", Context: "total"}},
			Contacts: []entity.Contact{},
		},
		ProcessedAt: processedAt,
		Status:      constants.StatusCompleted,
	}

	scan := &entity.ProcessedDocument{
		ID:                 "doc-2",
		FileName:           "scan.png",
		FilePath:           "/docs/scan.png",
		FileType:           "png",
		FileSize:           2048,
		ProcessingMethod:   constants.MethodOCR,
		ExtractedText:      "handwritten note about the meeting",
		Category:           "Letter",
		CategoryConfidence: 0.6,
		Summary:            "A short note.",
		ExtractedData:      entity.NewExtractedData(),
		ProcessedAt:        processedAt,
		Status:             constants.StatusCompleted,
	}

	broken := &entity.ProcessedDocument{
		ID:                 "doc-3",
		FileName:           "broken.docx",
		FilePath:           "/docs/broken.docx",
		FileType:           "docx",
		FileSize:           1024,
		ProcessingMethod:   constants.MethodFailed,
		Category:           constants.CategoryError,
		CategoryConfidence: 0,
		Summary:            "Failed to process: extraction failed",
		ExtractedData:      entity.NewExtractedData(),
		ProcessedAt:        processedAt,
		Status:             constants.StatusFailed,
		Error:              "extraction failed",
	}

	return []*entity.ProcessedDocument{invoice, scan, broken}
}

func TestToXLSX(t *testing.T) {
	svc := export.NewService(nil)

	data, err := svc.ToXLSX(sampleDocs())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Extracted Data", "Full Text"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per document")
	assert.Equal(t, "File Name", rows[0][0])
	assert.Equal(t, "invoice.pdf", rows[1][0])
	assert.Equal(t, "93.0%", rows[1][2])
	assert.Equal(t, "completed", rows[1][5])
	assert.Equal(t, "broken.docx", rows[3][0])
	assert.Equal(t, "Error", rows[3][1])
	assert.Equal(t, "failed", rows[3][5])

	detail, err := f.GetRows("Extracted Data")
	require.NoError(t, err)
	// One entity row plus two key-value rows from the invoice; the empty
	// key-value and the failed document contribute nothing.
	require.Len(t, detail, 4)
	assert.Equal(t, "ORGANIZATION", detail[1][2])
	assert.Equal(t, "Key-Value", detail[2][2])
	assert.Equal(t, "invoice_number: INV-42", detail[2][3])
	assert.Equal(t, "100.0%", detail[2][4])
	assert.Equal(t, "total_amount: $120", detail[3][3])

	text, err := f.GetRows("Full Text")
	require.NoError(t, err)
	require.Len(t, text, 4)
	assert.Equal(t, "ACME invoice #42 total $120", text[1][2])
}

func TestToXLSXCellLimit(t *testing.T) {
	doc := sampleDocs()[0]
	doc.ExtractedText = strings.Repeat("a", export.XLSXCellLimit+500)
	svc := export.NewService(nil)

	data, err := svc.ToXLSX([]*entity.ProcessedDocument{doc})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Full Text", "C2")
	require.NoError(t, err)
	assert.Len(t, cell, export.XLSXCellLimit)
}

func TestToXLSXSummaryExcerpt(t *testing.T) {
	doc := sampleDocs()[0]
	doc.Summary = strings.Repeat("s", 400)
	svc := export.NewService(nil)

	data, err := svc.ToXLSX([]*entity.ProcessedDocument{doc})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Summary", "H2")
	require.NoError(t, err)
	assert.Len(t, cell, 203)
	assert.True(t, strings.HasSuffix(cell, "..."))
}

func TestToXLSXEmpty(t *testing.T) {
	svc := export.NewService(nil)

	data, err := svc.ToXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestToSummaryReport(t *testing.T) {
	svc := export.NewService(nil)

	report := svc.ToSummaryReport(sampleDocs())

	assert.Contains(t, report, "# XeveDoc Processing Report")
	assert.Contains(t, report, "- Total Documents Processed: 3")
	assert.Contains(t, report, "- Successfully Processed: 2")
	assert.Contains(t, report, "- Failed Processing: 1")
	assert.Contains(t, report, "- Success Rate: 66.7%")

	// Failed documents stay out of the category distribution but appear in
	// the method distribution and per-document details.
	assert.Contains(t, report, "- Invoice: 1 documents")
	assert.Contains(t, report, "- Letter: 1 documents")
	assert.NotContains(t, report, "- Error: 1 documents")
	assert.Contains(t, report, "- Failed: 1 documents")

	assert.Contains(t, report, "### broken.docx")
	assert.Contains(t, report, "- **Error**: extraction failed")

	assert.Contains(t, report, "- 1 documents required OCR processing (image-based)")
	assert.Contains(t, report, "Average categorization confidence")
}

func TestToSummaryReportNoCompleted(t *testing.T) {
	svc := export.NewService(nil)
	failed := sampleDocs()[2]

	report := svc.ToSummaryReport([]*entity.ProcessedDocument{failed})

	assert.Contains(t, report, "- No successfully processed documents to analyze.")
	assert.Contains(t, report, "- Success Rate: 0.0%")
}

func TestToCSV(t *testing.T) {
	svc := export.NewService(nil)

	csv := svc.ToCSV(sampleDocs())
	lines := strings.Split(csv, "\n")

	require.Len(t, lines, 4)
	assert.Equal(t,
		"File Name,Category,Confidence,File Size (KB),Processing Method,Status,Processed At,Summary",
		lines[0])
	assert.Equal(t,
		`"invoice.pdf","Invoice","93.0%",4,"PDF Parser","completed","2026-03-14 10:30:00","An invoice from ACME."`,
		lines[1])
	assert.False(t, strings.HasSuffix(csv, "\n"), "no trailing newline")
}

func TestToCSVQuoting(t *testing.T) {
	doc := sampleDocs()[0]
	doc.Summary = `He said "pay now" twice.`
	svc := export.NewService(nil)

	csv := svc.ToCSV([]*entity.ProcessedDocument{doc})

	assert.Contains(t, csv, `"He said ""pay now"" twice."`)
}

func TestToCSVSummaryCap(t *testing.T) {
	doc := sampleDocs()[0]
	doc.Summary = strings.Repeat("x", 300)
	svc := export.NewService(nil)

	csv := svc.ToCSV([]*entity.ProcessedDocument{doc})
	lines := strings.Split(csv, "\n")

	last := lines[len(lines)-1]
	assert.True(t, strings.HasSuffix(last, `"`+strings.Repeat("x", 200)+`"`))
}
