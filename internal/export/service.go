package export

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/manojvishalkijo/xevedoc/internal/common"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
)

// XLSXCellLimit is the spreadsheet per-cell character limit; longer values
// are truncated, never rejected.
const XLSXCellLimit = 32767

// summaryExcerptLen caps the summary column in tabular and delimited views.
const summaryExcerptLen = 200

// Service produces tabular and narrative artifacts from processed documents.
// Every operation is a pure function of its input records; persistence is the
// caller's concern.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ToXLSX returns a workbook with three sheets: a per-document summary, a
// flattened entity/key-value detail view, and the full extracted text.
// Failed documents appear in Summary and Full Text with their error visible
// and contribute no detail rows.
func (s *Service) ToXLSX(docs []*entity.ProcessedDocument) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("%w: rename sheet: %v", common.ErrExportFailed, err)
	}

	writeRow(f, summarySheet, 1, []any{
		"File Name", "Category", "Confidence", "File Size (KB)",
		"Processing Method", "Status", "Processed At", "Summary",
	})
	for i, doc := range docs {
		writeRow(f, summarySheet, i+2, []any{
			doc.FileName,
			doc.Category,
			formatPercent(doc.CategoryConfidence),
			doc.FileSize / 1024,
			doc.ProcessingMethod,
			string(doc.Status),
			doc.ProcessedAt.Format("2006-01-02 15:04:05"),
			excerpt(doc.Summary, summaryExcerptLen),
		})
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 32)
	_ = f.SetColWidth(summarySheet, "E", "G", 18)
	_ = f.SetColWidth(summarySheet, "H", "H", 60)

	const detailSheet = "Extracted Data"
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("%w: create sheet: %v", common.ErrExportFailed, err)
	}
	writeRow(f, detailSheet, 1, []any{
		"File Name", "Category", "Entity Type", "Entity Value", "Confidence",
	})
	row := 2
	for _, doc := range docs {
		for _, ent := range doc.ExtractedData.Entities {
			writeRow(f, detailSheet, row, []any{
				doc.FileName, doc.Category, ent.Type, ent.Value, formatPercent(ent.Confidence),
			})
			row++
		}
		for _, key := range sortedKeys(doc.ExtractedData.KeyValues) {
			value := doc.ExtractedData.KeyValues[key]
			if value == "" {
				continue
			}
			writeRow(f, detailSheet, row, []any{
				doc.FileName, doc.Category, "Key-Value", key + ": " + value, "100.0%",
			})
			row++
		}
	}
	_ = f.SetColWidth(detailSheet, "A", "A", 32)
	_ = f.SetColWidth(detailSheet, "D", "D", 48)

	const textSheet = "Full Text"
	if _, err := f.NewSheet(textSheet); err != nil {
		return nil, fmt.Errorf("%w: create sheet: %v", common.ErrExportFailed, err)
	}
	writeRow(f, textSheet, 1, []any{"File Name", "Category", "Full Text"})
	for i, doc := range docs {
		writeRow(f, textSheet, i+2, []any{
			doc.FileName,
			doc.Category,
			excerptExact(doc.ExtractedText, XLSXCellLimit),
		})
	}
	_ = f.SetColWidth(textSheet, "A", "A", 32)
	_ = f.SetColWidth(textSheet, "C", "C", 100)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx write: %v", common.ErrExportFailed, err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(docs),
		"detail_rows", row-2,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func formatPercent(v float32) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// excerpt truncates with an ellipsis marker.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// excerptExact truncates to exactly n characters, no marker. Used where the
// bound is a hard format limit.
func excerptExact(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// sortedKeys keeps key-value rows in a stable order across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
