package export

import (
	"fmt"
	"strings"

	"github.com/manojvishalkijo/xevedoc/internal/entity"
)

// ToCSV renders one quoted row per document. Internal quote characters are
// escaped by doubling; the summary column is capped at 200 characters.
func (s *Service) ToCSV(docs []*entity.ProcessedDocument) string {
	headers := []string{
		"File Name",
		"Category",
		"Confidence",
		"File Size (KB)",
		"Processing Method",
		"Status",
		"Processed At",
		"Summary",
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteByte('\n')

	for i, doc := range docs {
		row := []string{
			quote(doc.FileName),
			quote(doc.Category),
			quote(formatPercent(doc.CategoryConfidence)),
			fmt.Sprintf("%d", doc.FileSize/1024),
			quote(doc.ProcessingMethod),
			quote(string(doc.Status)),
			quote(doc.ProcessedAt.Format("2006-01-02 15:04:05")),
			quote(excerptExact(doc.Summary, summaryExcerptLen)),
		}
		b.WriteString(strings.Join(row, ","))
		if i < len(docs)-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
