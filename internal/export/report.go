package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
)

// ToSummaryReport renders a narrative processing report: aggregate counts,
// category and method distributions, per-document detail and derived
// insights. Tolerates failed and partially populated records.
func (s *Service) ToSummaryReport(docs []*entity.ProcessedDocument) string {
	totalDocs := len(docs)
	successfulDocs := 0
	for _, doc := range docs {
		if doc.Status == constants.StatusCompleted {
			successfulDocs++
		}
	}
	failedDocs := totalDocs - successfulDocs

	successRate := 0.0
	if totalDocs > 0 {
		successRate = float64(successfulDocs) / float64(totalDocs) * 100
	}

	categoryCount := map[string]int{}
	methodCount := map[string]int{}
	for _, doc := range docs {
		if doc.Status == constants.StatusCompleted {
			categoryCount[doc.Category]++
		}
		methodCount[doc.ProcessingMethod]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# XeveDoc Processing Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary Statistics\n")
	fmt.Fprintf(&b, "- Total Documents Processed: %d\n", totalDocs)
	fmt.Fprintf(&b, "- Successfully Processed: %d\n", successfulDocs)
	fmt.Fprintf(&b, "- Failed Processing: %d\n", failedDocs)
	fmt.Fprintf(&b, "- Success Rate: %.1f%%\n\n", successRate)

	b.WriteString("## Document Categories\n")
	for _, entry := range sortedByCount(categoryCount) {
		fmt.Fprintf(&b, "- %s: %d documents\n", entry.name, entry.count)
	}
	b.WriteString("\n## Processing Methods\n")
	for _, entry := range sortedByCount(methodCount) {
		fmt.Fprintf(&b, "- %s: %d documents\n", entry.name, entry.count)
	}

	b.WriteString("\n## Document Details\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "\n### %s\n", doc.FileName)
		fmt.Fprintf(&b, "- **Category**: %s (%s confidence)\n", doc.Category, formatPercent(doc.CategoryConfidence))
		fmt.Fprintf(&b, "- **Status**: %s\n", doc.Status)
		fmt.Fprintf(&b, "- **Processing Method**: %s\n", doc.ProcessingMethod)
		fmt.Fprintf(&b, "- **File Size**: %d KB\n", doc.FileSize/1024)
		fmt.Fprintf(&b, "- **Processed**: %s\n", doc.ProcessedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "- **Summary**: %s\n", doc.Summary)
		if doc.Error != "" {
			fmt.Fprintf(&b, "- **Error**: %s\n", doc.Error)
		}
	}

	b.WriteString("\n## Key Insights\n")
	b.WriteString(generateInsights(docs))
	b.WriteString("\n")

	return b.String()
}

func generateInsights(docs []*entity.ProcessedDocument) string {
	var completed []*entity.ProcessedDocument
	for _, doc := range docs {
		if doc.Status == constants.StatusCompleted {
			completed = append(completed, doc)
		}
	}
	if len(completed) == 0 {
		return "- No successfully processed documents to analyze."
	}

	var insights []string

	categoryCount := map[string]int{}
	for _, doc := range completed {
		categoryCount[doc.Category]++
	}
	top := sortedByCount(categoryCount)[0]
	insights = append(insights, fmt.Sprintf("- Most common document type: %s (%d documents)", top.name, top.count))

	var confSum float32
	for _, doc := range completed {
		confSum += doc.CategoryConfidence
	}
	avgConfidence := confSum / float32(len(completed))
	insights = append(insights, fmt.Sprintf("- Average categorization confidence: %s", formatPercent(avgConfidence)))

	ocrDocs := 0
	for _, doc := range completed {
		if doc.ProcessingMethod == constants.MethodOCR {
			ocrDocs++
		}
	}
	if ocrDocs > 0 {
		insights = append(insights, fmt.Sprintf("- %d documents required OCR processing (image-based)", ocrDocs))
	}

	totalTextLength := 0
	for _, doc := range completed {
		totalTextLength += len(doc.ExtractedText)
	}
	avgTextLength := totalTextLength / len(completed)
	insights = append(insights, fmt.Sprintf("- Average extracted text length: %d characters", avgTextLength))

	return strings.Join(insights, "\n")
}

type countEntry struct {
	name  string
	count int
}

// sortedByCount orders descending by count, alphabetical within ties for
// stable output.
func sortedByCount(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for name, count := range m {
		entries = append(entries, countEntry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}
