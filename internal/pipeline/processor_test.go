package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
	"github.com/manojvishalkijo/xevedoc/internal/extract"
	"github.com/manojvishalkijo/xevedoc/internal/llm"
	"github.com/manojvishalkijo/xevedoc/internal/pipeline"
)

// stubExtractor serves canned extraction results keyed by path.
type stubExtractor struct {
	results map[string]extract.Result
	errs    map[string]error
}

func (s *stubExtractor) Extract(_ context.Context, path string) (extract.Result, error) {
	if err, ok := s.errs[path]; ok {
		return extract.Result{Method: constants.MethodFailed}, err
	}
	if res, ok := s.results[path]; ok {
		return res, nil
	}
	return extract.Result{Text: "extracted text for " + path, Method: constants.MethodTextReader}, nil
}

// stubAnalyzer returns fixed analysis results; individual capabilities can be
// failed independently.
type stubAnalyzer struct {
	categorizeErr error
	summarizeErr  error
	extractErr    error
	analyzeErr    error

	category llm.CategoryResult
	summary  string
	block    bool
}

func (s *stubAnalyzer) Categorize(ctx context.Context, _ string) (llm.CategoryResult, error) {
	if s.block {
		<-ctx.Done()
		return llm.CategoryResult{}, ctx.Err()
	}
	if s.categorizeErr != nil {
		return llm.CategoryResult{}, s.categorizeErr
	}
	if s.category.Category == "" {
		return llm.CategoryResult{Category: "Report", Confidence: 0.9}, nil
	}
	return s.category, nil
}

func (s *stubAnalyzer) Summarize(_ context.Context, _ string) (string, error) {
	if s.summarizeErr != nil {
		return "", s.summarizeErr
	}
	if s.summary == "" {
		return "A short summary.", nil
	}
	return s.summary, nil
}

func (s *stubAnalyzer) ExtractStructured(_ context.Context, _, _ string) (entity.ExtractedData, error) {
	if s.extractErr != nil {
		return entity.ExtractedData{}, s.extractErr
	}
	data := entity.NewExtractedData()
	data.KeyValues["title"] = "stub"
	return data, nil
}

func (s *stubAnalyzer) Analyze(_ context.Context, text, _ string) (entity.DocumentAnalysis, error) {
	if s.analyzeErr != nil {
		return entity.DocumentAnalysis{}, s.analyzeErr
	}
	return entity.DocumentAnalysis{
		Summary:    "analysis of " + text,
		Sentiment:  "neutral",
		Complexity: "low",
		KeyTopics:  []string{"stub"},
		Confidence: 0.8,
	}, nil
}

var _ llm.Analyzer = (*stubAnalyzer)(nil)

// countingEvents tallies stage callbacks.
type countingEvents struct {
	mu        sync.Mutex
	started   int
	extracted int
	completed int
	failed    int
}

func (c *countingEvents) DocumentStarted(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
}

func (c *countingEvents) ExtractionDone(string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extracted++
}

func (c *countingEvents) DocumentCompleted(*entity.ProcessedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed++
}

func (c *countingEvents) DocumentFailed(*entity.ProcessedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
}

func newTestProcessor(ex pipeline.TextExtractor, an llm.Analyzer) *pipeline.Processor {
	return pipeline.NewProcessor(ex, an, common.PipelineConfig{Workers: 2}, slog.Default())
}

func TestProcessDocumentCompleted(t *testing.T) {
	p := newTestProcessor(&stubExtractor{}, &stubAnalyzer{})

	doc := p.ProcessDocument(context.Background(), "/tmp/report.txt")

	assert.Equal(t, constants.StatusCompleted, doc.Status)
	assert.Equal(t, "report.txt", doc.FileName)
	assert.Equal(t, "txt", doc.FileType)
	assert.Equal(t, constants.MethodTextReader, doc.ProcessingMethod)
	assert.Equal(t, "Report", doc.Category)
	assert.Equal(t, float32(0.9), doc.CategoryConfidence)
	assert.Equal(t, "A short summary.", doc.Summary)
	require.NotNil(t, doc.Analysis)
	assert.Equal(t, "neutral", doc.Analysis.Sentiment)
	assert.Equal(t, "stub", doc.ExtractedData.KeyValues["title"])
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.ProcessedAt.IsZero())
}

func TestProcessDocumentExtractionFailure(t *testing.T) {
	ex := &stubExtractor{errs: map[string]error{
		"/tmp/broken.pdf": fmt.Errorf("%w: pdftotext exited 1", common.ErrExtractionFailed),
	}}
	p := newTestProcessor(ex, &stubAnalyzer{})

	doc := p.ProcessDocument(context.Background(), "/tmp/broken.pdf")

	assert.Equal(t, constants.StatusFailed, doc.Status)
	assert.Equal(t, constants.MethodFailed, doc.ProcessingMethod)
	assert.Equal(t, constants.CategoryError, doc.Category)
	assert.Equal(t, float32(0), doc.CategoryConfidence)
	assert.Contains(t, doc.Summary, "Failed to process:")
	assert.NotEmpty(t, doc.Error)
	assert.NotNil(t, doc.ExtractedData.Entities)
	assert.NotNil(t, doc.ExtractedData.KeyValues)
}

func TestProcessDocumentUnsupportedFormat(t *testing.T) {
	// End to end through the real extractor: an unknown extension becomes a
	// failed record, never an error.
	ex := extract.NewExtractor(extract.Config{}, slog.Default())
	p := newTestProcessor(ex, &stubAnalyzer{})

	doc := p.ProcessDocument(context.Background(), "/tmp/archive.xyz")

	assert.Equal(t, constants.StatusFailed, doc.Status)
	assert.Equal(t, constants.MethodFailed, doc.ProcessingMethod)
	assert.Equal(t, constants.CategoryError, doc.Category)
	assert.Contains(t, doc.Error, "unsupported file format")
}

func TestCategorizeFallback(t *testing.T) {
	an := &stubAnalyzer{categorizeErr: errors.New("model returned garbage")}
	p := newTestProcessor(&stubExtractor{}, an)

	doc := p.ProcessDocument(context.Background(), "/tmp/doc.txt")

	assert.Equal(t, constants.StatusCompleted, doc.Status)
	assert.Equal(t, string(constants.Other), doc.Category)
	assert.Equal(t, float32(0.5), doc.CategoryConfidence)
}

func TestAnalyzeFallback(t *testing.T) {
	an := &stubAnalyzer{analyzeErr: errors.New("backend down")}
	ex := &stubExtractor{results: map[string]extract.Result{
		"/tmp/doc.txt": {Text: "some extracted text", Method: constants.MethodTextReader},
	}}
	p := newTestProcessor(ex, an)

	doc := p.ProcessDocument(context.Background(), "/tmp/doc.txt")

	assert.Equal(t, constants.StatusCompleted, doc.Status)
	require.NotNil(t, doc.Analysis)
	assert.Equal(t, "neutral", doc.Analysis.Sentiment)
	assert.Equal(t, "medium", doc.Analysis.Complexity)
	assert.Equal(t, float32(0.5), doc.Analysis.Confidence)
	assert.Contains(t, doc.Analysis.Summary, "some extracted text")
}

func TestSummarizeFailureFailsDocument(t *testing.T) {
	an := &stubAnalyzer{summarizeErr: fmt.Errorf("%w: rate limited", common.ErrAnalysisFailed)}
	p := newTestProcessor(&stubExtractor{}, an)

	doc := p.ProcessDocument(context.Background(), "/tmp/doc.txt")

	assert.Equal(t, constants.StatusFailed, doc.Status)
	assert.Contains(t, doc.Summary, "Failed to generate summary:")
	assert.NotEmpty(t, doc.Error)
	// Earlier stage results survive the failure.
	assert.Equal(t, constants.MethodTextReader, doc.ProcessingMethod)
	assert.Equal(t, "Report", doc.Category)
	require.NotNil(t, doc.Analysis)
	assert.NotNil(t, doc.ExtractedData.KeyValues)
	assert.Empty(t, doc.ExtractedData.KeyValues)
}

func TestExtractStructuredFallback(t *testing.T) {
	an := &stubAnalyzer{extractErr: errors.New("malformed reply")}
	p := newTestProcessor(&stubExtractor{}, an)

	doc := p.ProcessDocument(context.Background(), "/tmp/doc.txt")

	assert.Equal(t, constants.StatusCompleted, doc.Status)
	assert.NotNil(t, doc.ExtractedData.Entities)
	assert.NotNil(t, doc.ExtractedData.KeyValues)
	assert.NotNil(t, doc.ExtractedData.Dates)
	assert.Empty(t, doc.ExtractedData.Entities)
}

func TestCategorizeTimeoutFallback(t *testing.T) {
	an := &stubAnalyzer{block: true}
	p := pipeline.NewProcessor(&stubExtractor{}, an, common.PipelineConfig{
		Workers:         1,
		AnalysisTimeout: 20 * time.Millisecond,
	}, slog.Default())

	doc := p.ProcessDocument(context.Background(), "/tmp/doc.txt")

	assert.Equal(t, constants.StatusCompleted, doc.Status)
	assert.Equal(t, string(constants.Other), doc.Category)
	assert.Equal(t, float32(0.5), doc.CategoryConfidence)
}

func TestProcessBatchIndexAligned(t *testing.T) {
	paths := []string{"/tmp/a.txt", "/tmp/b.pdf", "/tmp/c.txt"}
	ex := &stubExtractor{errs: map[string]error{
		"/tmp/b.pdf": common.ErrExtractionFailed,
	}}
	p := newTestProcessor(ex, &stubAnalyzer{})

	docs := p.ProcessBatch(context.Background(), paths)

	require.Len(t, docs, 3)
	for i, doc := range docs {
		require.NotNil(t, doc, "slot %d", i)
		assert.True(t, doc.Status.Terminal(), "slot %d", i)
		assert.Equal(t, paths[i], doc.FilePath, "results keep input order")
	}
	assert.Equal(t, constants.StatusCompleted, docs[0].Status)
	assert.Equal(t, constants.StatusFailed, docs[1].Status)
	assert.Equal(t, constants.StatusCompleted, docs[2].Status)
}

func TestProcessBatchEvents(t *testing.T) {
	ev := &countingEvents{}
	ex := &stubExtractor{errs: map[string]error{
		"/tmp/bad.txt": common.ErrExtractionFailed,
	}}
	p := newTestProcessor(ex, &stubAnalyzer{}).WithEvents(ev)

	p.ProcessBatch(context.Background(), []string{"/tmp/ok1.txt", "/tmp/bad.txt", "/tmp/ok2.txt"})

	assert.Equal(t, 3, ev.started)
	assert.Equal(t, 2, ev.extracted)
	assert.Equal(t, 2, ev.completed)
	assert.Equal(t, 1, ev.failed)
}

func TestProcessBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProcessor(&stubExtractor{}, &stubAnalyzer{})
	docs := p.ProcessBatch(ctx, []string{"/tmp/a.txt", "/tmp/b.txt"})

	require.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, constants.StatusFailed, doc.Status)
		assert.Contains(t, doc.Error, "processing cancelled")
	}
}

func TestProcessBatchBoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	ex := &trackingExtractor{inFlight: &inFlight, peak: &peak}
	p := pipeline.NewProcessor(ex, &stubAnalyzer{}, common.PipelineConfig{Workers: 2}, slog.Default())

	paths := make([]string, 8)
	for i := range paths {
		paths[i] = fmt.Sprintf("/tmp/doc-%d.txt", i)
	}
	docs := p.ProcessBatch(context.Background(), paths)

	require.Len(t, docs, 8)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

type trackingExtractor struct {
	inFlight *atomic.Int32
	peak     *atomic.Int32
}

func (s *trackingExtractor) Extract(_ context.Context, path string) (extract.Result, error) {
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	s.inFlight.Add(-1)
	return extract.Result{Text: "text", Method: constants.MethodTextReader}, nil
}
