package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
	"github.com/manojvishalkijo/xevedoc/internal/extract"
	"github.com/manojvishalkijo/xevedoc/internal/llm"
)

// TextExtractor is the extraction capability the pipeline depends on.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (extract.Result, error)
}

// Processor coordinates extraction then analysis for single documents and
// batches. Document-level failures are always converted into a valid failed
// record; ProcessDocument and ProcessBatch never return errors.
type Processor struct {
	logger    *slog.Logger
	extractor TextExtractor
	analyzer  llm.Analyzer
	events    Events

	workers         int
	extractTimeout  time.Duration
	analysisTimeout time.Duration
}

func NewProcessor(extractor TextExtractor, analyzer llm.Analyzer, cfg common.PipelineConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 2 * time.Minute
	}
	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = time.Minute
	}
	return &Processor{
		logger:          logger,
		extractor:       extractor,
		analyzer:        analyzer,
		events:          NopEvents{},
		workers:         cfg.Workers,
		extractTimeout:  cfg.ExtractTimeout,
		analysisTimeout: cfg.AnalysisTimeout,
	}
}

// WithEvents installs a stage-event sink.
func (p *Processor) WithEvents(ev Events) *Processor {
	if ev != nil {
		p.events = ev
	}
	return p
}

// ProcessDocument runs one file through extraction and analysis. The returned
// record always has a terminal status.
func (p *Processor) ProcessDocument(ctx context.Context, path string) *entity.ProcessedDocument {
	p.events.DocumentStarted(path)
	p.logger.Info("pipeline.document.start", "path", path)

	ectx, cancel := context.WithTimeout(ctx, p.extractTimeout)
	res, err := p.extractor.Extract(ectx, path)
	cancel()
	if err != nil {
		p.logger.Error("pipeline.extract.failed", "path", path, "error", err)
		doc := p.failedDocument(path, err)
		p.events.DocumentFailed(doc)
		return doc
	}
	p.events.ExtractionDone(path, res.Method)
	p.logger.Debug("pipeline.extract.ok", "path", path, "method", res.Method, "chars", len(res.Text))

	doc := p.analyzeDocument(ctx, path, res)
	if doc.Status == constants.StatusFailed {
		p.events.DocumentFailed(doc)
	} else {
		p.events.DocumentCompleted(doc)
	}
	p.logger.Info("pipeline.document.done",
		"path", path,
		"status", doc.Status,
		"category", doc.Category,
		"confidence", doc.CategoryConfidence,
	)
	return doc
}

// analyzeDocument runs the four analysis capabilities over extracted text.
// Categorize, ExtractStructured and Analyze self-fallback; a Summarize error
// is the only one that fails the document.
func (p *Processor) analyzeDocument(ctx context.Context, path string, res extract.Result) *entity.ProcessedDocument {
	text := res.Text

	analysis, err := withTimeout(ctx, p.analysisTimeout, func(actx context.Context) (entity.DocumentAnalysis, error) {
		return p.analyzer.Analyze(actx, text, "")
	})
	if err != nil {
		p.logger.Warn("pipeline.analyze.fallback", "path", path, "error", err)
		analysis = llm.DefaultAnalysis(text)
	}

	cat, err := withTimeout(ctx, p.analysisTimeout, func(actx context.Context) (llm.CategoryResult, error) {
		return p.analyzer.Categorize(actx, text)
	})
	if err != nil {
		p.logger.Warn("pipeline.categorize.fallback", "path", path, "error", err)
		cat = llm.DefaultCategory()
	}

	doc := p.newDocument(path)
	doc.ProcessingMethod = res.Method
	doc.ExtractedText = text
	doc.Analysis = &analysis
	doc.Category = cat.Category
	doc.CategoryConfidence = llm.Clamp01(cat.Confidence)

	summary, err := withTimeout(ctx, p.analysisTimeout, func(actx context.Context) (string, error) {
		return p.analyzer.Summarize(actx, text)
	})
	if err != nil {
		p.logger.Error("pipeline.summarize.failed", "path", path, "error", err)
		doc.Summary = fmt.Sprintf("Failed to generate summary: %v", err)
		doc.ExtractedData = llm.EmptyExtractedData()
		doc.ProcessedAt = time.Now()
		doc.Status = constants.StatusFailed
		doc.Error = err.Error()
		return doc
	}
	doc.Summary = summary

	data, err := withTimeout(ctx, p.analysisTimeout, func(actx context.Context) (entity.ExtractedData, error) {
		return p.analyzer.ExtractStructured(actx, text, cat.Category)
	})
	if err != nil {
		p.logger.Warn("pipeline.extract_structured.fallback", "path", path, "error", err)
		data = llm.EmptyExtractedData()
	}
	data.Normalize()
	doc.ExtractedData = data

	doc.ProcessedAt = time.Now()
	doc.Status = constants.StatusCompleted
	return doc
}

// withTimeout bounds a single capability call.
func withTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	actx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(actx)
}

// newDocument builds the common identity fields for a record.
func (p *Processor) newDocument(path string) *entity.ProcessedDocument {
	return &entity.ProcessedDocument{
		ID:       entity.NewDocumentID(),
		FileName: filepath.Base(path),
		FilePath: path,
		FileType: constants.NormalizeExt(filepath.Ext(path)),
		FileSize: fileSize(path),
	}
}

// failedDocument converts an extraction-stage error into a terminal failed
// record.
func (p *Processor) failedDocument(path string, cause error) *entity.ProcessedDocument {
	doc := p.newDocument(path)
	doc.ProcessingMethod = constants.MethodFailed
	doc.ExtractedText = ""
	doc.Category = constants.CategoryError
	doc.CategoryConfidence = 0
	doc.Summary = fmt.Sprintf("Failed to process: %v", cause)
	doc.ExtractedData = entity.NewExtractedData()
	doc.ProcessedAt = time.Now()
	doc.Status = constants.StatusFailed
	doc.Error = cause.Error()
	return doc
}

// fileSize is best-effort; unreadable files report 0.
func fileSize(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return st.Size()
}
