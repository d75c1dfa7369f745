package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
)

// Config mirrors common.ExtractConfig with defaults applied at construction.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Antiword  string // binary name or absolute path; if empty -> "antiword"

	TesseractLang   string // default "eng"
	OCRTargetHeight int    // default 2000; images below this are never upscaled
}

// Result carries the extracted text plus how it was obtained.
type Result struct {
	Text     string
	Method   string // constants.Method*
	Format   constants.Format
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Antiword == "" {
		cfg.Antiword = "antiword"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.OCRTargetHeight <= 0 {
		cfg.OCRTargetHeight = 2000
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the exec runner; tests use this to stub external tools.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract picks a strategy based on file extension. It fails with
// common.ErrUnsupportedFormat before touching the file when the extension is
// unknown, and with common.ErrEmptyContent when extraction yields only
// whitespace.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	e.logger.Debug("extract.start", "path", path, "ext", ext, "format", format)

	if format == constants.Unknown {
		e.logger.Error("extract.unsupported_extension", "path", path, "ext", ext)
		return Result{Format: format, Method: constants.MethodFailed},
			fmt.Errorf("%w: .%s", common.ErrUnsupportedFormat, ext)
	}

	var res Result
	var err error
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.Word:
		res, err = e.extractWord(ctx, path, ext)
	case constants.Text:
		res, err = e.extractText(path)
	case constants.Image:
		res, err = e.extractImage(ctx, path)
	}
	res.Format = format
	res.Duration = time.Since(start)
	if err != nil {
		res.Method = constants.MethodFailed
		return res, err
	}

	if strings.TrimSpace(res.Text) == "" {
		e.logger.Warn("extract.empty_content", "path", path, "method", res.Method)
		res.Method = constants.MethodFailed
		return res, common.ErrEmptyContent
	}

	e.logger.Info("extract.ok",
		"path", path,
		"method", res.Method,
		"chars", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
