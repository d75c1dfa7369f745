package extract

import (
	"context"
	"fmt"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (Result, error) {
	var warns []string

	// Preprocess for recognition accuracy; fall back to the original file
	// rather than failing the document when preprocessing breaks.
	ocrPath, cleanup, err := e.preprocessForOCR(path)
	if err != nil {
		e.logger.Warn("extract.preprocess_failed", "path", path, "error", err)
		warns = append(warns, fmt.Sprintf("image preprocessing failed: %v", err))
		ocrPath = path
	}
	if cleanup != nil {
		defer cleanup()
	}

	txt, w, err := e.tesseractOCR(ctx, ocrPath)
	warns = append(warns, w...)
	if err != nil {
		return Result{Warnings: warns},
			fmt.Errorf("%w: OCR processing failed: %v", common.ErrExtractionFailed, err)
	}
	return Result{Text: txt, Method: constants.MethodOCR, Warnings: warns}, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}
