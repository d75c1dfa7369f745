package extract

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// preprocessForOCR writes an OCR-friendly copy of the image to a uniquely
// named temp PNG: scaled so its height targets cfg.OCRTargetHeight (never
// upscaling), greyscaled, contrast-stretched, and sharpened. Returns the temp
// path and a cleanup func that removes it; callers must run cleanup on every
// path once recognition is done.
func (e *Extractor) preprocessForOCR(path string) (string, func(), error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	if h := img.Bounds().Dy(); h > e.cfg.OCRTargetHeight {
		img = imaging.Resize(img, 0, e.cfg.OCRTargetHeight, imaging.Lanczos)
	}
	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 15)
	img = imaging.Sharpen(img, 1.0)

	tmp, err := os.CreateTemp("", "xevedoc-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", nil, fmt.Errorf("close temp image: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmpPath) }

	if err := imaging.Save(img, tmpPath); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("encode temp image: %w", err)
	}

	e.logger.Debug("extract.preprocess_ok",
		"path", path,
		"artifact", tmpPath,
		"height", img.Bounds().Dy(),
	)
	return tmpPath, cleanup, nil
}
