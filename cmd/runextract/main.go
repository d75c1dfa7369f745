package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/manojvishalkijo/xevedoc/internal/common"
	"github.com/manojvishalkijo/xevedoc/internal/extract"
)

// runextract runs text extraction on a single file and prints the result.
// Useful for debugging extraction without touching the analysis backend.
func main() {
	file := flag.String("file", "", "document to extract (required)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	extractor := extract.NewExtractor(extract.Config{
		Pdftotext:       cfg.Extract.Pdftotext,
		Tesseract:       cfg.Extract.Tesseract,
		Antiword:        cfg.Extract.Antiword,
		TesseractLang:   cfg.Extract.TesseractLang,
		OCRTargetHeight: cfg.Extract.OCRTargetHeight,
	}, logger)

	res, err := extractor.Extract(context.Background(), *file)
	if err != nil {
		logger.Error("extraction failed", "file", *file, "error", err)
		os.Exit(1)
	}

	logger.Info("extraction ok",
		"file", *file,
		"method", res.Method,
		"chars", len(res.Text),
		"warnings", len(res.Warnings),
	)
	fmt.Println(res.Text)
}
