package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
	"github.com/manojvishalkijo/xevedoc/internal/entity"
	"github.com/manojvishalkijo/xevedoc/internal/export"
	"github.com/manojvishalkijo/xevedoc/internal/extract"
	"github.com/manojvishalkijo/xevedoc/internal/llm/openai"
	"github.com/manojvishalkijo/xevedoc/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory to scan for documents (positional file paths also accepted)")
		out     = flag.String("out", ".", "output directory for export artifacts")
		format  = flag.String("format", "all", "export format: xlsx | report | csv | all")
		workers = flag.Int("workers", 0, "concurrent documents (default from XEVEDOC_WORKERS)")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	_ = godotenv.Load()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Pipeline.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	paths := flag.Args()
	if *dir != "" {
		found, err := collectDocuments(*dir)
		if err != nil {
			printError("Error: scanning %s: %v\n", *dir, err)
			os.Exit(1)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		printError("Error: no input documents; pass file paths or --dir\n")
		os.Exit(1)
	}

	extractor := extract.NewExtractor(extract.Config{
		Pdftotext:       cfg.Extract.Pdftotext,
		Tesseract:       cfg.Extract.Tesseract,
		Antiword:        cfg.Extract.Antiword,
		TesseractLang:   cfg.Extract.TesseractLang,
		OCRTargetHeight: cfg.Extract.OCRTargetHeight,
	}, logger)

	analyzer := openai.NewClient(openai.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		Categories:  cfg.LLM.Categories,
	}, logger)

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	proc := pipeline.NewProcessor(extractor, analyzer, cfg.Pipeline, logger).
		WithEvents(barEvents{bar: bar})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	docs := proc.ProcessBatch(ctx, paths)
	_ = bar.Finish()

	completed, failed := 0, 0
	for _, doc := range docs {
		if doc.Status == constants.StatusCompleted {
			completed++
		} else {
			failed++
		}
	}
	color.Green("processed %d documents (%d completed)", len(docs), completed)
	if failed > 0 {
		color.Red("%d documents failed:", failed)
		for _, doc := range docs {
			if doc.Status != constants.StatusCompleted {
				color.Red("  %s: %s", doc.FileName, doc.Error)
			}
		}
	}

	if err := writeArtifacts(*out, *format, docs, logger); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// collectDocuments walks root and returns every file with a supported
// extension, sorted for deterministic batch order.
func collectDocuments(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if constants.MapExtToFormat(filepath.Ext(path)) != constants.Unknown {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func writeArtifacts(outDir, format string, docs []*entity.ProcessedDocument, logger *slog.Logger) error {
	svc := export.NewService(logger)
	stamp := time.Now().Format("20060102-150405")

	write := func(name string, data []byte) error {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println("wrote", path)
		return nil
	}

	if format == "xlsx" || format == "all" {
		data, err := svc.ToXLSX(docs)
		if err != nil {
			return err
		}
		if err := write("xevedoc-"+stamp+".xlsx", data); err != nil {
			return err
		}
	}
	if format == "report" || format == "all" {
		if err := write("xevedoc-report-"+stamp+".md", []byte(svc.ToSummaryReport(docs))); err != nil {
			return err
		}
	}
	if format == "csv" || format == "all" {
		if err := write("xevedoc-"+stamp+".csv", []byte(svc.ToCSV(docs))); err != nil {
			return err
		}
	}
	return nil
}

// barEvents maps pipeline stage events onto the progress bar.
type barEvents struct {
	bar *progressbar.ProgressBar
}

func (e barEvents) DocumentStarted(string)        {}
func (e barEvents) ExtractionDone(string, string) {}
func (e barEvents) DocumentCompleted(*entity.ProcessedDocument) {
	_ = e.bar.Add(1)
}
func (e barEvents) DocumentFailed(*entity.ProcessedDocument) {
	_ = e.bar.Add(1)
}
