package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
)

func (e *Extractor) extractWord(ctx context.Context, path, ext string) (Result, error) {
	if ext == "doc" {
		// Legacy binary format goes through antiword.
		out, errb, err := e.runner.Run(ctx, e.cfg.Antiword, path)
		if err != nil {
			return Result{Warnings: []string{string(errb)}},
				fmt.Errorf("%w: antiword: %v", common.ErrExtractionFailed, err)
		}
		return Result{Text: string(out), Method: constants.MethodWordParser}, nil
	}

	text, err := docxText(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}
	return Result{Text: text, Method: constants.MethodWordParser}, nil
}

// docxText pulls the raw paragraph text out of word/document.xml. A .docx is a
// zip container; runs of text live in <w:t> elements, paragraphs in <w:p>.
func docxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx missing word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
