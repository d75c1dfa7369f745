package extract

import (
	"context"
	"fmt"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
)

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return Result{Warnings: []string{string(errb)}},
			fmt.Errorf("%w: pdftotext: %v", common.ErrExtractionFailed, err)
	}
	return Result{Text: string(out), Method: constants.MethodPDFParser}, nil
}
