package extract

import (
	"fmt"
	"os"

	"github.com/manojvishalkijo/xevedoc/constants"
	"github.com/manojvishalkijo/xevedoc/internal/common"
)

func (e *Extractor) extractText(path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read file: %v", common.ErrExtractionFailed, err)
	}
	return Result{Text: string(b), Method: constants.MethodTextReader}, nil
}
