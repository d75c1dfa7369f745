package constants

import "strings"

// Format is the coarse file-format family used for extraction dispatch.
type Format string

const (
	PDF     Format = "PDF"
	Word    Format = "WORD"
	Text    Format = "TEXT"
	Image   Format = "IMAGE"
	Unknown Format = "UNKNOWN"
)

// Processing methods recorded on ProcessedDocument.
const (
	MethodPDFParser  = "PDF Parser"
	MethodWordParser = "Word Parser"
	MethodTextReader = "Text Reader"
	MethodOCR        = "OCR"
	MethodFailed     = "Failed"
)

// SupportedExtensions maps every accepted extension (without dot) to its format family.
var SupportedExtensions = map[string]Format{
	"pdf":  PDF,
	"docx": Word,
	"doc":  Word,
	"txt":  Text,
	"jpg":  Image,
	"jpeg": Image,
	"png":  Image,
	"gif":  Image,
	"bmp":  Image,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat resolves a file extension to its format family.
func MapExtToFormat(ext string) Format {
	if f, ok := SupportedExtensions[NormalizeExt(ext)]; ok {
		return f
	}
	return Unknown
}

// MethodForFormat returns the processing-method label recorded for a format family.
func MethodForFormat(f Format) string {
	switch f {
	case PDF:
		return MethodPDFParser
	case Word:
		return MethodWordParser
	case Text:
		return MethodTextReader
	case Image:
		return MethodOCR
	default:
		return MethodFailed
	}
}
