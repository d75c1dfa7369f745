package constants

// DocStatus is the canonical lifecycle status for a processed document.
type DocStatus string

// Stable values (these exact strings appear in exports).
const (
	StatusProcessing DocStatus = "processing" // in flight
	StatusCompleted  DocStatus = "completed"  // terminal success
	StatusFailed     DocStatus = "failed"     // terminal failure
)

// Terminal reports whether s is a terminal status.
func (s DocStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
