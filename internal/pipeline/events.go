package pipeline

import "github.com/manojvishalkijo/xevedoc/internal/entity"

// Events receives coarse stage notifications as a batch runs. Implementations
// must be safe for concurrent calls; a UI can map these to any progress
// visualization it likes.
type Events interface {
	DocumentStarted(path string)
	ExtractionDone(path string, method string)
	DocumentCompleted(doc *entity.ProcessedDocument)
	DocumentFailed(doc *entity.ProcessedDocument)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) DocumentStarted(string)                      {}
func (NopEvents) ExtractionDone(string, string)               {}
func (NopEvents) DocumentCompleted(*entity.ProcessedDocument) {}
func (NopEvents) DocumentFailed(*entity.ProcessedDocument)    {}
