// Package messages defines Bubbletea message types for the progress view.
package messages

import (
	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// PageFetched is sent after the engine processed a page.
type PageFetched struct {
	Event domain.PageEvent
}

// RunFinished carries the final report back to the model.
// Report may be nil when the run never started.
type RunFinished struct {
	Report *domain.RunReport
	Err    error
}
