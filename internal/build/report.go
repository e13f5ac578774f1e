package build

import "time"

// Status represents the outcome of a build execution.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool { return s == StatusSuccess }

// Report describes one build run. It is returned even when the build
// fails, holding whatever was completed before the failure.
type Report struct {
	BuildID string
	Status  Status

	// PagesRead is the number of pages discovered and loaded.
	PagesRead int
	// PagesWritten lists names of pages whose output changed.
	PagesWritten []string
	// AssetsCopied lists destination paths of copied static files.
	AssetsCopied []string
	// UnresolvedLinks counts link targets that matched no page.
	UnresolvedLinks int
	// FailedPage names the page that stopped the build, if any.
	FailedPage string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
