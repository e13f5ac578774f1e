package metrics

import "time"

// PageResult enumerates per-page outcomes for counters.
type PageResult string

const (
	PageWritten   PageResult = "written"
	PageUnchanged PageResult = "unchanged"
	PageFailed    PageResult = "failed"
)

// BuildOutcome enumerates final build states.
type BuildOutcome string

const (
	BuildSuccess BuildOutcome = "success"
	BuildFailed  BuildOutcome = "failed"
)

// Recorder defines observability hooks for builds and pages.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObservePageDuration(extension string, d time.Duration)
	IncPageResult(result PageResult)
	AddAssetsCopied(n int)
	IncUnresolvedLinks(n int)
	IncBuildOutcome(outcome BuildOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) ObservePageDuration(string, time.Duration) {}
func (NoopRecorder) IncPageResult(PageResult)                  {}
func (NoopRecorder) AddAssetsCopied(int)                       {}
func (NoopRecorder) IncUnresolvedLinks(int)                    {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)              {}
