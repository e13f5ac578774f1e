package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Options control a single build run.
type Options struct {
	// Force rewrites every page and copies every static file.
	Force bool
	// CopyStatic mirrors the static tree into the output tree.
	CopyStatic bool
}

// Builder coordinates a build over one project.
type Builder struct {
	project  *site.Project
	recorder metrics.Recorder
}

// NewBuilder creates a Builder. A nil recorder disables metrics.
func NewBuilder(project *site.Project, recorder metrics.Recorder) *Builder {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Builder{project: project, recorder: recorder}
}

// Run executes the build. It stops at the first page failure; the returned
// report is never nil.
func (b *Builder) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{
		BuildID:   uuid.NewString(),
		Status:    StatusFailed,
		StartTime: time.Now(),
	}
	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("Build started", logfields.Path(b.project.BasePath()), logfields.Force(opts.Force))

	defer func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
		b.recorder.ObserveBuildDuration(report.Duration)
		if report.Status.IsSuccess() {
			b.recorder.IncBuildOutcome(metrics.BuildSuccess)
		} else {
			b.recorder.IncBuildOutcome(metrics.BuildFailed)
		}
		b.recorder.IncUnresolvedLinks(report.UnresolvedLinks)
		log.Info("Build finished",
			slog.String("status", string(report.Status)),
			logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	}()

	if err := b.project.Load(); err != nil {
		return report, err
	}
	pages := b.project.Pages()

	// Every page is loaded up front so navigation labels see all flags.
	for _, pg := range pages {
		if err := pg.Load(); err != nil {
			report.FailedPage = pg.Name()
			return report, err
		}
	}
	report.PagesRead = len(pages)
	log.Info("Pages loaded", logfields.Count(len(pages)))

	for _, pg := range pages {
		if err := ctx.Err(); err != nil {
			report.Status = StatusCancelled
			return report, ferrors.WrapError(err, ferrors.CategoryBuild, "build cancelled").
				WithContext("page", pg.Name()).
				Build()
		}

		start := time.Now()
		written, err := pg.Process(opts.Force)
		b.recorder.ObservePageDuration(pg.Extension(), time.Since(start))
		if err != nil {
			b.recorder.IncPageResult(metrics.PageFailed)
			report.FailedPage = pg.Name()
			log.Error("Page failed", logfields.Page(pg.Name()), logfields.Error(err))
			return report, err
		}
		report.UnresolvedLinks += len(pg.UnresolvedLinks())
		if written {
			b.recorder.IncPageResult(metrics.PageWritten)
			report.PagesWritten = append(report.PagesWritten, pg.Name())
		} else {
			b.recorder.IncPageResult(metrics.PageUnchanged)
			log.Debug("Page unchanged", logfields.Page(pg.Name()))
		}
	}

	if opts.CopyStatic {
		copied, err := b.project.CopyStaticAssets(opts.Force)
		report.AssetsCopied = copied
		b.recorder.AddAssetsCopied(len(copied))
		if err != nil {
			return report, err
		}
	}

	report.Status = StatusSuccess
	return report, nil
}
