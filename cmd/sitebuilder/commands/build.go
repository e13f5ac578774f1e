package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dir        string `arg:"" name:"dir" help:"Project directory" type:"path" default:"."`
	Force      bool   `short:"f" help:"Rewrite every page and copy every static file"`
	CopyStatic bool   `short:"s" name:"copy-static" help:"Copy static assets into the output directory"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	project, cfg, err := loadProject(g, root, b.Dir)
	if err != nil {
		return err
	}
	opts := build.Options{
		Force:      b.Force || cfg.Build.Force,
		CopyStatic: b.CopyStatic || cfg.Build.CopyStatic,
	}

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		promReg  *prometheus.Registry
	)
	if cfg.Metrics.Textfile != "" {
		promReg = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(promReg)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report, runErr := build.NewBuilder(project, recorder).Run(ctx, opts)

	if promReg != nil {
		path := resolve(b.Dir, cfg.Metrics.Textfile)
		if err := metrics.WriteTextfile(promReg, path); err != nil {
			slog.Warn("Failed to write metrics", logfields.Path(path), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}
	printReport(stdout, report, opts.CopyStatic)
	return nil
}

func printReport(w io.Writer, r *build.Report, copyStatic bool) {
	_, _ = fmt.Fprintf(w, "%d pages read\n", r.PagesRead)
	_, _ = fmt.Fprintf(w, "%d output pages written\n", len(r.PagesWritten))
	if copyStatic {
		_, _ = fmt.Fprintf(w, "%d static files copied\n", len(r.AssetsCopied))
	}
	if r.UnresolvedLinks > 0 {
		_, _ = fmt.Fprintf(w, "%d unresolved links\n", r.UnresolvedLinks)
	}
}
