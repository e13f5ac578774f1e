package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// LogLevelEnv overrides the configured log level unless -v or -d is given.
const LogLevelEnv = "SITEBUILDER_LOG_LEVEL"

// stdout receives user-facing command output.
var stdout io.Writer = os.Stdout

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: <dir>/sitebuilder.yaml)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Debug   bool             `short:"d" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init      InitCmd      `cmd:"" help:"Create a project skeleton with a default template and configuration"`
	Build     BuildCmd     `cmd:"" help:"Render every page into the output directory"`
	Renderers RenderersCmd `cmd:"" help:"List registered content extensions and their renderers"`
}

// AfterApply runs after flag parsing; sets up logging before any config is read.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	configureLogging(c, config.Default().Logging)
	return nil
}

// level resolves the effective level: -d, then -v, then the environment,
// then the configuration.
func (c *CLI) level(cfg config.LoggingConfig) slog.Level {
	switch {
	case c.Debug:
		return slog.LevelDebug
	case c.Verbose:
		return slog.LevelInfo
	}
	if env := config.NormalizeLogLevel(os.Getenv(LogLevelEnv)); env != "" {
		return env.SlogLevel()
	}
	return cfg.Level.SlogLevel()
}

func configureLogging(root *CLI, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: root.level(cfg)}
	var handler slog.Handler
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// loadProject reads the configuration for dir, reconfigures logging and
// returns a project wired to a renderer registry.
func loadProject(g *Global, root *CLI, dir string) (*site.Project, *config.Config, error) {
	cfg, err := config.LoadProject(dir, root.Config)
	if err != nil {
		return nil, nil, err
	}
	logger := configureLogging(root, cfg.Logging)
	if g != nil {
		g.Logger = logger
	}

	registry, err := render.NewDefaultRegistry(render.Options{
		Markdown: render.MarkdownOptions{
			Extensions:    cfg.Render.Markdown.Extensions,
			HardWraps:     cfg.Render.Markdown.HardWraps,
			Unsafe:        cfg.Render.Markdown.Unsafe,
			AutoHeadingID: cfg.Render.Markdown.AutoHeadingID,
		},
		TextileCommand: cfg.Render.Textile.Command,
		TextileArgs:    cfg.Render.Textile.Args,
		PluginDir:      resolve(dir, cfg.Render.PluginDir),
	})
	if err != nil {
		return nil, nil, err
	}

	project := site.NewProject(dir, registry, site.Options{
		TemplateExtension: cfg.Templates.Extension,
		DefaultTemplate:   cfg.Templates.Default,
		FrontMatter:       cfg.Content.FrontMatter,
		Includes:          cfg.Content.Includes,
	})
	slog.Debug("Project configured", logfields.Path(project.BasePath()), logfields.Count(len(registry.Extensions())))
	return project, cfg, nil
}

// resolve joins a config path onto the project directory unless absolute.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
