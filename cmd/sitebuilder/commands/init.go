package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir   string `arg:"" name:"dir" help:"Project directory to create" type:"path" default:"."`
	Force bool   `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	return RunInit(i.Dir, root.Config, i.Force)
}

// RunInit creates the project layout under dir and writes an example
// configuration unless one exists and force is unset. A kept configuration
// decides the default template's name and extension.
func RunInit(dir, configPath string, force bool) error {
	_, _ = fmt.Fprintf(stdout, "Initializing project in %s\n", dir)

	if configPath == "" {
		configPath = filepath.Join(dir, config.FileName)
	}
	_, statErr := os.Stat(configPath)
	keep := statErr == nil && !force

	opts := site.DefaultOptions()
	if keep {
		cfg, err := config.LoadProject(dir, configPath)
		if err != nil {
			return err
		}
		opts.TemplateExtension = cfg.Templates.Extension
		opts.DefaultTemplate = cfg.Templates.Default
	}
	if err := site.NewProject(dir, nil, opts).Init(); err != nil {
		return err
	}

	if keep {
		_, _ = fmt.Fprintf(stdout, "Keeping existing configuration %s\n", configPath)
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Writing configuration to %s\n", configPath)
	return config.Init(configPath, force)
}
