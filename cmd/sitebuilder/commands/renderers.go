package commands

import (
	"fmt"
	"text/tabwriter"
)

// RenderersCmd implements the 'renderers' command.
type RenderersCmd struct {
	Dir string `arg:"" name:"dir" help:"Project directory" type:"path" default:"."`
}

func (r *RenderersCmd) Run(g *Global, root *CLI) error {
	project, _, err := loadProject(g, root, r.Dir)
	if err != nil {
		return err
	}
	reg := project.Registry()
	names := reg.Describe()

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "EXTENSION\tRENDERER")
	for _, ext := range reg.Extensions() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", ext, names[ext])
	}
	return tw.Flush()
}
