package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// ExecRenderer delegates rendering to an external command: source on stdin,
// HTML on stdout. The command is resolved on every call so a converter
// installed mid-session is picked up and a missing one is reported by name.
type ExecRenderer struct {
	name    string
	command string
	args    []string
}

// NewExecRenderer creates a renderer that runs command with args.
func NewExecRenderer(name, command string, args ...string) *ExecRenderer {
	return &ExecRenderer{name: name, command: command, args: args}
}

// NewTextileRenderer runs an external Textile converter.
func NewTextileRenderer(command string, args ...string) *ExecRenderer {
	if command == "" {
		command = "textile"
	}
	return NewExecRenderer("textile", command, args...)
}

func (r *ExecRenderer) Name() string { return r.name }

// Command returns the configured executable.
func (r *ExecRenderer) Command() string { return r.command }

func (r *ExecRenderer) RenderToHTML(doc Document, source string) (string, error) {
	path, err := exec.LookPath(r.command)
	if err != nil {
		return "", ferrors.RenderError(r.name+" rendering not available").
			WithCause(fmt.Errorf("%w: %s rendering needs %q: %w", ErrRendererUnavailable, r.name, r.command, err)).
			WithContext("page", doc.Name()).
			WithContext("command", r.command).
			Build()
	}

	// #nosec G204 -- command comes from project config or the project's plugin directory
	cmd := exec.Command(path, r.args...)
	cmd.Stdin = strings.NewReader(source)
	cmd.Env = append(os.Environ(),
		"SITEBUILDER_PAGE="+doc.Name(),
		"SITEBUILDER_EXTENSION="+doc.Extension(),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", ferrors.RenderError(r.name+" converter failed").
			WithCause(err).
			WithContext("page", doc.Name()).
			WithContext("command", r.command).
			WithContext("stderr", strings.TrimSpace(stderr.String())).
			Build()
	}
	return stdout.String(), nil
}
