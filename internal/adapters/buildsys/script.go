package buildsys

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// ScriptRunner implements ports.ScriptRunner using os/exec.
type ScriptRunner struct {
	logger ports.Logger
}

// NewScriptRunner creates a new ScriptRunner.
func NewScriptRunner(logger ports.Logger) *ScriptRunner {
	return &ScriptRunner{logger: logger}
}

// Run executes the script via `sh -c` with the package source directory as
// working directory. The subprocess is scoped to the context: cancellation
// kills it.
func (r *ScriptRunner) Run(ctx context.Context, name, script, workDir string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", script) //nolint:gosec // Script content is the descriptor's declared build step
	cmd.Dir = workDir
	cmd.Env = os.Environ()
	cmd.Stdout = &logWriter{logger: r.logger, name: name}
	cmd.Stderr = &logWriter{logger: r.logger, name: name}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.Wrap(err, "build script failed")
		return zerr.With(wrapped, "exit_code", exitCode)
	}
	return nil
}

// logWriter forwards subprocess output lines to the structured logger.
type logWriter struct {
	logger ports.Logger
	name   string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		idx := bytes.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}
		line := string(w.buf[:idx])
		w.buf = w.buf[idx+1:]
		if line != "" {
			w.logger.Info(line, "package", w.name)
		}
	}
	return len(p), nil
}
