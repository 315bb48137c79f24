// Package buildsys implements the build-strategy adapters: the CMake build
// backend, the custom script runner and header-only installation.
package buildsys

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// cmakeBin is a variable so tests can point the backend at a stub.
var cmakeBin = "cmake"

// CMakeBackend implements ports.BuildBackend by driving the external cmake
// toolchain. The toolchain's internals (compiler detection, ABI probing) are
// its own concern; only the exit status crosses this boundary.
type CMakeBackend struct {
	logger ports.Logger
}

// NewCMakeBackend creates a new CMakeBackend.
func NewCMakeBackend(logger ports.Logger) *CMakeBackend {
	return &CMakeBackend{logger: logger}
}

// BuildCMake configures and builds the source tree, returning the toolchain's
// integer status. A non-nil error means cmake could not be invoked at all.
func (b *CMakeBackend) BuildCMake(ctx context.Context, name, srcDir string) (int, error) {
	buildDir := filepath.Join(srcDir, "build")
	if err := os.MkdirAll(buildDir, domain.DirPerm); err != nil {
		return -1, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	if status, err := b.runStep(ctx, name, "configure", cmakeBin, "-S", srcDir, "-B", buildDir); err != nil || status != 0 {
		return status, err
	}
	return b.runStep(ctx, name, "build", cmakeBin, "--build", buildDir)
}

func (b *CMakeBackend) runStep(ctx context.Context, name, step, bin string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec // Arguments come from the trusted cache layout
	cmd.Stdout = &logWriter{logger: b.logger, name: name}
	cmd.Stderr = &logWriter{logger: b.logger, name: name}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		wrapped := zerr.Wrap(err, "failed to invoke cmake")
		return -1, zerr.With(wrapped, "step", step)
	}
	return 0, nil
}
