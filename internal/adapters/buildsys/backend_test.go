package buildsys

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/cpm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// stubCMake installs a shell script in place of the cmake binary. Each
// invocation appends its arguments to a log file and exits with the given
// code.
func stubCMake(t *testing.T, exitCode string) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "cmake")
	argLog := filepath.Join(dir, "args.log")

	script := "#!/bin/sh\necho \"$@\" >> " + argLog + "\nexit " + exitCode + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	prev := cmakeBin
	cmakeBin = bin
	t.Cleanup(func() { cmakeBin = prev })

	return argLog
}

func testLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	return logger
}

func TestCMakeBackend_ConfigureThenBuild(t *testing.T) {
	argLog := stubCMake(t, "0")
	srcDir := t.TempDir()

	b := NewCMakeBackend(testLogger(t))
	status, err := b.BuildCMake(context.Background(), "fmt", srcDir)
	require.NoError(t, err)
	require.Zero(t, status)

	buildDir := filepath.Join(srcDir, "build")
	require.DirExists(t, buildDir)

	data, err := os.ReadFile(argLog)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "-S "+srcDir+" -B "+buildDir, lines[0])
	require.Equal(t, "--build "+buildDir, lines[1])
}

func TestCMakeBackend_NonZeroStatusStopsAfterConfigure(t *testing.T) {
	argLog := stubCMake(t, "3")
	srcDir := t.TempDir()

	b := NewCMakeBackend(testLogger(t))
	status, err := b.BuildCMake(context.Background(), "fmt", srcDir)
	require.NoError(t, err, "a failing toolchain is a status, not an invocation error")
	require.Equal(t, 3, status)

	data, err := os.ReadFile(argLog)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1, "build step must not run")
}

func TestCMakeBackend_MissingBinary(t *testing.T) {
	prev := cmakeBin
	cmakeBin = filepath.Join(t.TempDir(), "no-such-cmake")
	t.Cleanup(func() { cmakeBin = prev })

	b := NewCMakeBackend(testLogger(t))
	status, err := b.BuildCMake(context.Background(), "fmt", t.TempDir())
	require.Error(t, err)
	require.Equal(t, -1, status)
}

func TestLogWriter_SplitsLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info("first", "package", "pkg")
	logger.EXPECT().Info("second", "package", "pkg")

	w := &logWriter{logger: logger, name: "pkg"}
	_, err := w.Write([]byte("fir"))
	require.NoError(t, err)
	_, err = w.Write([]byte("st\nsecond\npartial"))
	require.NoError(t, err)
}
