package dispatcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/cpm/internal/core/ports/mocks"
	"go.trai.ch/cpm/internal/engine/dispatcher"
	"go.uber.org/mock/gomock"
)

type dispatcherTestMocks struct {
	backend *mocks.MockBuildBackend
	scripts *mocks.MockScriptRunner
	headers *mocks.MockHeaderInstaller
	logger  *mocks.MockLogger
}

func setupDispatcherTest(t *testing.T) (*dispatcher.Dispatcher, dispatcherTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := dispatcherTestMocks{
		backend: mocks.NewMockBuildBackend(ctrl),
		scripts: mocks.NewMockScriptRunner(ctrl),
		headers: mocks.NewMockHeaderInstaller(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	d := dispatcher.NewDispatcher(m.backend, m.scripts, m.headers, m.logger)
	return d, m
}

func fetched(name string, build domain.BuildType) domain.FetchedPackage {
	return domain.FetchedPackage{
		Package: domain.Package{
			Name:    name,
			Version: "1.0.0",
			Build:   build,
		},
		SourceDir: "/cache/src/" + name + "/source",
	}
}

func TestDispatcher_CMakeSuccess(t *testing.T) {
	d, m := setupDispatcherTest(t)
	pkg := fetched("fmt", domain.BuildType{Kind: domain.BuildCMake})

	m.backend.EXPECT().
		BuildCMake(gomock.Any(), "fmt", pkg.SourceDir).
		Return(0, nil)

	err := d.Build(context.Background(), pkg, "/cache/include/fmt")
	require.NoError(t, err)
	require.Equal(t, dispatcher.StatusInstalled, d.Status("fmt"))
}

func TestDispatcher_CMakeNonZeroStatus(t *testing.T) {
	d, m := setupDispatcherTest(t)
	pkg := fetched("fmt", domain.BuildType{Kind: domain.BuildCMake})

	m.backend.EXPECT().
		BuildCMake(gomock.Any(), "fmt", pkg.SourceDir).
		Return(2, nil)

	err := d.Build(context.Background(), pkg, "/cache/include/fmt")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.Equal(t, dispatcher.StatusFailed, d.Status("fmt"))
}

func TestDispatcher_CMakeInvocationFailure(t *testing.T) {
	d, m := setupDispatcherTest(t)
	pkg := fetched("fmt", domain.BuildType{Kind: domain.BuildCMake})

	m.backend.EXPECT().
		BuildCMake(gomock.Any(), "fmt", pkg.SourceDir).
		Return(-1, errors.New("cmake: executable not found"))

	err := d.Build(context.Background(), pkg, "/cache/include/fmt")
	require.Error(t, err)
	require.Equal(t, dispatcher.StatusFailed, d.Status("fmt"))
}

func TestDispatcher_HeaderOnlySkipsBackend(t *testing.T) {
	// No EXPECT on backend or scripts: any call fails the test.
	d, m := setupDispatcherTest(t)
	pkg := fetched("span-lite", domain.BuildType{Kind: domain.BuildHeaderOnly})

	m.headers.EXPECT().
		Install("span-lite", pkg.SourceDir, "/cache/include/span-lite").
		Return(nil)

	err := d.Build(context.Background(), pkg, "/cache/include/span-lite")
	require.NoError(t, err)
	require.Equal(t, dispatcher.StatusInstalled, d.Status("span-lite"))
}

func TestDispatcher_HeaderInstallFailure(t *testing.T) {
	d, m := setupDispatcherTest(t)
	pkg := fetched("span-lite", domain.BuildType{Kind: domain.BuildHeaderOnly})

	m.headers.EXPECT().
		Install("span-lite", pkg.SourceDir, "/cache/include/span-lite").
		Return(domain.ErrHeaderInstallFailed)

	err := d.Build(context.Background(), pkg, "/cache/include/span-lite")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrHeaderInstallFailed)
	require.Equal(t, dispatcher.StatusFailed, d.Status("span-lite"))
}

func TestDispatcher_CustomRunsDeclaredScript(t *testing.T) {
	d, m := setupDispatcherTest(t)
	pkg := fetched("openssl", domain.BuildType{
		Kind:   domain.BuildCustom,
		Script: "./config && make install",
	})

	m.scripts.EXPECT().
		Run(gomock.Any(), "openssl", "./config && make install", pkg.SourceDir).
		Return(nil)

	err := d.Build(context.Background(), pkg, "/cache/include/openssl")
	require.NoError(t, err)
	require.Equal(t, dispatcher.StatusInstalled, d.Status("openssl"))
}

func TestDispatcher_CustomScriptFailure(t *testing.T) {
	d, m := setupDispatcherTest(t)
	pkg := fetched("openssl", domain.BuildType{
		Kind:   domain.BuildCustom,
		Script: "exit 1",
	})

	m.scripts.EXPECT().
		Run(gomock.Any(), "openssl", "exit 1", pkg.SourceDir).
		Return(errors.New("exit status 1"))

	err := d.Build(context.Background(), pkg, "/cache/include/openssl")
	require.Error(t, err)
	require.Contains(t, err.Error(), "build failed")
	require.Equal(t, dispatcher.StatusFailed, d.Status("openssl"))
}

func TestDispatcher_UnknownBuildType(t *testing.T) {
	d, _ := setupDispatcherTest(t)
	pkg := fetched("weird", domain.BuildType{Kind: "meson"})

	err := d.Build(context.Background(), pkg, "/cache/include/weird")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrUnknownBuildType)
	require.Equal(t, dispatcher.StatusFailed, d.Status("weird"))
}

func TestDispatcher_StatusDefaultsToFetched(t *testing.T) {
	d, _ := setupDispatcherTest(t)
	require.Equal(t, dispatcher.StatusFetched, d.Status("never-seen"))
}
