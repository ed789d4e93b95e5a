package importcheck_test

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/importcheck/pkg/importcheck"
	"github.com/vertti/importcheck/pkg/netguard"
	"github.com/vertti/importcheck/pkg/pyimport"
)

// Integration tests run the real interpreter. Unit tests in each package
// cover edge cases with mocks; these verify the probe end to end.

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(pyimport.DefaultPython); err != nil {
		t.Skip("python3 not available")
	}
}

// writeModules creates importable modules in a temp dir and returns an
// environment that puts it on PYTHONPATH.
func writeModules(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".py"), []byte(src), 0o600))
	}
	return append(os.Environ(), "PYTHONPATH="+dir)
}

func listen(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln.Addr().String()
}

func TestIntegration_StdlibUnderGuard(t *testing.T) {
	requirePython(t)

	release := netguard.Block()
	defer release()

	imp := &pyimport.Importer{Runner: &pyimport.RealRunner{}}
	summary := importcheck.Run(context.Background(), []string{"sys"}, imp, importcheck.Options{})

	require.Len(t, summary.Results, 1)
	assert.True(t, summary.Results[0].OK(), summary.Results[0].Message())
	assert.Equal(t, 0, summary.Failures)
}

func TestIntegration_MissingModule(t *testing.T) {
	requirePython(t)

	imp := &pyimport.Importer{Runner: &pyimport.RealRunner{}}
	summary := importcheck.Run(context.Background(), []string{"os_path_fake_pkg"}, imp, importcheck.Options{})

	require.Equal(t, 1, summary.Failures)
	result := summary.Results[0]
	assert.Equal(t, "No module named 'os_path_fake_pkg'", result.Message())

	var ie *importcheck.ImportError
	require.ErrorAs(t, result.Err, &ie)
	assert.Equal(t, "ModuleNotFoundError", ie.Kind)
	assert.Contains(t, ie.Traceback, "Traceback (most recent call last):")
}

func TestIntegration_ConnectDuringImport(t *testing.T) {
	requirePython(t)

	host, port, err := net.SplitHostPort(listen(t))
	require.NoError(t, err)
	env := writeModules(t, map[string]string{
		"phones_home": fmt.Sprintf("import socket\ns = socket.create_connection((%q, %s), timeout=5)\ns.close()\n", host, port),
	})

	imp := &pyimport.Importer{Env: env, Runner: &pyimport.RealRunner{}}

	_, err = imp.Import(context.Background(), "phones_home")
	require.NoError(t, err, "connect succeeds without the guard")

	release := netguard.Block()
	_, err = imp.Import(context.Background(), "phones_home")
	release()

	var ie *importcheck.ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "NetworkBlockedError", ie.Kind)
	assert.Equal(t, "Outbound network disabled for offline smoke test", ie.Message)

	_, err = imp.Import(context.Background(), "phones_home")
	assert.NoError(t, err, "guard released")
}

func TestIntegration_SocketConstructionAllowed(t *testing.T) {
	requirePython(t)

	env := writeModules(t, map[string]string{
		"introspects": "import socket\ns = socket.socket(socket.AF_INET, socket.SOCK_STREAM)\ns.close()\n",
	})
	imp := &pyimport.Importer{Env: env, BlockNetwork: true, Runner: &pyimport.RealRunner{}}

	_, err := imp.Import(context.Background(), "introspects")

	assert.NoError(t, err)
}

func TestIntegration_NoisyModuleAndVersion(t *testing.T) {
	requirePython(t)

	env := writeModules(t, map[string]string{
		"noisy": "print('loading noisy...')\n__version__ = '4.2.0'\n",
	})
	imp := &pyimport.Importer{Env: env, Runner: &pyimport.RealRunner{}}

	mod, err := imp.Import(context.Background(), "noisy")

	require.NoError(t, err)
	assert.Equal(t, "4.2.0", mod.Version)
}

func TestIntegration_OutputBelowSysStdout(t *testing.T) {
	requirePython(t)

	env := writeModules(t, map[string]string{
		"rawnoise": "import os\nos.write(1, b'[native] init')\n",
		"teardown": "import atexit, os\natexit.register(lambda: os.write(1, b'teardown\\n'))\n",
		"buffered": "import sys\nsys.stdout.write('no newline')\n__version__ = '1.0'\n",
	})
	imp := &pyimport.Importer{Env: env, Runner: &pyimport.RealRunner{}}

	summary := importcheck.Run(context.Background(), []string{"rawnoise", "teardown", "buffered"}, imp, importcheck.Options{})

	require.Len(t, summary.Results, 3)
	for _, r := range summary.Results {
		assert.True(t, r.OK(), "%s: %s", r.Name, r.Message())
	}
	assert.Equal(t, 0, summary.Failures)
}

func TestIntegration_TimeoutKillsSpawnedProcesses(t *testing.T) {
	requirePython(t)
	if runtime.GOOS == "windows" {
		t.Skip("needs sleep and process groups")
	}

	env := writeModules(t, map[string]string{
		"spawns": "import subprocess, time\nsubprocess.Popen(['sleep', '20'])\ntime.sleep(30)\n",
	})
	imp := &pyimport.Importer{Env: env, Runner: &pyimport.RealRunner{}}

	start := time.Now()
	summary := importcheck.Run(context.Background(), []string{"spawns"}, imp, importcheck.Options{Timeout: time.Second})
	elapsed := time.Since(start)

	require.Equal(t, 1, summary.Failures)
	assert.Equal(t, "import timed out after 1s", summary.Results[0].Message())
	assert.Less(t, elapsed, 10*time.Second)
}

func TestIntegration_InitializationError(t *testing.T) {
	requirePython(t)

	env := writeModules(t, map[string]string{
		"broken": "raise RuntimeError('CUDA driver version is insufficient')\n",
	})
	imp := &pyimport.Importer{Env: env, Runner: &pyimport.RealRunner{}}

	_, err := imp.Import(context.Background(), "broken")

	var ie *importcheck.ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "RuntimeError", ie.Kind)
	assert.Equal(t, "CUDA driver version is insufficient", ie.Message)
}
