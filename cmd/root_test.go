package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbaldus/shorten/config"
)

// newProvider starts a fake shortening endpoint counting its calls.
func newProvider(calls *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		_, _ = fmt.Fprintln(w, "https://is.gd/AbCd1")
	}))
}

func writeTestConfig(t *testing.T, endpoint string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf("cache:\n  path: %s\nclient:\n  endpoint: %s\n",
		filepath.Join(dir, "cache"), endpoint)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execRoot runs the root command with the given stdin and arguments,
// returning stdout, stderr and the execution error.
func execRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clipboardArg, selectionArg, debugArg, selfTestArg = false, false, false, false
	configArg = config.DefaultPath

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func stubTTY(t *testing.T, tty bool) *notifyRecorder {
	t.Helper()
	rec := new(notifyRecorder)
	origNotify, origIsTTY := notifyFn, isTTY
	notifyFn = rec.send
	isTTY = func(*os.File) bool { return tty }
	t.Cleanup(func() { notifyFn, isTTY = origNotify, origIsTTY })
	return rec
}

func TestRootArgument(t *testing.T) {
	var calls int
	ts := newProvider(&calls)
	defer ts.Close()
	cfg := writeTestConfig(t, ts.URL)
	stubTTY(t, true)

	out, _, err := execRoot(t, "", "--config", cfg, "https://www.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://is.gd/AbCd1\n", out)
	assert.Equal(t, 1, calls)

	// the second invocation is served from the cache
	out, _, err = execRoot(t, "", "--config", cfg, "https://www.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://is.gd/AbCd1\n", out)
	assert.Equal(t, 1, calls)
}

func TestRootPipedStdin(t *testing.T) {
	var calls int
	ts := newProvider(&calls)
	defer ts.Close()
	cfg := writeTestConfig(t, ts.URL)
	rec := stubTTY(t, false)

	out, _, err := execRoot(t, "https://www.example.com\n", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://is.gd/AbCd1\n", out)
	assert.Equal(t, 1, calls)

	// stdout is not a terminal, the result was also shown as a notification
	assert.Equal(t, []string{"https://is.gd/AbCd1"}, rec.bodies)
}

func TestRootInvalidURL(t *testing.T) {
	var calls int
	ts := newProvider(&calls)
	defer ts.Close()
	cfg := writeTestConfig(t, ts.URL)
	rec := stubTTY(t, false)

	_, errOut, err := execRoot(t, "", "--config", cfg, "not a url")
	assert.Error(t, err)
	assert.Contains(t, errOut, "invalid url")
	assert.Contains(t, errOut, "Usage:")
	assert.Zero(t, calls)
	assert.Len(t, rec.bodies, 1)
}

func TestRootProviderFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()
	cfg := writeTestConfig(t, ts.URL)
	stubTTY(t, true)

	_, errOut, err := execRoot(t, "", "--config", cfg, "https://www.example.com")
	assert.Error(t, err)
	assert.Contains(t, errOut, "503")
	// bad input shows the help text, a provider failure does not
	assert.NotContains(t, errOut, "Usage:")
}

func TestRootAlreadyShort(t *testing.T) {
	var calls int
	ts := newProvider(&calls)
	defer ts.Close()
	cfg := writeTestConfig(t, ts.URL)
	stubTTY(t, true)

	host := strings.TrimPrefix(ts.URL, "http://")
	out, _, err := execRoot(t, "", "--config", cfg, "http://"+host+"/AbCd1")
	require.NoError(t, err)
	assert.Equal(t, "http://"+host+"/AbCd1\n", out)
	assert.Zero(t, calls)
}

func TestRootSelfTest(t *testing.T) {
	var calls int
	ts := newProvider(&calls)
	defer ts.Close()
	cfg := writeTestConfig(t, ts.URL)
	stubTTY(t, true)

	out, _, err := execRoot(t, "", "--config", cfg, "--self-test")
	require.NoError(t, err)
	assert.Equal(t, "https://is.gd/AbCd1\n", out)
	assert.Equal(t, 1, calls)
}

func TestRootUnusableCachePath(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	var calls int
	ts := newProvider(&calls)
	defer ts.Close()

	dir := t.TempDir()
	readonly := filepath.Join(dir, "ro")
	require.NoError(t, os.Mkdir(readonly, 0o500))
	cfgPath := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf("cache:\n  path: %s\nclient:\n  endpoint: %s\n",
		filepath.Join(readonly, "cache"), ts.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	stubTTY(t, true)

	// shortening still works without a cache, it just never hits
	for i := 1; i <= 2; i++ {
		out, _, err := execRoot(t, "", "--config", cfgPath, "https://www.example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://is.gd/AbCd1\n", out)
		assert.Equal(t, i, calls)
	}
}

func TestRootUnknownFlag(t *testing.T) {
	_, errOut, err := execRoot(t, "", "--bogus")
	assert.Error(t, err)
	assert.Contains(t, errOut, "unknown flag")
	assert.Contains(t, errOut, "Usage:")
}

func TestRootTooManyArgs(t *testing.T) {
	_, errOut, err := execRoot(t, "", "https://a.example.com", "https://b.example.com")
	assert.Error(t, err)
	assert.Contains(t, errOut, "accepts at most 1 arg")
}

func TestRootVersion(t *testing.T) {
	out, _, err := execRoot(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shorten")
}

func TestConfigGen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	_, _, err := execRoot(t, "", "config", "--gen", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	// refuses to overwrite
	_, _, err = execRoot(t, "", "config", "--gen", path)
	assert.Error(t, err)
}
