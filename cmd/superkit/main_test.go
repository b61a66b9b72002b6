package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/config"
)

const repoRoot = "../.."

func init() {
	gin.SetMode(gin.TestMode)
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func newModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/site\n\ngo 1.24\n"), 0o644))
	return dir
}

func TestAppsList(t *testing.T) {
	out, err := executeCommand(t, "", "apps", "list", "-C", repoRoot)
	require.NoError(t, err)

	assert.Contains(t, out, "posts")
	assert.Contains(t, out, "users")
}

func TestAppsListOutsideProject(t *testing.T) {
	_, err := executeCommand(t, "", "apps", "list", "-C", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apps/ or src/apps/")
}

func TestAppsInfo(t *testing.T) {
	out, err := executeCommand(t, "", "apps", "info", "posts", "-C", repoRoot)
	require.NoError(t, err)

	assert.Contains(t, out, "apps/posts")
	assert.Contains(t, out, "/posts/comments/{c_id}")
	assert.Contains(t, out, "controllers.go")
	assert.Contains(t, out, "└── comments.go")
}

func TestAppsInfoUnknown(t *testing.T) {
	_, err := executeCommand(t, "", "apps", "info", "missing", "-C", repoRoot)
	assert.Error(t, err)
}

func TestAppsDoctor(t *testing.T) {
	out, err := executeCommand(t, "", "apps", "doctor", "-C", repoRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "2 healthy, 0 critical, 0 warnings")
}

func TestAppsDoctorCritical(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "apps", "broken"), 0o755))

	out, err := executeCommand(t, "", "apps", "doctor", "-C", dir)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "critical:")
}

func TestAppsInitAndRemove(t *testing.T) {
	dir := newModule(t)

	out, err := executeCommand(t, "", "apps", "init", "blog", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created app")
	assert.FileExists(t, filepath.Join(dir, "apps", "blog", "app.go"))
	assert.FileExists(t, filepath.Join(dir, "apps", "apps.go"))

	_, err = executeCommand(t, "", "apps", "init", "blog", "-C", dir)
	assert.Error(t, err)

	out, err = executeCommand(t, "n\n", "apps", "remove", "blog", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.DirExists(t, filepath.Join(dir, "apps", "blog"))

	out, err = executeCommand(t, "", "apps", "remove", "blog", "--yes", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed app")
	assert.NoDirExists(t, filepath.Join(dir, "apps", "blog"))
}

func TestRunRejectsInvalidPort(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "apps"), 0o755))

	_, err := executeCommand(t, "", "run", "--port", "70000", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestRunReloadFlagsExclusive(t *testing.T) {
	_, err := executeCommand(t, "", "run", "--reload", "--no-reload", "-C", t.TempDir())
	assert.Error(t, err)
}

func TestRenderBanner(t *testing.T) {
	cfg := config.Default()
	out := renderBanner(cfg, []string{"posts", "users"})

	assert.Contains(t, out, "SuperKit App")
	assert.Contains(t, out, "http://127.0.0.1:8000")
	assert.Contains(t, out, "http://127.0.0.1:8000/docs")
	assert.Contains(t, out, "posts, users")

	cfg.App.DocsURL = ""
	out = renderBanner(cfg, nil)
	assert.NotContains(t, out, "/docs")
	assert.Contains(t, out, "none")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "Delete?"))
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 3, exitCode(&ExitError{Code: 3}, &buf))
	assert.Empty(t, buf.String())

	assert.Equal(t, 1, exitCode(errors.New("boom"), &buf))
	assert.Contains(t, buf.String(), "boom")
}
