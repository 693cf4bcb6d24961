package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersManifest = `
config:
  actor_variable: admin
models:
  App\Models\User: {}
actions:
  - controller: App\Http\Controllers\UserController
    method: show
    model: App\Models\User
    route:
      name: users.show
      parameters: [user]
      middleware: [web, auth]
  - controller: App\Http\Controllers\UserController
    method: index
    model: App\Models\User
    route:
      name: users.index
      middleware: [api, auth:sanctum]
`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Arguments(t *testing.T) {
	t.Run("help flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "-help")
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "Usage:")
		assert.Contains(t, stderr, "Test Scaffold Generator")
		assert.Contains(t, stderr, "-super-admin")
		assert.Contains(t, stderr, "manifest-paths")
	})

	t.Run("no arguments", func(t *testing.T) {
		code, _, stderr := runCLI(t)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "At least one manifest path is required")
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, _ := runCLI(t, "-module", "x")
		assert.Equal(t, 2, code)
	})

	t.Run("bad framework version", func(t *testing.T) {
		code, _, stderr := runCLI(t, "-framework", "latest", "blog.yaml")
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr, "'latest' is not a framework version")
	})

	t.Run("nonexistent manifest", func(t *testing.T) {
		code, _, stderr := runCLI(t, filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "ERROR: Test Generation Failed")
		assert.Contains(t, stderr, "FileSystemError")
	})
}

func TestRun_Generate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(usersManifest), 0o644))
	outDir := filepath.Join(dir, "generated")

	code, stdout, stderr := runCLI(t, "-out", outDir, "-super-admin", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "testgen: Test Scaffold Generator")
	assert.Contains(t, stdout, "Fragments generated: 2")
	assert.Contains(t, stdout, "testgen: Generation complete!")

	show, err := os.ReadFile(filepath.Join(outDir, "UserController_show.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(show), "$admin->assignRole('super-admin');")
	assert.Contains(t, string(show), "actingAs($admin)->")

	index, err := os.ReadFile(filepath.Join(outDir, "UserController_index.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Sanctum::actingAs($admin, ['*']);")

	code, stdout, _ = runCLI(t, "-clean", outDir)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Removed 2 generated fragment file(s)")
	assert.NoFileExists(t, filepath.Join(outDir, "UserController_show.txt"))
}

func TestRun_Quiet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(usersManifest), 0o644))

	code, stdout, _ := runCLI(t, "-quiet", "-out", filepath.Join(dir, "out"), path)
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
}
