package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/slate/internal/config"
	"github.com/dyluth/slate/pkg/edgeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_FreshDirectory(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Initialize(dir, false))

	for _, name := range []string{ConfigFile, EdgeConfigFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm(), name)
	}
}

func TestInitialize_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644))

	err := Initialize(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace already initialized")

	content, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, "old content", string(content))
}

func TestInitialize_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644))

	require.NoError(t, Initialize(dir, true))

	content, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `version: "1.0"`)
}

func TestInitialize_TemplatesLoad(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SLATE_PASSWORD", "secret")

	dir := t.TempDir()
	require.NoError(t, Initialize(dir, false))

	cfg, err := config.Load(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "secret", cfg.Auth.Password)
	assert.Equal(t, config.DefaultMaxTabs, cfg.App.MaxTabs)
	assert.Equal(t, EdgeConfigFile, cfg.EdgeConfig.File)

	src, err := edgeconfig.LoadStaticSource(filepath.Join(dir, EdgeConfigFile))
	require.NoError(t, err)
	client := edgeconfig.NewClient(src)
	ctx := context.Background()
	assert.Equal(t, "Hello from slate!", client.GetGreeting(ctx))
	assert.True(t, client.GetFeatureFlag(ctx, "markdown_preview"))
	assert.False(t, client.GetFeatureFlag(ctx, "live_sync"))
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf)
	assert.Contains(t, buf.String(), "slate.yml")
	assert.Contains(t, buf.String(), "slate serve")
}
