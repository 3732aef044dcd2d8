package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "QR_MAX_SIZE", "QR_DEFAULT_SIZE", "QR_DEFAULT_MARGIN", "IMAGE_MAX_EDGE", "IMAGE_BUDGET_BYTES", "UPLOAD_MAX_BYTES"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	assert.Equal(t, "production", c.AppEnv)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 2048, c.MaxSize)
	assert.Equal(t, 300, c.DefaultSize)
	assert.Equal(t, 2, c.DefaultMargin)
	assert.Equal(t, 48, c.ImageMaxEdge)
	assert.Equal(t, 1000, c.ImageBudget)
	assert.Equal(t, int64(5<<20), c.UploadMaxBytes)
	assert.False(t, c.Development())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9090")
	t.Setenv("QR_MAX_SIZE", "512")
	t.Setenv("QR_DEFAULT_SIZE", "1024")
	t.Setenv("IMAGE_BUDGET_BYTES", "not-a-number")
	t.Setenv("QR_DEFAULT_MARGIN", "-4")

	c := FromEnv()
	assert.True(t, c.Development())
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, 512, c.MaxSize)
	// clamped to the maximum
	assert.Equal(t, 512, c.DefaultSize)
	assert.Equal(t, 1000, c.ImageBudget)
	assert.Equal(t, 2, c.DefaultMargin)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\nIMAGE_MAX_EDGE=32\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// godotenv never overrides variables that are already set
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("IMAGE_MAX_EDGE", "")
	os.Unsetenv("IMAGE_MAX_EDGE")

	c := Load()
	assert.Equal(t, "7070", c.Port)
	assert.Equal(t, 32, c.ImageMaxEdge)
}
