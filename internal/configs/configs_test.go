package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("CLIENT_URL", "")
	t.Setenv("PUBLIC_DIR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, AnyOrigin, cfg.ClientURL)
	assert.True(t, cfg.AllowsAnyOrigin())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("CLIENT_URL", "https://code.example.com/")
	t.Setenv("PUBLIC_DIR", "/srv/www")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "/srv/www", cfg.PublicDir)
	assert.Equal(t, "https://code.example.com", cfg.ClientURL)
	assert.False(t, cfg.AllowsAnyOrigin())
}

func TestLoadConfig_RejectsBadPort(t *testing.T) {
	for _, port := range []string{"abc", "80", "70000"} {
		t.Run(port, func(t *testing.T) {
			t.Setenv("PORT", port)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNormalizeOrigin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "http://localhost:5173", NormalizeOrigin(" http://localhost:5173/ "))
	assert.Equal(t, "http://localhost:5173", NormalizeOrigin("http://localhost:5173"))
	assert.Equal(t, "*", NormalizeOrigin("*"))
	assert.Equal(t, "", NormalizeOrigin(""))
}
