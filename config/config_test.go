package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingPostgresSection(t *testing.T) {
	t.Chdir(t.TempDir())
	content := "env:\n  env: test\nsecretKey:\n  access: secret\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0o600))

	cfg, err := New()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "postgres")
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	content := "env:\n  env: test\nsecretKey:\n  access: secret\npostgres:\n  master:\n    host: localhost\n    port: \"5432\"\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0o600))

	cfg, err := New()
	require.NoError(t, err)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultRefreshTokenTTL, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
}
