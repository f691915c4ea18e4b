// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "MONGO_DATABASE", "CATALOG_SEED", "TOKEN_SECRET"} {
		t.Setenv(k, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("CATALOG_SEED", "seed.yaml")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://test", cfg.DatabaseURL)
	assert.Equal(t, DatabasePostgres, cfg.DatabaseType)
	assert.Equal(t, "test-secret", cfg.TokenSecret)
	assert.Equal(t, "seed.yaml", cfg.CatalogSeed)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-token-secret", "s1", "-grace", "3s"})
	require.NoError(t, err)

	// CLI should override env
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ShutdownGrace)
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-token-secret", "s1"})
	require.NoError(t, err)

	assert.Equal(t, 3318, cfg.Port)
	assert.Equal(t, DatabaseSQLite, cfg.DatabaseType)
	assert.Equal(t, "carnaval", cfg.MongoDatabase)
	assert.Empty(t, cfg.CatalogSeed)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database url", nil, []string{"-token-secret", "s1"}},
		{"missing token secret", nil, []string{"-d", "file:test.db"}},
		{"bad port env", map[string]string{"PORT": "abc"}, []string{"-d", "file:test.db", "-token-secret", "s1"}},
		{"unknown database type", nil, []string{"-d", "x", "-t", "oracle", "-token-secret", "s1"}},
		{"unknown flag", nil, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_IssueTokenWithoutDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s1")

	cfg, err := ParseFlags([]string{"-issue-token", "root:admin", "-token-ttl", "2h"})
	require.NoError(t, err)

	assert.Equal(t, "root:admin", cfg.IssueToken)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestParseFlags_IssueTokenNeedsSecret(t *testing.T) {
	clearEnv(t)

	_, err := ParseFlags([]string{"-issue-token", "ana"})
	assert.Error(t, err)
}

func TestParseFlags_TokenTTLDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-token-secret", "s1"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)

	_, err = ParseFlags([]string{"-d", "file:test.db", "-token-secret", "s1", "-token-ttl", "0s"})
	assert.Error(t, err)
}
