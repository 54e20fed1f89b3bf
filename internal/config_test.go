package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/carecrm")
	t.Setenv("STORAGE_PROVIDER", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "local", cfg.StorageProvider)
	assert.Equal(t, 12*time.Hour, cfg.WorkspaceIdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.WorkspaceSweepInterval)
	assert.Equal(t, 10000, cfg.WorkspaceMax)
	assert.Equal(t, 120, cfg.SelectionRateLimit)
	assert.False(t, cfg.IsSecure())
}

func TestNewConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestNewConfig_S3RequiresCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/carecrm")
	t.Setenv("STORAGE_PROVIDER", "s3")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "S3_SECRET_ACCESS_KEY")

	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_BUCKET_NAME", "photos")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "photos", cfg.S3BucketName)
}

func TestNewConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown storage", map[string]string{"STORAGE_PROVIDER": "ftp"}, "STORAGE_PROVIDER"},
		{"short ttl", map[string]string{"WORKSPACE_IDLE_TTL": "10s"}, "WORKSPACE_IDLE_TTL"},
		{"no workspaces", map[string]string{"WORKSPACE_MAX": "0"}, "WORKSPACE_MAX"},
		{"zero rate limit", map[string]string{"SELECTION_RATE_LIMIT": "0"}, "SELECTION_RATE_LIMIT"},
		{"no workers", map[string]string{"WORKER_CONCURRENCY": "0"}, "WORKER_CONCURRENCY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/carecrm")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGetEnvHelpers_FallBackOnParseError(t *testing.T) {
	t.Setenv("CARECRM_TEST_INT", "twelve")
	t.Setenv("CARECRM_TEST_DURATION", "soon")
	t.Setenv("CARECRM_TEST_BOOL", "maybe")

	assert.Equal(t, 12, getEnvInt("CARECRM_TEST_INT", 12))
	assert.Equal(t, time.Minute, getEnvDuration("CARECRM_TEST_DURATION", time.Minute))
	assert.True(t, getEnvBool("CARECRM_TEST_BOOL", true))
}
