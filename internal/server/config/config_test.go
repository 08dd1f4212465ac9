package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 1*time.Hour, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 300*time.Second, cfg.DownloadLinkTTL)
	assert.Equal(t, 30*time.Second, cfg.StoreTimeout)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.S3Bucket)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("DOWNLOAD_LINK_TTL", "120s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 120*time.Second, cfg.DownloadLinkTTL)
	// untouched variables keep the defaults
	assert.Equal(t, "secretKey", cfg.SecretKey)
}

func TestParseJson_Overlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	content := map[string]any{
		"endpoint_addr_http":             ":7070",
		"database_dsn":                   "postgres://json",
		"secret_key":                     "json-secret",
		"access_token_validity_duration": "45m",
		"download_link_ttl":              "600s",
		"store_timeout":                  "10s",
		"s3_root_user":                   "json-user",
		"s3_root_password":               "json-pass",
		"s3_bucket":                      "json-bucket",
		"s3_region":                      "eu-west-1",
		"s3_base_endpoint":               "http://minio:9000/",
	}
	b, err := json.Marshal(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json", cfg.DatabaseDSN)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 600*time.Second, cfg.DownloadLinkTTL)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "json-bucket", cfg.S3Bucket)
}

func TestParseJson_NoFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
}
