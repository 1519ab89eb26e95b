package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "SERVER_PORT", "COLLAGE_DEFAULT_WIDTH", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	v, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 3000, cfg.Collage.DefaultWidth)
	assert.Equal(t, 2000, cfg.Collage.DefaultHeight)
	assert.Equal(t, 300, cfg.Collage.TileSize)
	assert.Equal(t, int64(100_000_000), cfg.Collage.MaxPixels)
	assert.Equal(t, "images", cfg.Collage.FormField)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "collage-events", cfg.Kafka.Topic)
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "8081"
  idle_timeout: 5s
collage:
  default_width: 640
  default_height: 480
  compression: best_speed
kafka:
  brokers: ["kafka:9092"]
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	v, err := LoadConfig(dir)
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 640, cfg.Collage.DefaultWidth)
	assert.Equal(t, 480, cfg.Collage.DefaultHeight)
	assert.Equal(t, "best_speed", cfg.Collage.Compression)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	// untouched keys keep their defaults
	assert.Equal(t, 300, cfg.Collage.TileSize)
}

func TestPortFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	v, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero default width", mutate: func(c *Config) { c.Collage.DefaultWidth = 0 }, wantErr: true},
		{name: "negative tile", mutate: func(c *Config) { c.Collage.TileSize = -1 }, wantErr: true},
		{name: "zero max pixels", mutate: func(c *Config) { c.Collage.MaxPixels = 0 }, wantErr: true},
		{name: "empty form field", mutate: func(c *Config) { c.Collage.FormField = "" }, wantErr: true},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Server:  ServerConfig{Port: "5000"},
				Collage: CollageConfig{DefaultWidth: 3000, DefaultHeight: 2000, TileSize: 300, MaxPixels: 100_000_000, FormField: "images"},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("COLLAGE_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("COLLAGE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("COLLAGE_TEST_MISSING", "fallback"))
}
