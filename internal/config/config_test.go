package config

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "invoice-dashboard", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "invoices", cfg.Database.DBName)
		assert.Equal(t, "memory", cfg.Cache.Driver)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "listing:", cfg.Cache.KeyPrefix)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("INVOICES_APP_PORT", "9000")
		t.Setenv("INVOICES_DATABASE_HOST", "db.internal")
		t.Setenv("INVOICES_DATABASE_PORT", "5433")
		t.Setenv("INVOICES_CACHE_DRIVER", "redis")
		t.Setenv("INVOICES_CACHE_TTL", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "redis", cfg.Cache.Driver)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	})

	t.Run("rejects unknown cache driver", func(t *testing.T) {
		t.Setenv("INVOICES_CACHE_DRIVER", "memcached")

		_, err := Load()
		assert.ErrorContains(t, err, "cache.driver")
	})

	t.Run("production requires a database password", func(t *testing.T) {
		t.Setenv("INVOICES_APP_ENV", "production")

		_, err := Load()
		assert.ErrorContains(t, err, "database.password")
	})
}

func TestValidate_IdleExceedsOpen(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 50

	err := cfg.validate()
	assert.ErrorContains(t, err, "max_idle_conns")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "p@ss word",
		DBName:   "invoices",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.True(t, strings.HasPrefix(dsn, "postgres://app:"))
	assert.Contains(t, dsn, "localhost:5432/invoices")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss word")
}

func TestInitRedis(t *testing.T) {
	t.Run("connects to a live server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)

		client, err := InitRedis(RedisConfig{Host: mr.Host(), Port: port})
		require.NoError(t, err)
		defer client.Close()
	})

	t.Run("fails when nothing listens", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)
		mr.Close()

		_, err = InitRedis(RedisConfig{Host: "127.0.0.1", Port: port})
		assert.ErrorContains(t, err, "failed to connect to Redis")
	})
}
