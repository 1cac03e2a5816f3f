package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/intrusion-monitor/internal/config"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := []models.AttackLog{
		{ID: 1, SourceIP: "192.168.1.10", AttackType: "Port Scan", Severity: models.SeverityLow, Status: models.StatusOpen},
		{ID: 2, SourceIP: "192.168.4.7", AttackType: "Brute Force", Severity: models.SeverityCritical, Status: models.StatusOpen},
	}
	err := cache.Set("attacklogs:all", expected, time.Minute)
	require.NoError(t, err)

	var actual []models.AttackLog
	found, err := cache.Get("attacklogs:all", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out []models.AttackLog
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("key", "value", time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("key")
	require.NoError(t, err)

	var out string
	found, err := cache.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Db.Set(context.Background(), "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out []models.AttackLog
	found, err := cache.Get("bad", &out)
	require.Error(t, err)
	assert.False(t, found)
}
