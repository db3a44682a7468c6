package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("MIN_DB_CONNS", "")
	t.Setenv("DB_CONN_MAX_IDLE_MINUTES", "")
	t.Setenv("REDIS_POOL_SIZE", "")

	cfg := Load()

	assert.Equal(t, "5001", cfg.ServerPort)
	assert.Equal(t, EnvDevelopment, cfg.AppEnv)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "bcrypt", cfg.PasswordStorage)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, int32(2), cfg.MinDBConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxIdle)
	assert.Equal(t, 10, cfg.RedisPoolSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("MIGRATIONS_PATH", "/srv/schoolcrm/migrations")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "/srv/schoolcrm/migrations", cfg.MigrationsPath)
}

func TestCookieFlagsFollowEnvironment(t *testing.T) {
	dev := &Config{AppEnv: EnvDevelopment}
	assert.Equal(t, http.SameSiteLaxMode, dev.CookieSameSite())
	assert.False(t, dev.CookieSecure())

	prod := &Config{AppEnv: EnvProduction}
	assert.Equal(t, http.SameSiteNoneMode, prod.CookieSameSite())
	assert.True(t, prod.CookieSecure())
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "session:abc", CacheKey.SessionKey("abc"))
	assert.Equal(t, "ratelimit:login:10.0.0.1", CacheKey.RateLimitKey("login", "10.0.0.1"))
}
