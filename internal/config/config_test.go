package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "postgres://bot@localhost/bot")
	t.Setenv("WORKER_POOL_SIZE", "4")
	t.Setenv("CURSOR_BACKEND", "redis")
	t.Setenv("BOT_STAFF_IDS", "10, 20,oops,")

	cfg := Load()

	assert.Equal(t, "postgres://bot@localhost/bot", cfg.Database.Connection)
	assert.Equal(t, 4, cfg.Bot.WorkerPoolSize)
	assert.Equal(t, CursorBackendRedis, cfg.Bot.CursorBackend)
	assert.Equal(t, []int64{10, 20}, cfg.Bot.StaffIDs)
	assert.True(t, cfg.Bot.IsStaff(20))
	assert.False(t, cfg.Bot.IsStaff(30))
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			Database: DatabaseConfig{Connection: "dsn"},
			Bot:      BotConfig{WorkerPoolSize: 1, CursorBackend: CursorBackendDatabase, CursorTTLHours: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.Bot.CursorBackend = CursorBackendMemory }},
		{name: "missing database", mutate: func(c *Config) { c.Database.Connection = "" }, wantErr: "DB_CONNECTION_STRING"},
		{name: "unknown backend", mutate: func(c *Config) { c.Bot.CursorBackend = "disk" }, wantErr: "CURSOR_BACKEND"},
		{name: "empty pool", mutate: func(c *Config) { c.Bot.WorkerPoolSize = 0 }, wantErr: "WORKER_POOL_SIZE"},
		{name: "production secrets", mutate: func(c *Config) { c.App.Environment = "production" }, wantErr: "BOT_WEBHOOK_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
