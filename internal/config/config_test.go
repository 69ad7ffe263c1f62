package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, DriverFile, cfg.Data.Driver)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Standings.HeadToHead)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LEAGUE_DATA_DRIVER", "sqlite")
	t.Setenv("LEAGUE_DATA_DSN", "file:league.db")
	t.Setenv("LEAGUE_STANDINGS_HEAD_TO_HEAD", "true")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Data.Driver)
	assert.Equal(t, "file:league.db", cfg.Data.DSN)
	assert.True(t, cfg.Standings.HeadToHead)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "league.yaml")
	body := "http:\n  addr: \":9090\"\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	v := New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverFile, cfg.Data.Driver)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    DataConfig
		wantErr bool
	}{
		{"file", DataConfig{Driver: DriverFile, Dir: "data"}, false},
		{"file without dir", DataConfig{Driver: DriverFile}, true},
		{"sqlite", DataConfig{Driver: DriverSQLite, DSN: ":memory:"}, false},
		{"postgres without dsn", DataConfig{Driver: DriverPostgres}, true},
		{"unknown", DataConfig{Driver: "mongo", DSN: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{Data: tt.data}).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
