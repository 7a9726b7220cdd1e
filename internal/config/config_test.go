package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "battlesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadBattle_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadBattle(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBattle(), cfg)
}

func TestLoadBattle_YAMLOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
seed: 99
vs_type: 2
simulation:
  battles: 3
database:
  enabled: true
  host: db
`)
	cfg, err := LoadBattle(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 2, cfg.VsType)
	assert.Equal(t, 3, cfg.Simulation.Battles)
	assert.Equal(t, 4, cfg.Simulation.Concurrency, "unset keys keep defaults")
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadBattle_EnvWins(t *testing.T) {
	path := writeConfig(t, "seed: 99\nmax_turns: 10\n")
	t.Setenv("BATTLE_SEED", "7")
	t.Setenv("BATTLE_AI_CAN_WIN", "false")
	t.Setenv("BATTLE_SIMULATION_CONCURRENCY", "8")
	t.Setenv("BATTLE_DATABASE_PASSWORD", "secret")

	cfg, err := LoadBattle(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 10, cfg.MaxTurns)
	assert.False(t, cfg.AICanWin)
	assert.Equal(t, 8, cfg.Simulation.Concurrency)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoadBattle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad yaml", body: "seed: [1"},
		{name: "bad vs_type", body: "vs_type: 4"},
		{name: "bad concurrency", body: "simulation:\n  concurrency: 0"},
		{name: "bad env", body: "", env: map[string]string{"BATTLE_VS_TYPE": "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.body)
			_, err := LoadBattle(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	if got := Path(); got != DefaultPath {
		t.Errorf("Path() = %q, want %q", got, DefaultPath)
	}
	t.Setenv(PathEnv, "/etc/battlesim.yaml")
	if got := Path(); got != "/etc/battlesim.yaml" {
		t.Errorf("Path() = %q, want %q", got, "/etc/battlesim.yaml")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	want := "postgres://u:p@h:1/n?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
