package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, "Asia/Kuala_Lumpur", cfg.ReferenceTZ)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	require.Equal(t, "none", cfg.IdempotencyBackend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE", "pg")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/fx")
	t.Setenv("PORT", "8081")
	t.Setenv("REFERENCE_TZ", "+05:30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://admin.example.com")
	t.Setenv("IDEMPOTENCY_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, []string{"http://localhost:5173", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 90*time.Second, cfg.IdempotencyTTL)
	loc, err := cfg.Location()
	require.NoError(t, err)
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	require.Equal(t, 5*3600+30*60, off)
}

func TestLoad_PGRequiresURL(t *testing.T) {
	t.Setenv("STORAGE", "pg")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLocation(t *testing.T) {
	cases := map[string]int{
		"UTC+8":  8 * 3600,
		"+08:00": 8 * 3600,
		"-0300":  -3 * 3600,
		"GMT+10": 10 * 3600,
	}
	for tz, want := range cases {
		loc, err := Config{ReferenceTZ: tz}.Location()
		require.NoError(t, err, tz)
		_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
		require.Equal(t, want, off, tz)
	}
	_, err := Config{ReferenceTZ: "Mars/Olympus"}.Location()
	require.Error(t, err)
	_, err = Config{ReferenceTZ: "+15:00"}.Location()
	require.Error(t, err)
}
