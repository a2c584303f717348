package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://lms.example.com")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.EqualValues(t, 280000, cfg.SignupPrice)
	assert.Equal(t, []string{"http://localhost:5173", "https://lms.example.com"}, cfg.Origins())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := "JWT_SECRET_KEY=from-file\nPORT=8080\nDB_DRIVER=sqlite\nSIGNUP_PRICE=150000\nAPP_ENV=production\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecretKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.EqualValues(t, 150000, cfg.SignupPrice)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	ok := Config{JWTSecretKey: "secret", DBDriver: "postgres", StorageDriver: "local"}
	assert.NoError(t, ok.Validate())

	noSecret := ok
	noSecret.JWTSecretKey = ""
	assert.ErrorContains(t, noSecret.Validate(), "JWT_SECRET_KEY")

	supabase := ok
	supabase.StorageDriver = "supabase"
	assert.ErrorContains(t, supabase.Validate(), "SUPABASE_URL")

	badDriver := ok
	badDriver.DBDriver = "mongo"
	assert.ErrorContains(t, badDriver.Validate(), "DB_DRIVER")
}

func TestOpenDB_Sqlite(t *testing.T) {
	cfg := Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := OpenDB(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}
