package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "wad-01", cfg.MongoDB)
	assert.Equal(t, "mongo", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "public/uploads", cfg.StorageLocalRoot)
	assert.Equal(t, "/uploads", cfg.StorageURL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.InsecureSecret())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFrom_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"mongodb_db": "from-json", "app_port": 9000, "jwt_ttl": "1h"}`)
	envPath := writeFile(t, dir, ".env", "# comment\nexport MONGODB_DB=\"from-dotenv\"\nAPI_PREFIX=api/\nJWT_SECRET='s3cret'\n")

	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFrom(jsonPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.MongoDB)
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.False(t, cfg.InsecureSecret())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadFrom_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		env  string
	}{
		{"bad ttl", "JWT_TTL=soon\n"},
		{"negative ttl", "JWT_TTL=-1h\n"},
		{"bad cost", "BCRYPT_COST=ten\n"},
		{"bad driver", "DB_DRIVER=postgres\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envPath := writeFile(t, dir, tt.name+".env", tt.env)
			_, err := LoadFrom(filepath.Join(dir, "missing.json"), envPath)
			assert.Error(t, err)
		})
	}
}

func TestLoadFrom_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	_, err := LoadFrom(jsonPath, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
