// Package config loads service settings from defaults, config/app.json, .env
// and the process environment (later sources win).
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppEnv      = "local"
	defaultAppPort     = "8080"
	defaultMongoURI    = "mongodb://localhost:27017"
	defaultMongoDB     = "wad-01"
	defaultDBDriver    = "mongo"
	defaultJWTSecret   = "mydefaultjwtsecret"
	defaultJWTTTL      = "24h"
	defaultBcryptCost  = "10"
	defaultStorageDisk = "local"
	defaultLocalRoot   = "public/uploads"
	defaultStorageURL  = "/uploads"
	defaultMaxUpload   = "10485760"
	defaultMaxBody     = "4194304"
	defaultCORSOrigins = "*"
	defaultConfigPath  = "config/app.json"
	defaultDotEnvPath  = ".env"
)

// Config is the resolved service configuration.
type Config struct {
	AppEnv    string
	AppPort   string
	APIPrefix string

	DBDriver string
	MongoURI string
	MongoDB  string

	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	CookieSecure bool

	CORSOrigins []string

	StorageDisk      string
	StorageLocalRoot string
	StorageURL       string
	S3Bucket         string
	S3Region         string
	S3Key            string
	S3Secret         string
	S3Endpoint       string
	S3URL            string

	MaxUploadBytes int64
	MaxBodyBytes   int64

	LogMongo bool
}

// Load reads config/app.json and .env from the working directory.
func Load() (*Config, error) {
	return LoadFrom(defaultConfigPath, defaultDotEnvPath)
}

// LoadFrom merges the given JSON and dotenv files over the defaults, then
// applies environment variables. Missing files are not an error.
func LoadFrom(configPath, envPath string) (*Config, error) {
	values := defaultValues()

	if err := mergeJSONConfig(configPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	mergeEnviron(os.Environ(), values)

	return build(values)
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":            defaultAppEnv,
		"APP_PORT":           defaultAppPort,
		"API_PREFIX":         "",
		"DB_DRIVER":          defaultDBDriver,
		"MONGODB_URI":        defaultMongoURI,
		"MONGODB_DB":         defaultMongoDB,
		"JWT_SECRET":         defaultJWTSecret,
		"JWT_TTL":            defaultJWTTTL,
		"BCRYPT_COST":        defaultBcryptCost,
		"COOKIE_SECURE":      "false",
		"CORS_ORIGINS":       defaultCORSOrigins,
		"STORAGE_DISK":       defaultStorageDisk,
		"STORAGE_LOCAL_ROOT": defaultLocalRoot,
		"STORAGE_URL":        defaultStorageURL,
		"S3_BUCKET":          "",
		"S3_REGION":          "us-east-1",
		"S3_KEY":             "",
		"S3_SECRET":          "",
		"S3_ENDPOINT":        "",
		"S3_URL":             "",
		"MAX_UPLOAD_BYTES":   defaultMaxUpload,
		"MAX_BODY_BYTES":     defaultMaxBody,
		"LOG_MONGO":          "false",
	}
}

func build(values map[string]string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(values[key]) }

	ttl, err := time.ParseDuration(get("JWT_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("config: JWT_TTL %q: must be a positive duration", get("JWT_TTL"))
	}

	cost, err := strconv.Atoi(get("BCRYPT_COST"))
	if err != nil {
		return nil, fmt.Errorf("config: BCRYPT_COST %q: %w", get("BCRYPT_COST"), err)
	}

	driver := strings.ToLower(get("DB_DRIVER"))
	switch driver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q (supported: mongo, memory)", driver)
	}

	prefix := strings.TrimRight(get("API_PREFIX"), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	cfg := &Config{
		AppEnv:           get("APP_ENV"),
		AppPort:          get("APP_PORT"),
		APIPrefix:        prefix,
		DBDriver:         driver,
		MongoURI:         get("MONGODB_URI"),
		MongoDB:          get("MONGODB_DB"),
		JWTSecret:        get("JWT_SECRET"),
		JWTTTL:           ttl,
		BcryptCost:       cost,
		CookieSecure:     parseBool(get("COOKIE_SECURE")),
		CORSOrigins:      splitList(get("CORS_ORIGINS")),
		StorageDisk:      strings.ToLower(get("STORAGE_DISK")),
		StorageLocalRoot: get("STORAGE_LOCAL_ROOT"),
		StorageURL:       strings.TrimRight(get("STORAGE_URL"), "/"),
		S3Bucket:         get("S3_BUCKET"),
		S3Region:         get("S3_REGION"),
		S3Key:            get("S3_KEY"),
		S3Secret:         get("S3_SECRET"),
		S3Endpoint:       get("S3_ENDPOINT"),
		S3URL:            strings.TrimRight(get("S3_URL"), "/"),
		MaxUploadBytes:   parseSize(get("MAX_UPLOAD_BYTES"), 10<<20),
		MaxBodyBytes:     parseSize(get("MAX_BODY_BYTES"), 4<<20),
		LogMongo:         parseBool(get("LOG_MONGO")),
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	}
	return false
}

// InsecureSecret reports whether the JWT secret is still the built-in default.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == defaultJWTSecret || c.JWTSecret == ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]any
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case float64, bool:
			out[k] = fmt.Sprint(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.ToUpper(strings.TrimSpace(key))
		if !ok || key == "" {
			continue
		}
		out[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

// mergeEnviron only overrides keys the service knows about, so unrelated
// variables (PATH, HOME) never leak into Get.
func mergeEnviron(environ []string, out map[string]string) {
	known := defaultValues()
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, isKnown := known[key]; isKnown {
			out[key] = value
		}
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseSize(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
