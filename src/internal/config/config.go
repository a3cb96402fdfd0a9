package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=money_transfer_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultAllowedOrigin = "http://localhost:5173"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	DatabaseDSN     string
	MigrationsDir   string
	HTTPAddr        string
	StorageDriver   string
	AllowedOrigins  []string
	StaticDir       string
	LogLevel        string
	TransferTimeout time.Duration
	LockTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ShutdownTimeout time.Duration
}

// fileConfig mirrors Config for the optional YAML file named by CONFIG_FILE.
type fileConfig struct {
	DatabaseDSN     string   `yaml:"database_dsn"`
	MigrationsDir   string   `yaml:"migrations_dir"`
	HTTPAddr        string   `yaml:"http_addr"`
	StorageDriver   string   `yaml:"storage_driver"`
	AllowedOrigins  []string `yaml:"cors_allowed_origins"`
	StaticDir       string   `yaml:"static_dir"`
	LogLevel        string   `yaml:"log_level"`
	TransferTimeout string   `yaml:"transfer_timeout"`
	LockTimeout     string   `yaml:"lock_timeout"`
	MaxOpenConns    int      `yaml:"db_max_open_conns"`
	MaxIdleConns    int      `yaml:"db_max_idle_conns"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		DatabaseDSN:     normalizeConnectionString(defaultConnectionString),
		MigrationsDir:   filepath.Join("src", "migrations"),
		HTTPAddr:        defaultHTTPAddr,
		StorageDriver:   StorageDriverPostgres,
		AllowedOrigins:  []string{defaultAllowedOrigin},
		StaticDir:       "wwwroot",
		LogLevel:        "info",
		TransferTimeout: 5 * time.Second,
		LockTimeout:     3 * time.Second,
		MaxOpenConns:    30,
		MaxIdleConns:    20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load layers .env, the optional YAML file and the process environment over Default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}

	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = normalizeConnectionString(fc.DatabaseDSN)
	}
	setString(&cfg.MigrationsDir, fc.MigrationsDir)
	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.StaticDir, fc.StaticDir)
	setString(&cfg.LogLevel, fc.LogLevel)
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.MaxOpenConns > 0 {
		cfg.MaxOpenConns = fc.MaxOpenConns
	}
	if fc.MaxIdleConns > 0 {
		cfg.MaxIdleConns = fc.MaxIdleConns
	}

	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"transfer_timeout", fc.TransferTimeout, &cfg.TransferTimeout},
		{"lock_timeout", fc.LockTimeout, &cfg.LockTimeout},
		{"shutdown_timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(d.value))
		if err != nil {
			return fmt.Errorf("config file %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if conn := env("DATABASE_DSN"); conn != "" {
		cfg.DatabaseDSN = normalizeConnectionString(conn)
	}
	setString(&cfg.MigrationsDir, env("MIGRATIONS_DIR"))
	setString(&cfg.HTTPAddr, env("HTTP_ADDR"))
	setString(&cfg.StorageDriver, env("STORAGE_DRIVER"))
	setString(&cfg.StaticDir, env("STATIC_DIR"))
	setString(&cfg.LogLevel, env("LOG_LEVEL"))

	if origins := env("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	var err error
	if cfg.TransferTimeout, err = envDuration("TRANSFER_TIMEOUT", cfg.TransferTimeout); err != nil {
		return err
	}
	if cfg.LockTimeout, err = envDuration("LOCK_TIMEOUT", cfg.LockTimeout); err != nil {
		return err
	}
	if cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}
	if cfg.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); err != nil {
		return err
	}
	if cfg.MaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return err
	}

	return nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}

	if c.TransferTimeout <= 0 {
		return fmt.Errorf("transfer timeout must be greater than zero")
	}
	if c.LockTimeout < 0 {
		return fmt.Errorf("lock timeout cannot be negative")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("db max open conns must be greater than zero")
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := env(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := env(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normalizeConnectionString turns ADO.NET style "Key=Value;" strings into a libpq DSN.
// URLs and strings that are already libpq formatted are returned untouched.
func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") || !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host", "server", "data source":
			host, port, found := strings.Cut(val, ",")
			out = append(out, "host="+host)
			if found {
				out = append(out, "port="+strings.TrimSpace(port))
			}
		case "port":
			out = append(out, "port="+val)
		case "database", "initial catalog":
			out = append(out, "dbname="+val)
		case "username", "user id", "uid", "user":
			out = append(out, "user="+val)
		case "password", "pwd":
			out = append(out, "password="+quoteValue(val))
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		case "trustservercertificate", "encrypt", "multipleactiveresultsets":
			// SQL Server only.
		default:
			out = append(out, strings.ReplaceAll(key, " ", "_")+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}

func quoteValue(val string) string {
	if !strings.ContainsAny(val, " '\\") {
		return val
	}
	escaped := strings.ReplaceAll(strings.ReplaceAll(val, `\`, `\\`), `'`, `\'`)
	return "'" + escaped + "'"
}
