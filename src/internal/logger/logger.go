package logger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"pin":              {},
	"password":         {},
	"secret":           {},
	"dsn":              {},
	"databasedsn":      {},
	"connectionstring": {},
	"authorization":    {},
}

var (
	mu      sync.RWMutex
	current = zap.NewNop()
)

// Init installs a JSON production logger at the given level.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	Replace(built)
	return nil
}

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := current
	current = l
	mu.Unlock()

	return func() { Replace(prev) }
}

func Sync() {
	_ = get().Sync()
}

func Debug(message string, fields Fields) {
	get().Debug(message, toZap(fields)...)
}

func Info(message string, fields Fields) {
	get().Info(message, toZap(fields)...)
}

func Warn(message string, fields Fields) {
	get().Warn(message, toZap(fields)...)
}

func Error(message string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	get().Error(message, zf...)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if isSensitiveKey(k) {
			out = append(out, zap.String(k, "******"))
			continue
		}
		out = append(out, zapField(k, fields[k]))
	}
	return out
}

func zapField(key string, value any) zap.Field {
	switch typed := value.(type) {
	case string:
		return zap.String(key, typed)
	case int:
		return zap.Int(key, typed)
	case int64:
		return zap.Int64(key, typed)
	case bool:
		return zap.Bool(key, typed)
	case fmt.Stringer:
		return zap.Stringer(key, typed)
	case map[string]any, []any:
		return zap.Any(key, sanitizeValue(typed))
	default:
		return zap.Any(key, typed)
	}
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(key), "-", ""), "_", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
