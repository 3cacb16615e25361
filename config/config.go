package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
type AppConfig struct {
	AppPort            string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Submission gate
	GateMinLen         int
	GateMaxLen         int
	GateDisallowed     []string
	SubmitDelayMs      int
	SessionTTLMinutes  int
	ContentPath        string
	ContactAckMessage  string
	FeedbackAuthorName string
	// Redis for content caching, disabled when RedisHost is empty
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// DefaultDisallowedWords is the stand-in word list used when none is configured.
var DefaultDisallowedWords = []string{"spam", "hate", "offensive", "inappropriate"}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	c, err := LoadFrom(filepath.Join("config", "config.json"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// LoadFrom builds a configuration from the JSON file at path (optional),
// defaults and environment overrides, in that order, and validates it.
func LoadFrom(path string) (AppConfig, error) {
	var c AppConfig
	if err := loadJSONConfig(path, &c); err != nil {
		return AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&c)
	if err := applyEnvOverrides(&c); err != nil {
		return AppConfig{}, err
	}
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

// Validate checks cross-field constraints.
func (c AppConfig) Validate() error {
	if c.GateMinLen < 1 {
		return errors.New("gate min length must be at least 1")
	}
	if c.GateMaxLen < c.GateMinLen {
		return fmt.Errorf("gate max length %d is below min length %d", c.GateMaxLen, c.GateMinLen)
	}
	if c.SubmitDelayMs < 0 {
		return errors.New("submit delay cannot be negative")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadJSONConfig reads JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(m map[string]any, key string) string {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	getInt := func(m map[string]any, key string) int {
		if v, ok := m[key]; ok {
			switch t := v.(type) {
			case float64:
				return int(t)
			case int:
				return t
			}
		}
		return 0
	}
	getBool := func(m map[string]any, key string) bool {
		if v, ok := m[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
		return false
	}
	getStringSlice := func(m map[string]any, key string) []string {
		if v, ok := m[key]; ok {
			if arr, ok := v.([]any); ok {
				res := make([]string, 0, len(arr))
				for _, it := range arr {
					if s, ok := it.(string); ok {
						res = append(res, s)
					}
				}
				return res
			}
		}
		return nil
	}

	if app, ok := raw["app"].(map[string]any); ok {
		out.AppPort = getString(app, "AppPort")
		out.RateLimitPerMinute = getInt(app, "RateLimitPerMinute")
		if list := getStringSlice(app, "AllowedOrigins"); len(list) > 0 {
			out.AllowedOrigins = list
		}
		out.SessionTTLMinutes = getInt(app, "SessionTTLMinutes")
	}

	if g, ok := raw["gin"].(map[string]any); ok {
		out.GinMode = getString(g, "Mode")
		out.GinPath = getString(g, "LogPath")
	}

	if gt, ok := raw["gate"].(map[string]any); ok {
		out.GateMinLen = getInt(gt, "MinLen")
		out.GateMaxLen = getInt(gt, "MaxLen")
		if list := getStringSlice(gt, "DisallowedWords"); len(list) > 0 {
			out.GateDisallowed = list
		}
		out.SubmitDelayMs = getInt(gt, "SubmitDelayMs")
	}

	if ct, ok := raw["content"].(map[string]any); ok {
		out.ContentPath = getString(ct, "Path")
		out.ContactAckMessage = getString(ct, "ContactAck")
		out.FeedbackAuthorName = getString(ct, "DefaultAuthor")
	}

	if rds, ok := raw["redis"].(map[string]any); ok {
		out.RedisHost = getString(rds, "RedisHost")
		out.RedisPort = getInt(rds, "RedisPort")
		out.RedisDB = getInt(rds, "RedisDB")
		out.RedisPassword = getString(rds, "RedisPassword")
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		out.LogLevel = getString(lg, "Level")
		out.LogPath = getString(lg, "Path")
		if v := getString(lg, "GinPath"); v != "" {
			out.GinPath = v
		}
		out.LogMaxSizeMB = getInt(lg, "MaxSizeMB")
		out.LogMaxBackups = getInt(lg, "MaxBackups")
		out.LogMaxAgeDays = getInt(lg, "MaxAgeDays")
		out.LogCompress = getBool(lg, "Compress")
	}

	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.GateMinLen == 0 {
		c.GateMinLen = 10
	}
	if c.GateMaxLen == 0 {
		c.GateMaxLen = 1000
	}
	if len(c.GateDisallowed) == 0 {
		c.GateDisallowed = append([]string(nil), DefaultDisallowedWords...)
	}
	if c.SessionTTLMinutes == 0 {
		c.SessionTTLMinutes = 60
	}
	if c.ContactAckMessage == "" {
		c.ContactAckMessage = "Thank you! Your message has been sent. I'll get back to you soon."
	}
	if c.FeedbackAuthorName == "" {
		c.FeedbackAuthorName = "Anonymous"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) error {
	var err error
	setInt := func(key string, dst *int) {
		v := getEnv(key, "")
		if v == "" || err != nil {
			return
		}
		i, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("invalid integer value for %s: %w", key, perr)
			return
		}
		*dst = i
	}

	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	setInt("RATE_LIMIT_PER_MINUTE", &c.RateLimitPerMinute)
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = readListEnv("CORS_ALLOWED_ORIGINS", c.AllowedOrigins)
	}
	setInt("GATE_MIN_LEN", &c.GateMinLen)
	setInt("GATE_MAX_LEN", &c.GateMaxLen)
	if v := getEnv("GATE_DISALLOWED_WORDS", ""); v != "" {
		c.GateDisallowed = readListEnv("GATE_DISALLOWED_WORDS", c.GateDisallowed)
	}
	setInt("SUBMIT_DELAY_MS", &c.SubmitDelayMs)
	setInt("SESSION_TTL_MINUTES", &c.SessionTTLMinutes)
	if v := getEnv("CONTENT_PATH", ""); v != "" {
		c.ContentPath = v
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	setInt("REDIS_PORT", &c.RedisPort)
	setInt("REDIS_DB", &c.RedisDB)
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	setInt("LOG_MAX_SIZE_MB", &c.LogMaxSizeMB)
	setInt("LOG_MAX_BACKUPS", &c.LogMaxBackups)
	setInt("LOG_MAX_AGE_DAYS", &c.LogMaxAgeDays)
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
	return err
}

func readListEnv(key string, defaults []string) []string {
	if raw := os.Getenv(key); raw != "" {
		return splitAndTrim(raw)
	}
	return defaults
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
