package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"dayflow/internal/datetime"
)

// Config captures the runtime settings of the planner.
type Config struct {
	APIBase     string
	MemberID    int64
	ZoneID      string
	PollSeconds int
}

const (
	defaultConfigPath  = "~/.config/dayflow/config.toml"
	defaultAPIBase     = "127.0.0.1:8080"
	defaultMemberID    = 1
	defaultPollSeconds = 30
)

// Load locates and parses the dayflow config, falling back to defaults when
// missing, then applies .env / environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:     defaultAPIBase,
		MemberID:    defaultMemberID,
		ZoneID:      datetime.DefaultZoneID,
		PollSeconds: defaultPollSeconds,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase     string `toml:"api_base"`
		MemberID    int64  `toml:"member_id"`
		Zone        string `toml:"zone"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if raw.MemberID > 0 {
		cfg.MemberID = raw.MemberID
	}
	if v := strings.TrimSpace(raw.Zone); v != "" {
		cfg.ZoneID = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	return applyEnv(cfg), nil
}

// applyEnv layers DAYFLOW_* environment variables over the file values. A
// .env file in the working directory is honored when present; a missing one
// is not an error.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("DAYFLOW_API_BASE")); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYFLOW_MEMBER_ID")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			cfg.MemberID = id
		}
	}
	if v := strings.TrimSpace(os.Getenv("DAYFLOW_ZONE")); v != "" {
		cfg.ZoneID = v
	}
	return cfg
}

// Zone resolves the configured governing zone, falling back to the default
// when the configured id is invalid rather than failing startup.
func (c Config) Zone() datetime.Zone {
	if z, err := datetime.LoadZone(c.ZoneID); err == nil {
		return z
	}
	return datetime.MustLoadZone(datetime.DefaultZoneID)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
