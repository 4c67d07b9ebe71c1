package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dayflow/internal/datetime"
)

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	t.Setenv("DAYFLOW_API_BASE", "")
	t.Setenv("DAYFLOW_MEMBER_ID", "")
	t.Setenv("DAYFLOW_ZONE", "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnvOverrides(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.MemberID != defaultMemberID {
		t.Fatalf("MemberID = %d, want %d", cfg.MemberID, defaultMemberID)
	}
	if cfg.ZoneID != datetime.DefaultZoneID {
		t.Fatalf("ZoneID = %q, want %q", cfg.ZoneID, datetime.DefaultZoneID)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want %d", cfg.PollSeconds, defaultPollSeconds)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  10.0.0.5:9999  "
member_id = 42
zone = "  America/New_York  "
poll_seconds = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "10.0.0.5:9999" {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, "10.0.0.5:9999")
	}
	if cfg.MemberID != 42 {
		t.Fatalf("MemberID = %d, want 42", cfg.MemberID)
	}
	if cfg.ZoneID != "America/New_York" {
		t.Fatalf("ZoneID = %q, want America/New_York", cfg.ZoneID)
	}
	if cfg.PollSeconds != 5 {
		t.Fatalf("PollSeconds = %d, want 5", cfg.PollSeconds)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
zone = ""
member_id = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.MemberID != defaultMemberID {
		t.Fatalf("MemberID = %d, want %d", cfg.MemberID, defaultMemberID)
	}
	if cfg.ZoneID != datetime.DefaultZoneID {
		t.Fatalf("ZoneID = %q, want %q", cfg.ZoneID, datetime.DefaultZoneID)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DAYFLOW_API_BASE", "10.1.1.1:7000")
	t.Setenv("DAYFLOW_MEMBER_ID", "9")
	t.Setenv("DAYFLOW_ZONE", "Europe/London")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "10.0.0.5:9999"
member_id = 42
zone = "America/New_York"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "10.1.1.1:7000" {
		t.Fatalf("APIBase = %q, want the env override", cfg.APIBase)
	}
	if cfg.MemberID != 9 {
		t.Fatalf("MemberID = %d, want the env override 9", cfg.MemberID)
	}
	if cfg.ZoneID != "Europe/London" {
		t.Fatalf("ZoneID = %q, want the env override", cfg.ZoneID)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestZone_FallsBackOnInvalidID(t *testing.T) {
	cfg := Config{ZoneID: "Not/AZone"}
	if got := cfg.Zone().ID(); got != datetime.DefaultZoneID {
		t.Fatalf("Zone().ID() = %q, want default %q", got, datetime.DefaultZoneID)
	}

	cfg = Config{ZoneID: "America/New_York"}
	if got := cfg.Zone().ID(); got != "America/New_York" {
		t.Fatalf("Zone().ID() = %q, want America/New_York", got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
