package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/program"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UpstreamMode != UpstreamModeLive {
		t.Fatalf("unexpected upstream mode %q", cfg.UpstreamMode)
	}
	if cfg.FailureCheckInterval != 30*time.Second {
		t.Fatalf("unexpected failure check interval %s", cfg.FailureCheckInterval)
	}
	if !cfg.RobotEventsCircuit.Enabled || cfg.RobotEventsCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected robotevents circuit config: %+v", cfg.RobotEventsCircuit)
	}
	if cfg.LiveFetchWorkers != 4 || cfg.ArchiveEnabled {
		t.Fatalf("unexpected live/archive defaults: %+v", cfg)
	}
}

func TestLoad_UpstreamCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("ROBOTEVENTS_API_KEYS", " key-a, ,key-b ")
	t.Setenv("FTCEVENTS_USERNAME", "scout")
	t.Setenv("FTCEVENTS_TOKEN", "secret")
	t.Setenv("FTCEVENTS_CIRCUIT_OPEN_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.RobotEventsAPIKeys) != 2 || cfg.RobotEventsAPIKeys[1] != "key-b" {
		t.Fatalf("unexpected api keys: %v", cfg.RobotEventsAPIKeys)
	}
	if cfg.FTCEventsUsername != "scout" || cfg.FTCEventsToken != "secret" {
		t.Fatalf("unexpected ftc credentials")
	}
	if cfg.FTCEventsCircuit.OpenTimeout != 45*time.Second {
		t.Fatalf("unexpected ftc circuit open timeout %s", cfg.FTCEventsCircuit.OpenTimeout)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true", "UPTRACE_DSN": ""}},
		{name: "unknown upstream mode", env: map[string]string{"UPSTREAM_MODE": "replay"}},
		{name: "memory upstream in prod", env: map[string]string{"APP_ENV": EnvProd, "UPSTREAM_MODE": UpstreamModeMemory}},
		{name: "zero live workers", env: map[string]string{"LIVE_FETCH_WORKERS": "0"}},
		{name: "negative retries", env: map[string]string{"ROBOTEVENTS_MAX_RETRIES": "-1"}},
		{name: "bad circuit failure count", env: map[string]string{"FTCEVENTS_CIRCUIT_FAILURE_COUNT": "0"}},
		{name: "non-positive interval", env: map[string]string{"FAILURE_CHECK_INTERVAL": "0s"}},
		{name: "bad bool", env: map[string]string{"ARCHIVE_ENABLED": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn %q", cfg.UptraceDSN)
	}
}

func TestLoadProgramCatalog_Embedded(t *testing.T) {
	t.Parallel()

	catalog, err := LoadProgramCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	v5rc, err := catalog.Get(1)
	if err != nil {
		t.Fatalf("get V5RC: %v", err)
	}
	if v5rc.Family != program.FamilyA || !v5rc.SupportsSecondaryRanking || !v5rc.HasGrade(program.GradeHigh) {
		t.Fatalf("unexpected V5RC descriptor: %+v", v5rc)
	}
	ftc, err := catalog.Get(1000)
	if err != nil {
		t.Fatalf("get FTC: %v", err)
	}
	if ftc.Family != program.FamilyB || ftc.SupportsSecondaryRanking {
		t.Fatalf("unexpected FTC descriptor: %+v", ftc)
	}
}

func TestLoadProgramCatalog_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "programs.yaml")
	body := "programs:\n  - id: 7\n    code: vexu\n    family: a\n    grades: [College]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadProgramCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("expected one program, got %d", catalog.Len())
	}
	got, _ := catalog.Get(7)
	if got.Code != "VEXU" || got.Family != program.FamilyA || !got.HasGrade(program.GradeCollege) {
		t.Fatalf("unexpected descriptor: %+v", got)
	}
}

func TestLoadProgramCatalog_UnknownFamilyFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "programs.yaml")
	if err := os.WriteFile(path, []byte("programs:\n  - id: 9\n    code: X\n    family: C\n"), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := LoadProgramCatalog(path); err == nil {
		t.Fatalf("expected unknown family to fail")
	}
}
