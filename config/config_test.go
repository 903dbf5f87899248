package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLabConfigDecodesJSON(t *testing.T) {
	cfg, err := LoadLabConfig([]byte(`{"population_total":500,"elite_ratio":0.2,"maximize_score":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PopulationTotal != 500 || cfg.EliteRatio != 0.2 || !cfg.MaximizeScore {
		t.Fatalf("unexpected decoded config: %+v", cfg)
	}
}

func TestLoadLabConfigRejectsMalformedJSON(t *testing.T) {
	if _, err := LoadLabConfig([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadAlgoConfigurationsDecodesList(t *testing.T) {
	cfgs, err := LoadAlgoConfigurations([]byte(`[{"id":"a","method":"Darwin","give":[],"population":{"WeightOfTotal":1.0}}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].Method != "Darwin" {
		t.Fatalf("unexpected decoded configs: %+v", cfgs)
	}
}

func TestLoadDotEnvDefaultsMissingFile(t *testing.T) {
	if _, err := LoadDotEnvDefaults(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for a missing .env file")
	}
}

func TestLoadDotEnvDefaultsParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GENLAB_SEED=42\n"), 0o644); err != nil {
		t.Fatalf("unexpected error writing env file: %v", err)
	}
	values, err := LoadDotEnvDefaults(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["GENLAB_SEED"] != "42" {
		t.Fatalf("expected GENLAB_SEED=42, got %v", values)
	}
}

func TestApplyEnvDefaultsLeavesExplicitValuesUntouched(t *testing.T) {
	const key = "GENLAB_TEST_APPLY_ENV_DEFAULTS"
	os.Setenv(key, "explicit")
	defer os.Unsetenv(key)

	if err := ApplyEnvDefaults(map[string]string{key: "default"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if os.Getenv(key) != "explicit" {
		t.Fatalf("expected explicit value preserved, got %q", os.Getenv(key))
	}
}

func TestApplyEnvDefaultsSetsMissingKeys(t *testing.T) {
	const key = "GENLAB_TEST_APPLY_ENV_DEFAULTS_MISSING"
	os.Unsetenv(key)
	defer os.Unsetenv(key)

	if err := ApplyEnvDefaults(map[string]string{key: "fallback"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if os.Getenv(key) != "fallback" {
		t.Fatalf("expected fallback value applied, got %q", os.Getenv(key))
	}
}
