// Package config loads a Lab's JSON configuration and .env defaults,
// grounded on cmd/backtest/main.go's loadEnvFile and the rest of the
// pack's encoding/json-driven config loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/lab"
)

// LoadLabConfig decodes a lab.LabConfig from JSON bytes.
func LoadLabConfig(data []byte) (lab.LabConfig, error) {
	var cfg lab.LabConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding lab config: %w", err)
	}
	return cfg, nil
}

// LoadAlgoConfigurations decodes a list of algo.AlgoConfiguration from JSON
// bytes, suitable for Lab.ApplyMap.
func LoadAlgoConfigurations(data []byte) ([]algo.AlgoConfiguration, error) {
	var cfgs []algo.AlgoConfiguration
	if err := json.Unmarshal(data, &cfgs); err != nil {
		return nil, fmt.Errorf("config: decoding algo configurations: %w", err)
	}
	return cfgs, nil
}

// LoadDotEnvDefaults loads key/value pairs from a .env file, mirroring
// loadEnvFile's os.Stat-then-godotenv.Load pattern, but returning the
// parsed map instead of mutating process environment variables, so callers
// decide whether to apply them with os.Setenv.
func LoadDotEnvDefaults(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: env file %s not found: %w", path, err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: parsing env file %s: %w", path, err)
	}
	return values, nil
}

// ApplyEnvDefaults calls os.Setenv for every key not already set in the
// process environment, leaving explicit environment variables untouched.
func ApplyEnvDefaults(values map[string]string) error {
	for k, v := range values {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("config: setting %s: %w", k, err)
		}
	}
	return nil
}
