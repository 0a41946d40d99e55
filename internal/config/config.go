package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"gopkg.in/yaml.v3"
)

// ScenarioConfig holds the default Monte Carlo parameters used when a
// command does not override them.
type ScenarioConfig struct {
	Iterations                  int     `yaml:"iterations"`
	MaxIterations               int     `yaml:"max_iterations"`
	InflationFactor             float64 `yaml:"inflation_factor"`
	StaffingCapacityFactor      float64 `yaml:"staffing_capacity_factor"`
	RiskMitigationEffectiveness float64 `yaml:"risk_mitigation_effectiveness"`
	Seed                        *int64  `yaml:"seed"`
}

// FeedbackConfig bounds retries of conflicting rule-feedback writes.
type FeedbackConfig struct {
	MaxRetryElapsedMs int `yaml:"max_retry_elapsed_ms"`
}

type Config struct {
	DBPath           string         `yaml:"db_path"`
	TemplateSeedPath string         `yaml:"template_seed_path"`
	Env              string         `yaml:"env"`
	LogLevel         string         `yaml:"log_level"`
	LogUseCases      bool           `yaml:"log_use_cases"`
	Scenario         ScenarioConfig `yaml:"scenario"`
	Feedback         FeedbackConfig `yaml:"feedback"`
}

// DefaultConfig returns a Config with sensible defaults. The database lives
// under ~/.pdsops unless overridden.
func DefaultConfig() Config {
	params := analytics.DefaultScenarioParams()
	return Config{
		DBPath:   defaultDBPath(),
		Env:      "local",
		LogLevel: "info",
		Scenario: ScenarioConfig{
			Iterations:                  params.Iterations,
			MaxIterations:               params.MaxIterations,
			InflationFactor:             params.InflationFactor,
			StaffingCapacityFactor:      params.StaffingCapacityFactor,
			RiskMitigationEffectiveness: params.RiskMitigationEffectiveness,
		},
		Feedback: FeedbackConfig{MaxRetryElapsedMs: 2000},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pdsops.db"
	}
	return filepath.Join(home, ".pdsops", "pdsops.db")
}

// LoadConfig layers defaults, then the YAML file named by PDSOPS_CONFIG (if
// any), then environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("PDSOPS_CONFIG"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PDSOPS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PDSOPS_TEMPLATES"); v != "" {
		cfg.TemplateSeedPath = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("PDSOPS_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PDSOPS_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PDSOPS_SCENARIO_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scenario.Iterations = n
		}
	}
	if v := os.Getenv("PDSOPS_SCENARIO_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scenario.MaxIterations = n
		}
	}
	applyFloatEnv(&cfg.Scenario.InflationFactor, "PDSOPS_SCENARIO_INFLATION")
	applyFloatEnv(&cfg.Scenario.StaffingCapacityFactor, "PDSOPS_SCENARIO_STAFFING")
	applyFloatEnv(&cfg.Scenario.RiskMitigationEffectiveness, "PDSOPS_SCENARIO_MITIGATION")
	if v := os.Getenv("PDSOPS_SCENARIO_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Scenario.Seed = &n
		}
	}
	if v := os.Getenv("PDSOPS_FEEDBACK_MAX_RETRY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Feedback.MaxRetryElapsedMs = n
		}
	}
}

func applyFloatEnv(dst *float64, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return
	}
	*dst = f
}

// ScenarioParams converts the configured defaults into simulator parameters.
func (c Config) ScenarioParams() analytics.ScenarioParams {
	return analytics.ScenarioParams{
		Iterations:                  c.Scenario.Iterations,
		MaxIterations:               c.Scenario.MaxIterations,
		InflationFactor:             c.Scenario.InflationFactor,
		StaffingCapacityFactor:      c.Scenario.StaffingCapacityFactor,
		RiskMitigationEffectiveness: c.Scenario.RiskMitigationEffectiveness,
		Seed:                        c.Scenario.Seed,
	}
}
