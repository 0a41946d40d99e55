package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1000, cfg.Scenario.Iterations)
	assert.Equal(t, analytics.DefaultMaxIterations, cfg.Scenario.MaxIterations)
	assert.Equal(t, 1.0, cfg.Scenario.InflationFactor)
	assert.Equal(t, 1.0, cfg.Scenario.StaffingCapacityFactor)
	assert.Equal(t, 1.0, cfg.Scenario.RiskMitigationEffectiveness)
	assert.Nil(t, cfg.Scenario.Seed)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 2000, cfg.Feedback.MaxRetryElapsedMs)
	assert.Equal(t, "pdsops.db", filepath.Base(cfg.DBPath))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PDSOPS_CONFIG", "")
	t.Setenv("PDSOPS_DB", "/tmp/custom.db")
	t.Setenv("PDSOPS_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PDSOPS_LOG_USE_CASES", "true")
	t.Setenv("PDSOPS_SCENARIO_ITERATIONS", "250")
	t.Setenv("PDSOPS_SCENARIO_INFLATION", "1.1")
	t.Setenv("PDSOPS_SCENARIO_SEED", "42")
	t.Setenv("PDSOPS_SCENARIO_MAX_ITERATIONS", "5000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 250, cfg.Scenario.Iterations)
	assert.Equal(t, 5000, cfg.Scenario.MaxIterations)
	assert.Equal(t, 1.1, cfg.Scenario.InflationFactor)
	require.NotNil(t, cfg.Scenario.Seed)
	assert.Equal(t, int64(42), *cfg.Scenario.Seed)
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("PDSOPS_CONFIG", "")
	t.Setenv("PDSOPS_SCENARIO_ITERATIONS", "0")
	t.Setenv("PDSOPS_SCENARIO_STAFFING", "not-a-number")
	t.Setenv("PDSOPS_SCENARIO_SEED", "abc")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Scenario.Iterations)
	assert.Equal(t, 1.0, cfg.Scenario.StaffingCapacityFactor)
	assert.Nil(t, cfg.Scenario.Seed)
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdsops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /data/portfolio.db
template_seed_path: /data/templates.yaml
scenario:
  iterations: 5000
  risk_mitigation_effectiveness: 0.5
  seed: 7
`), 0o644))

	t.Setenv("PDSOPS_CONFIG", path)
	t.Setenv("PDSOPS_DB", "")
	t.Setenv("PDSOPS_SCENARIO_ITERATIONS", "300")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/portfolio.db", cfg.DBPath)
	assert.Equal(t, "/data/templates.yaml", cfg.TemplateSeedPath)
	assert.Equal(t, 300, cfg.Scenario.Iterations, "env wins over file")
	assert.Equal(t, 0.5, cfg.Scenario.RiskMitigationEffectiveness)
	assert.Equal(t, 1.0, cfg.Scenario.InflationFactor, "unset keys keep defaults")
	require.NotNil(t, cfg.Scenario.Seed)
	assert.Equal(t, int64(7), *cfg.Scenario.Seed)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("PDSOPS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: [unclosed"), 0o644))

	cfg := DefaultConfig()
	err := LoadFile(path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestScenarioParams(t *testing.T) {
	cfg := DefaultConfig()
	seed := int64(9)
	cfg.Scenario.Seed = &seed
	cfg.Scenario.Iterations = 10

	params := cfg.ScenarioParams()
	assert.Equal(t, 10, params.Iterations)
	assert.Equal(t, &seed, params.Seed)
	assert.NoError(t, params.Validate())
}

func TestScenarioParams_CarriesIterationCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario.MaxIterations = 100
	cfg.Scenario.Iterations = 101

	params := cfg.ScenarioParams()
	assert.Equal(t, 100, params.MaxIterations)
	assert.ErrorIs(t, params.Validate(), analytics.ErrInvalidInput)
}
