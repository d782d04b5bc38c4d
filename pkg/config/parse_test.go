package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghasn43/naobio-pro/internal/design"
)

const validDoc = `
log_level: info
scenario: safety_first
space:
  size_nm: {min: 50, max: 200}
  charge_mv: {min: -30, max: 30}
  dose_mg_per_kg: {min: 0.5, max: 20}
  materials: [PLGA, Lipid, Gold]
  ligands: [None, PEG, Folate]
  payloads: [DrugA, DrugB]
run:
  trials: 150
  seed: 42
  top_k: 10
`

func TestParseYAML_Valid(t *testing.T) {
	cfg, err := ParseYAML([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "safety_first", cfg.Scenario)
	assert.Equal(t, 50.0, cfg.Space.SizeNM.Min)
	assert.Equal(t, []string{"PLGA", "Lipid", "Gold"}, cfg.Space.Materials)
	assert.Equal(t, 150, cfg.Run.Trials)
	assert.Equal(t, int64(42), cfg.Run.Seed)

	opts := cfg.Options()
	assert.Equal(t, 150, opts.Trials)
	assert.Equal(t, 10, opts.TopK)

	// Scenario-driven config falls back to default weights and empty
	// constraints until the engine resolves the preset.
	assert.Equal(t, design.DefaultWeights(), cfg.ResolvedWeights())
	assert.Nil(t, cfg.ResolvedConstraints().ToxicityMax)
}

func TestParseYAML_CustomWeightsAndConstraints(t *testing.T) {
	doc := `
space:
  size_nm: {min: 50, max: 200}
  charge_mv: {min: -30, max: 30}
  dose_mg_per_kg: {min: 0.5, max: 20}
  materials: [PLGA]
  ligands: [None]
  payloads: [DrugA]
weights: {efficacy: 0.6, safety: 0.25, cost: 0.15}
constraints: {toxicity_max: 60}
run:
  trials: 100
  seed: 7
`
	cfg, err := ParseYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.ResolvedWeights().Efficacy)
	require.NotNil(t, cfg.ResolvedConstraints().ToxicityMax)
	assert.Equal(t, 60.0, *cfg.ResolvedConstraints().ToxicityMax)
}

func TestParseYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "space: ["},
		{"bad log level", "log_level: loud\nscenario: balanced\n" + spaceBlock()},
		{"neither scenario nor weights", spaceBlock() + "run: {trials: 10, seed: 1}"},
		{"inverted range", `
scenario: balanced
space:
  size_nm: {min: 200, max: 50}
  charge_mv: {min: -30, max: 30}
  dose_mg_per_kg: {min: 0.5, max: 20}
  materials: [PLGA]
  ligands: [None]
  payloads: [DrugA]
`},
		{"negative weights", spaceBlock() + "weights: {efficacy: -0.5, safety: 0.3, cost: 0.2}"},
		{"trials over ceiling", "scenario: balanced\n" + spaceBlock() + "run: {trials: 5000, seed: 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func spaceBlock() string {
	return `
space:
  size_nm: {min: 50, max: 200}
  charge_mv: {min: -30, max: 30}
  dose_mg_per_kg: {min: 0.5, max: 20}
  materials: [PLGA]
  ligands: [None]
  payloads: [DrugA]
`
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "safety_first", cfg.Scenario)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}
