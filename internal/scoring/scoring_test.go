package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghasn43/naobio-pro/internal/design"
)

func benignCandidate() design.Candidate {
	return design.Candidate{
		SizeNM:   120,
		ChargeMV: 5,
		Material: "PLGA",
		Ligand:   "PEG",
		Payload:  "DrugA",
		DoseMgKg: 3,
		PDI:      0.15,
	}
}

func TestEfficacy_ClippedToRange(t *testing.T) {
	assert.Equal(t, 0.0, Efficacy(design.Response{AUCTarget: -50}))
	assert.Equal(t, 100.0, Efficacy(design.Response{AUCTarget: 1000, CmaxTarget: 1000}))

	mid := Efficacy(design.Response{AUCTarget: 50, CmaxTarget: 50, ReleaseStability: 0.8})
	assert.InDelta(t, 0.5*50+0.3*50+0.2*80, mid, 1e-9)
}

func TestToxicity_BenignCandidate(t *testing.T) {
	tox, drivers := Toxicity(benignCandidate(), design.Response{})

	// Only the material prior contributes, and it is named as a driver.
	assert.InDelta(t, 3.0, tox, 1e-9)
	require.NotEmpty(t, drivers)
	assert.Contains(t, drivers[0], "PLGA")
}

func TestToxicity_RiskyCandidate_RankedDrivers(t *testing.T) {
	c := design.Candidate{
		SizeNM:   40,   // +20 small size
		ChargeMV: -28,  // +25 high |zeta|
		Material: "Gold", // +10 prior
		Ligand:   "None",
		Payload:  "DrugB",
		DoseMgKg: 12,   // +20 high dose
		PDI:      0.3,  // +20 high PDI
	}

	tox, drivers := Toxicity(c, design.Response{})
	assert.InDelta(t, 95.0, tox, 1e-9)
	require.Len(t, drivers, 5)

	// Strongest contribution first.
	assert.Equal(t, "High |zeta| (>25mV)", drivers[0])
	assert.Contains(t, drivers[len(drivers)-1], "Gold")
}

func TestToxicity_WorstCaseStaysInRange(t *testing.T) {
	c := design.Candidate{SizeNM: 10, ChargeMV: 30, Material: "Gold", DoseMgKg: 20, PDI: 0.34}
	tox, drivers := Toxicity(c, design.Response{})
	assert.InDelta(t, 95.0, tox, 1e-9)
	assert.LessOrEqual(t, tox, ScoreMax)
	assert.NotEmpty(t, drivers)
}

func TestToxicity_NonEmptyDriversWheneverPositive(t *testing.T) {
	tox, drivers := Toxicity(benignCandidate(), design.Response{})
	require.Greater(t, tox, 0.0)
	assert.NotEmpty(t, drivers)
}

func TestCost_KnownTables(t *testing.T) {
	c := benignCandidate()
	// PLGA 30 + PEG 10 + DrugA 10 + dose 0.3 + no PDI penalty.
	assert.InDelta(t, 50.3, Cost(c), 1e-9)

	c.Material = "Gold"
	c.Ligand = "Folate"
	c.Payload = "DrugB"
	c.PDI = 0.3
	// 60 + 20 + 20 + 0.3 + 10 = 110.3, clipped.
	assert.Equal(t, 100.0, Cost(c))
}

func TestCost_UnknownAttributesUseDefaults(t *testing.T) {
	c := benignCandidate()
	c.Material = "Silica"
	c.Ligand = "Transferrin"
	c.Payload = "DrugX"
	// 45 + 10 + 15 + 0.3
	assert.InDelta(t, 70.3, Cost(c), 1e-9)
}

func TestConfidence_Bounded(t *testing.T) {
	assert.Equal(t, 0.95, Confidence(0, 0))
	assert.Equal(t, 0.05, Confidence(100, 100))
	assert.InDelta(t, 1.0-0.005*40-0.003*50, Confidence(40, 50), 1e-9)
}

func TestScalarized_LinearCombination(t *testing.T) {
	w := design.Weights{Efficacy: 0.5, Safety: 0.3, Cost: 0.2}
	got := Scalarized(w, 80, 20, 40)
	assert.InDelta(t, 0.5*80-0.3*20-0.2*40, got, 1e-9)
}

func TestScalarized_EfficacyWeightMonotonicity(t *testing.T) {
	// With toxicity and cost held equal, raising the efficacy weight never
	// lowers the advantage of the higher-efficacy candidate.
	highEff := Scalarized(design.Weights{Efficacy: 0.6, Safety: 0.2, Cost: 0.2}, 90, 30, 30) -
		Scalarized(design.Weights{Efficacy: 0.6, Safety: 0.2, Cost: 0.2}, 70, 30, 30)
	lowEff := Scalarized(design.Weights{Efficacy: 0.2, Safety: 0.4, Cost: 0.4}, 90, 30, 30) -
		Scalarized(design.Weights{Efficacy: 0.2, Safety: 0.4, Cost: 0.4}, 70, 30, 30)

	assert.Greater(t, highEff, 0.0)
	assert.Greater(t, lowEff, 0.0)
	assert.Greater(t, highEff, lowEff)
}

func TestHardGate(t *testing.T) {
	c := benignCandidate()
	ok, reason := HardGate(c)
	assert.True(t, ok)
	assert.Empty(t, reason)

	c.PDI = 0.4
	ok, reason = HardGate(c)
	assert.False(t, ok)
	assert.Equal(t, "pdi>0.35", reason)
}

func TestEvaluateConstraints(t *testing.T) {
	c := benignCandidate()

	feas := EvaluateConstraints(c, 30, 40, design.Constraints{})
	assert.True(t, feas.Feasible)

	toxMax := 25.0
	feas = EvaluateConstraints(c, 30, 40, design.Constraints{ToxicityMax: &toxMax})
	assert.False(t, feas.Feasible)
	assert.Equal(t, "toxicity>25", feas.Reason)

	costMax := 35.0
	feas = EvaluateConstraints(c, 10, 40, design.Constraints{CostMax: &costMax})
	assert.False(t, feas.Feasible)
	assert.Equal(t, "cost>35", feas.Reason)

	c.PDI = 0.5
	feas = EvaluateConstraints(c, 0, 0, design.Constraints{})
	assert.False(t, feas.Feasible)
	assert.Equal(t, "pdi>0.35", feas.Reason)
}
