package optimize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghasn43/naobio-pro/internal/design"
)

// fixedSimulator returns the same response for every candidate.
type fixedSimulator struct {
	resp design.Response
}

func (s fixedSimulator) Simulate(design.Candidate) (design.Response, error) {
	return s.resp, nil
}

func testSpace() design.Space {
	return design.DefaultSpace()
}

func testWeights() design.Weights {
	return design.Weights{Efficacy: 0.45, Safety: 0.35, Cost: 0.20}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	space := testSpace()
	w := testWeights()
	sim := design.PlaceholderSimulator{}

	_, err := New(space, w, design.Constraints{}, nil, Options{Trials: 10, Seed: 1})
	assert.Error(t, err)

	_, err = New(space, w, design.Constraints{}, sim, Options{Trials: 0, Seed: 1})
	var cfgErr *design.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "trials", cfgErr.Field)

	_, err = New(space, w, design.Constraints{}, sim, Options{Trials: MaxTrials + 1, Seed: 1})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "trials", cfgErr.Field)

	bad := space
	bad.Materials = nil
	_, err = New(bad, w, design.Constraints{}, sim, Options{Trials: 10, Seed: 1})
	assert.Error(t, err)

	_, err = New(space, design.Weights{Efficacy: -1}, design.Constraints{}, sim, Options{Trials: 10, Seed: 1})
	assert.Error(t, err)
}

func TestRun_ExactTrialCountInOrder(t *testing.T) {
	res, err := Run(testSpace(), testWeights(), design.Constraints{}, design.PlaceholderSimulator{}, Options{Trials: 30, Seed: 3})
	require.NoError(t, err)

	require.Len(t, res.Trials, 30)
	for i, tr := range res.Trials {
		assert.Equal(t, i, tr.Index)
	}
}

func TestRun_Deterministic(t *testing.T) {
	opts := Options{Trials: 40, Seed: 11}
	sim := design.PlaceholderSimulator{}

	res1, err := Run(testSpace(), testWeights(), design.Constraints{}, sim, opts)
	require.NoError(t, err)
	res2, err := Run(testSpace(), testWeights(), design.Constraints{}, sim, opts)
	require.NoError(t, err)

	require.Len(t, res2.Trials, len(res1.Trials))
	for i := range res1.Trials {
		assert.Equal(t, res1.Trials[i].Candidate, res2.Trials[i].Candidate, "trial %d candidate", i)
		assert.Equal(t, res1.Trials[i].Score, res2.Trials[i].Score, "trial %d score", i)
		assert.Equal(t, res1.Trials[i].Feasible, res2.Trials[i].Feasible, "trial %d feasibility", i)
	}

	require.NotNil(t, res1.Best)
	require.NotNil(t, res2.Best)
	assert.Equal(t, res1.Best.Index, res2.Best.Index)
	assert.Equal(t, res1.Best.Candidate, res2.Best.Candidate)
}

func TestRun_DifferentSeedsDiverge(t *testing.T) {
	sim := design.PlaceholderSimulator{}
	res1, err := Run(testSpace(), testWeights(), design.Constraints{}, sim, Options{Trials: 20, Seed: 1})
	require.NoError(t, err)
	res2, err := Run(testSpace(), testWeights(), design.Constraints{}, sim, Options{Trials: 20, Seed: 2})
	require.NoError(t, err)

	diverged := false
	for i := range res1.Trials {
		if res1.Trials[i].Candidate != res2.Trials[i].Candidate {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "different seeds should explore different candidates")
}

func TestRun_SimulatorFailureIsPerTrial(t *testing.T) {
	boom := errors.New("solver diverged")
	calls := 0
	sim := design.SimulatorFunc(func(c design.Candidate) (design.Response, error) {
		calls++
		if calls%3 == 0 {
			return design.Response{}, boom
		}
		return design.PlaceholderSimulator{}.Simulate(c)
	})

	res, err := Run(testSpace(), testWeights(), design.Constraints{}, sim, Options{Trials: 30, Seed: 5})
	require.NoError(t, err)
	require.Len(t, res.Trials, 30)

	errored := 0
	for _, tr := range res.Trials {
		if tr.Err != nil {
			errored++
			assert.False(t, tr.Feasible)
			assert.Equal(t, "simulation failed", tr.Reason)

			var trialErr *TrialError
			require.ErrorAs(t, tr.Err, &trialErr)
			assert.ErrorIs(t, tr.Err, boom)
		}
	}
	assert.Greater(t, errored, 0)
	assert.Equal(t, errored, res.ErroredCount())

	// Failed trials never become the best.
	if res.Best != nil {
		assert.Nil(t, res.Best.Err)
	}
}

func TestRun_SoftConstraintEnforcement(t *testing.T) {
	toxMax := 20.0
	cons := design.Constraints{ToxicityMax: &toxMax}

	res, err := Run(testSpace(), testWeights(), cons, design.PlaceholderSimulator{}, Options{Trials: 60, Seed: 9})
	require.NoError(t, err)

	for _, tr := range res.Trials {
		if tr.Toxicity > toxMax && tr.Err == nil {
			assert.False(t, tr.Feasible, "trial %d exceeds toxicity_max but is feasible", tr.Index)
		}
	}
	if res.Best != nil {
		assert.LessOrEqual(t, res.Best.Toxicity, toxMax)
	}
}

func TestRun_NoFeasibleCandidate(t *testing.T) {
	// The material prior keeps toxicity strictly positive, so a zero
	// ceiling can never be met.
	toxMax := 0.0
	cons := design.Constraints{ToxicityMax: &toxMax}

	res, err := Run(testSpace(), testWeights(), cons, design.PlaceholderSimulator{}, Options{Trials: 50, Seed: 21})
	require.NoError(t, err)

	require.Len(t, res.Trials, 50)
	assert.Nil(t, res.Best)
	assert.False(t, res.Feasible())
	assert.Equal(t, 0, res.FeasibleCount())
	for _, tr := range res.Trials {
		assert.False(t, tr.Feasible)
	}
}

func TestRun_SampledCandidatesRespectSpace(t *testing.T) {
	space := testSpace()
	res, err := Run(space, testWeights(), design.Constraints{}, design.PlaceholderSimulator{}, Options{Trials: 80, Seed: 2})
	require.NoError(t, err)

	for _, tr := range res.Trials {
		c := tr.Candidate
		assert.True(t, space.SizeNM.Contains(c.SizeNM))
		assert.True(t, space.ChargeMV.Contains(c.ChargeMV))
		assert.True(t, space.DoseMgKg.Contains(c.DoseMgKg))
		assert.Contains(t, space.Materials, c.Material)
		assert.Contains(t, space.Ligands, c.Ligand)
		assert.Contains(t, space.Payloads, c.Payload)
		assert.GreaterOrEqual(t, c.PDI, design.PDIMin)
		assert.LessOrEqual(t, c.PDI, design.PDIMax)
		// Candidates within the hard ceiling always reach the simulator.
		assert.True(t, tr.Simulated)
	}
}

func TestRun_ScoresWithinDocumentedRanges(t *testing.T) {
	res, err := Run(testSpace(), testWeights(), design.Constraints{}, design.PlaceholderSimulator{}, Options{Trials: 40, Seed: 17})
	require.NoError(t, err)

	for _, tr := range res.Trials {
		assert.GreaterOrEqual(t, tr.Efficacy, 0.0)
		assert.LessOrEqual(t, tr.Efficacy, 100.0)
		assert.GreaterOrEqual(t, tr.Toxicity, 0.0)
		assert.LessOrEqual(t, tr.Toxicity, 100.0)
		assert.GreaterOrEqual(t, tr.Cost, 0.0)
		assert.LessOrEqual(t, tr.Cost, 100.0)
		if tr.Err == nil {
			assert.GreaterOrEqual(t, tr.Confidence, 0.0)
			assert.LessOrEqual(t, tr.Confidence, 1.0)
		}
	}
}

func TestOptimizer_ProgressCallback(t *testing.T) {
	opt, err := New(testSpace(), testWeights(), design.Constraints{}, design.PlaceholderSimulator{}, Options{Trials: 15, Seed: 4})
	require.NoError(t, err)

	var seen []int
	opt.WithProgress(func(trial int, bestScore float64) {
		seen = append(seen, trial)
	})
	res := opt.Run()

	require.Len(t, seen, 15)
	assert.Equal(t, 14, seen[len(seen)-1])
	assert.Equal(t, 15, opt.CurrentTrial())

	best, ok := opt.BestSoFar()
	if res.Best != nil {
		require.True(t, ok)
		assert.Equal(t, res.Best.Index, best.Index)
	}
}

func TestResult_TopCandidates(t *testing.T) {
	res, err := Run(testSpace(), testWeights(), design.Constraints{}, design.PlaceholderSimulator{}, Options{Trials: 30, Seed: 8})
	require.NoError(t, err)

	top := res.TopCandidates(5)
	require.LessOrEqual(t, len(top), 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
	if len(top) > 0 && res.Best != nil {
		assert.Equal(t, res.Best.Index, top[0].Index)
	}
}
