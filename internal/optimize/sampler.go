package optimize

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/pkg/utils"
)

const (
	// startupTrials are drawn uniformly before the density model kicks in.
	startupTrials = 10
	// exploreProbability keeps a nonzero chance of sampling anywhere in
	// the space even once the model is trained.
	exploreProbability = 0.25
	// goodFraction is the top quantile of observed scores used to fit the
	// density model.
	goodFraction = 0.25
	// minModelSamples is the smallest good set worth fitting a model on.
	minModelSamples = 4
	// minBandwidthFraction floors each kernel bandwidth at a fraction of
	// the variable's range so the model never collapses to a point.
	minBandwidthFraction = 0.05
)

type observation struct {
	cand  design.Candidate
	score float64
}

// Sampler proposes candidates with a density-estimation strategy in the
// spirit of tree-structured Parzen estimators: uniform draws during
// startup, then Gaussian kernels centered on previously high-scoring
// candidates, mixed with occasional uniform exploration. The search state
// is an explicit owned value, not ambient globals, and the randomness of
// trial N is a pure function of (seed, N).
type Sampler struct {
	space design.Space
	seed  int64
	obs   []observation
}

// NewSampler creates a sampler over a validated design space.
func NewSampler(space design.Space, seed int64) *Sampler {
	return &Sampler{space: space, seed: seed}
}

// Observe feeds one completed trial back into the model. Errored trials
// are not observed; infeasible trials are observed with a penalty score so
// the model steers away from them.
func (s *Sampler) Observe(c design.Candidate, score float64) {
	s.obs = append(s.obs, observation{cand: c, score: score})
}

// Sample draws the candidate for the given trial index.
func (s *Sampler) Sample(trial int) design.Candidate {
	rng := utils.TrialSource(s.seed, trial)

	good := s.goodSet()
	if len(s.obs) < startupTrials || len(good) < minModelSamples {
		return s.uniform(rng)
	}
	if rng.BernoulliBool(exploreProbability) {
		return s.uniform(rng)
	}
	return s.fromModel(rng, good)
}

// goodSet returns the observations at or above the top-quantile score
// threshold.
func (s *Sampler) goodSet() []observation {
	if len(s.obs) == 0 {
		return nil
	}
	scores := make([]float64, len(s.obs))
	for i, o := range s.obs {
		scores[i] = o.score
	}
	sort.Float64s(scores)
	threshold := stat.Quantile(1-goodFraction, stat.Empirical, scores, nil)

	var good []observation
	for _, o := range s.obs {
		if o.score >= threshold {
			good = append(good, o)
		}
	}
	return good
}

func (s *Sampler) uniform(rng *utils.RandSource) design.Candidate {
	return design.Candidate{
		SizeNM:   rng.UniformFloat64(s.space.SizeNM.Min, s.space.SizeNM.Max),
		ChargeMV: rng.UniformFloat64(s.space.ChargeMV.Min, s.space.ChargeMV.Max),
		Material: uniformChoice(rng, s.space.Choices("material")),
		Ligand:   uniformChoice(rng, s.space.Choices("ligand")),
		Payload:  uniformChoice(rng, s.space.Choices("payload")),
		DoseMgKg: rng.UniformFloat64(s.space.DoseMgKg.Min, s.space.DoseMgKg.Max),
		PDI:      rng.UniformFloat64(design.PDIMin, design.PDIMax),
	}
}

// fromModel draws around a randomly chosen good candidate: Gaussian
// kernels for the continuous variables, smoothed frequency weights for the
// categorical ones. Smoothing keeps every declared choice reachable.
func (s *Sampler) fromModel(rng *utils.RandSource, good []observation) design.Candidate {
	center := good[rng.Intn(len(good))].cand

	sizes := make([]float64, len(good))
	charges := make([]float64, len(good))
	doses := make([]float64, len(good))
	pdis := make([]float64, len(good))
	for i, o := range good {
		sizes[i] = o.cand.SizeNM
		charges[i] = o.cand.ChargeMV
		doses[i] = o.cand.DoseMgKg
		pdis[i] = o.cand.PDI
	}

	return design.Candidate{
		SizeNM:   kernelDraw(rng, center.SizeNM, sizes, s.space.SizeNM),
		ChargeMV: kernelDraw(rng, center.ChargeMV, charges, s.space.ChargeMV),
		Material: weightedChoice(rng, s.space.Choices("material"), good, func(c design.Candidate) string { return c.Material }),
		Ligand:   weightedChoice(rng, s.space.Choices("ligand"), good, func(c design.Candidate) string { return c.Ligand }),
		Payload:  weightedChoice(rng, s.space.Choices("payload"), good, func(c design.Candidate) string { return c.Payload }),
		DoseMgKg: kernelDraw(rng, center.DoseMgKg, doses, s.space.DoseMgKg),
		PDI:      kernelDraw(rng, center.PDI, pdis, design.Range{Min: design.PDIMin, Max: design.PDIMax}),
	}
}

// kernelDraw samples a Gaussian kernel centered on one good value with a
// bandwidth from the spread of all good values, clamped to the bounds.
func kernelDraw(rng *utils.RandSource, center float64, values []float64, r design.Range) float64 {
	bw := stat.StdDev(values, nil)
	if floor := minBandwidthFraction * r.Width(); !(bw > floor) {
		bw = floor
	}
	return utils.ClampFloat64(rng.NormFloat64(center, bw), r.Min, r.Max)
}

func uniformChoice(rng *utils.RandSource, choices []string) string {
	if len(choices) == 1 {
		return choices[0]
	}
	return choices[rng.Intn(len(choices))]
}

// weightedChoice samples a categorical choice in proportion to its count
// in the good set, with add-one smoothing.
func weightedChoice(rng *utils.RandSource, choices []string, good []observation, value func(design.Candidate) string) string {
	if len(choices) == 1 {
		return choices[0]
	}

	weights := make([]float64, len(choices))
	total := 0.0
	for i, choice := range choices {
		w := 1.0
		for _, o := range good {
			if value(o.cand) == choice {
				w++
			}
		}
		weights[i] = w
		total += w
	}

	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
