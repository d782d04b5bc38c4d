package optimize

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/internal/scoring"
	"github.com/ghasn43/naobio-pro/pkg/utils"
)

// Perturbation is one sensitivity entry: a single parameter changed in one
// direction (or substituted with one alternative choice), re-simulated and
// re-scored against the reference.
type Perturbation struct {
	Parameter string `json:"parameter"`
	// Variant is "+" or "-" for continuous steps, or the substituted
	// choice for categorical parameters.
	Variant string  `json:"variant"`
	Delta   float64 `json:"delta,omitempty"`

	Score      float64 `json:"score"`
	ScoreDelta float64 `json:"score_delta"`

	// Skipped marks a perturbation whose simulation failed; it carries
	// zero impact rather than aborting the analysis.
	Skipped bool `json:"skipped,omitempty"`
}

// SensitivityReport holds the reference evaluation and the perturbation
// entries ranked by impact magnitude. The largest entries are the drivers
// of the design.
type SensitivityReport struct {
	Reference design.Candidate `json:"reference"`

	BaseScore    float64  `json:"base_score"`
	BaseEfficacy float64  `json:"base_efficacy"`
	BaseToxicity float64  `json:"base_toxicity"`
	BaseCost     float64  `json:"base_cost"`
	Drivers      []string `json:"drivers,omitempty"`

	Entries []Perturbation `json:"entries"`
}

// SensitivityOptions configure the one-at-a-time perturbation analysis.
type SensitivityOptions struct {
	SizeStepNM   float64
	ChargeStepMV float64
	DoseStepMgKg float64
	PDIStep      float64

	// Parallelism bounds concurrent simulate calls; perturbations are
	// mutually independent.
	Parallelism int
}

// DefaultSensitivityOptions returns the reference step sizes.
func DefaultSensitivityOptions() SensitivityOptions {
	return SensitivityOptions{
		SizeStepNM:   10.0,
		ChargeStepMV: 5.0,
		DoseStepMgKg: 2.0,
		PDIStep:      0.04,
		Parallelism:  4,
	}
}

type perturbJob struct {
	parameter string
	variant   string
	delta     float64
	cand      design.Candidate
}

// Sensitivity runs a one-at-a-time analysis around a reference candidate:
// each continuous parameter stepped both ways (clamped to the space), each
// categorical parameter substituted with every alternative choice. Every
// perturbation is simulated independently, with no caching, since the
// simulator may be stateful. The reference candidate is never mutated.
func Sensitivity(space design.Space, weights design.Weights, ref design.Candidate, sim design.Simulator, opts SensitivityOptions) (*SensitivityReport, error) {
	if sim == nil {
		return nil, &design.ConfigurationError{Field: "simulator", Reason: "is required"}
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}

	baseResp, err := sim.Simulate(ref)
	if err != nil {
		return nil, fmt.Errorf("reference simulation failed: %w", err)
	}
	baseEff := scoring.Efficacy(baseResp)
	baseTox, drivers := scoring.Toxicity(ref, baseResp)
	baseCost := scoring.Cost(ref)
	baseScore := scoring.Scalarized(weights, baseEff, baseTox, baseCost)

	jobs := buildJobs(space, ref, opts)
	entries := make([]Perturbation, len(jobs))

	var g errgroup.Group
	g.SetLimit(opts.Parallelism)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			entry := Perturbation{
				Parameter: job.parameter,
				Variant:   job.variant,
				Delta:     job.delta,
			}
			resp, err := sim.Simulate(job.cand)
			if err != nil {
				entry.Skipped = true
				entry.Score = baseScore
			} else {
				eff := scoring.Efficacy(resp)
				tox, _ := scoring.Toxicity(job.cand, resp)
				cost := scoring.Cost(job.cand)
				entry.Score = scoring.Scalarized(weights, eff, tox, cost)
				entry.ScoreDelta = entry.Score - baseScore
			}
			entries[i] = entry
			return nil
		})
	}
	// Perturbation failures are recorded per entry, never returned.
	_ = g.Wait()

	sort.SliceStable(entries, func(i, j int) bool {
		return math.Abs(entries[i].ScoreDelta) > math.Abs(entries[j].ScoreDelta)
	})

	return &SensitivityReport{
		Reference:    ref,
		BaseScore:    baseScore,
		BaseEfficacy: baseEff,
		BaseToxicity: baseTox,
		BaseCost:     baseCost,
		Drivers:      drivers,
		Entries:      entries,
	}, nil
}

func buildJobs(space design.Space, ref design.Candidate, opts SensitivityOptions) []perturbJob {
	var jobs []perturbJob

	continuous := []struct {
		parameter string
		step      float64
		bounds    design.Range
		get       func(design.Candidate) float64
		set       func(*design.Candidate, float64)
	}{
		{"size_nm", opts.SizeStepNM, space.SizeNM,
			func(c design.Candidate) float64 { return c.SizeNM },
			func(c *design.Candidate, v float64) { c.SizeNM = v }},
		{"charge_mv", opts.ChargeStepMV, space.ChargeMV,
			func(c design.Candidate) float64 { return c.ChargeMV },
			func(c *design.Candidate, v float64) { c.ChargeMV = v }},
		{"dose_mg_per_kg", opts.DoseStepMgKg, space.DoseMgKg,
			func(c design.Candidate) float64 { return c.DoseMgKg },
			func(c *design.Candidate, v float64) { c.DoseMgKg = v }},
		{"pdi", opts.PDIStep, design.Range{Min: design.PDIMin, Max: design.PDIMax},
			func(c design.Candidate) float64 { return c.PDI },
			func(c *design.Candidate, v float64) { c.PDI = v }},
	}

	for _, p := range continuous {
		if p.step <= 0 {
			continue
		}
		for _, sign := range []float64{1, -1} {
			cand := ref
			value := utils.ClampFloat64(p.get(ref)+sign*p.step, p.bounds.Min, p.bounds.Max)
			p.set(&cand, value)
			variant := "+"
			if sign < 0 {
				variant = "-"
			}
			jobs = append(jobs, perturbJob{
				parameter: p.parameter,
				variant:   variant,
				delta:     value - p.get(ref),
				cand:      cand,
			})
		}
	}

	categorical := []struct {
		parameter string
		current   string
		set       func(*design.Candidate, string)
	}{
		{"material", ref.Material, func(c *design.Candidate, v string) { c.Material = v }},
		{"ligand", ref.Ligand, func(c *design.Candidate, v string) { c.Ligand = v }},
		{"payload", ref.Payload, func(c *design.Candidate, v string) { c.Payload = v }},
	}

	for _, p := range categorical {
		for _, choice := range space.Choices(p.parameter) {
			if choice == p.current {
				continue
			}
			cand := ref
			p.set(&cand, choice)
			jobs = append(jobs, perturbJob{
				parameter: p.parameter,
				variant:   choice,
				cand:      cand,
			})
		}
	}

	return jobs
}
