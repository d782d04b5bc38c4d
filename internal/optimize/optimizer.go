package optimize

import (
	"sync"

	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/internal/scoring"
	"github.com/ghasn43/naobio-pro/pkg/logger"
)

// infeasiblePenalty is the score fed to the sampler for infeasible trials,
// matching the "reject means very bad" convention of the scalarized
// objective. The trial itself keeps its true scores in the ledger.
const infeasiblePenalty = -1e9

// Trial is one entry of the run ledger: the sampled candidate, its scores,
// its feasibility verdict, and any per-trial error. Trials are appended in
// order and never mutated.
type Trial struct {
	Index     int              `json:"index"`
	Candidate design.Candidate `json:"candidate"`

	// Simulated is false when the hard gate short-circuited the simulator
	// call or the simulator failed; Response is zero in that case.
	Simulated bool            `json:"simulated"`
	Response  design.Response `json:"response"`

	Efficacy   float64  `json:"efficacy"`
	Toxicity   float64  `json:"toxicity"`
	Cost       float64  `json:"cost"`
	Confidence float64  `json:"confidence"`
	Drivers    []string `json:"drivers,omitempty"`

	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason,omitempty"`

	// Score is the scalarized optimization signal.
	Score float64 `json:"score"`

	Err error `json:"-"`
}

// Optimizer drives the sequential trial loop: sample, simulate, score,
// constrain, record. It owns the sampler's search state; accessors are
// safe to call from another goroutine while a run is in flight.
type Optimizer struct {
	space   design.Space
	weights design.Weights
	cons    design.Constraints
	sim     design.Simulator
	opts    Options

	progress func(trial int, bestScore float64)

	mu     sync.RWMutex
	trial  int
	best   *Trial
	ledger []Trial
}

// New validates the configuration and builds an optimizer. All
// configuration errors surface here, before any trial runs.
func New(space design.Space, weights design.Weights, cons design.Constraints, sim design.Simulator, opts Options) (*Optimizer, error) {
	if sim == nil {
		return nil, &design.ConfigurationError{Field: "simulator", Reason: "is required"}
	}
	if err := space.Validate(); err != nil {
		return nil, err
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := cons.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{
		space:   space,
		weights: weights,
		cons:    cons,
		sim:     sim,
		opts:    opts,
	}, nil
}

// WithProgress sets a callback invoked after every trial with the trial
// index and the best feasible score so far.
func (o *Optimizer) WithProgress(fn func(trial int, bestScore float64)) *Optimizer {
	o.progress = fn
	return o
}

// Run executes exactly opts.Trials trials and always returns a completed
// result: per-trial failures are recorded, not raised, and a run with zero
// feasible trials yields a result whose Best is nil.
func (o *Optimizer) Run() *Result {
	sampler := NewSampler(o.space, o.opts.Seed)

	for t := 0; t < o.opts.Trials; t++ {
		tr := o.runTrial(sampler, t)

		o.mu.Lock()
		o.trial = t + 1
		o.ledger = append(o.ledger, tr)
		if tr.Feasible && o.improves(tr) {
			best := tr
			o.best = &best
		}
		bestScore := 0.0
		if o.best != nil {
			bestScore = o.best.Score
		}
		o.mu.Unlock()

		if o.progress != nil {
			o.progress(t, bestScore)
		}
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	res := &Result{
		Space:       o.space,
		Weights:     o.weights,
		Constraints: o.cons,
		Options:     o.opts,
		Trials:      append([]Trial(nil), o.ledger...),
	}
	if o.best != nil {
		best := *o.best
		res.Best = &best
	}
	return res
}

func (o *Optimizer) runTrial(sampler *Sampler, t int) Trial {
	cand := sampler.Sample(t)
	tr := Trial{Index: t, Candidate: cand}

	// Structurally inadmissible candidates never reach the simulator.
	if ok, reason := scoring.HardGate(cand); !ok {
		tr.Toxicity, tr.Drivers = scoring.Toxicity(cand, design.Response{})
		tr.Cost = scoring.Cost(cand)
		tr.Confidence = scoring.Confidence(tr.Toxicity, tr.Cost)
		tr.Feasible = false
		tr.Reason = reason
		tr.Score = scoring.Scalarized(o.weights, tr.Efficacy, tr.Toxicity, tr.Cost)
		sampler.Observe(cand, infeasiblePenalty)
		logger.Debug("trial rejected before simulation", "trial", t, "reason", reason)
		return tr
	}

	resp, err := o.sim.Simulate(cand)
	if err != nil {
		tr.Err = &TrialError{Trial: t, Cause: err}
		tr.Feasible = false
		tr.Reason = "simulation failed"
		logger.Warn("trial simulation failed", "trial", t, "error", err)
		return tr
	}

	tr.Simulated = true
	tr.Response = resp
	tr.Efficacy = scoring.Efficacy(resp)
	tr.Toxicity, tr.Drivers = scoring.Toxicity(cand, resp)
	tr.Cost = scoring.Cost(cand)
	tr.Confidence = scoring.Confidence(tr.Toxicity, tr.Cost)
	tr.Score = scoring.Scalarized(o.weights, tr.Efficacy, tr.Toxicity, tr.Cost)

	feas := scoring.EvaluateConstraints(cand, tr.Toxicity, tr.Cost, o.cons)
	tr.Feasible = feas.Feasible
	tr.Reason = feas.Reason

	if tr.Feasible {
		sampler.Observe(cand, tr.Score)
	} else {
		sampler.Observe(cand, infeasiblePenalty)
	}
	return tr
}

// improves reports whether tr beats the current best: higher scalarized
// score, with lower toxicity then lower cost as tie-breakers.
func (o *Optimizer) improves(tr Trial) bool {
	if o.best == nil {
		return true
	}
	if tr.Score != o.best.Score {
		return tr.Score > o.best.Score
	}
	if tr.Toxicity != o.best.Toxicity {
		return tr.Toxicity < o.best.Toxicity
	}
	return tr.Cost < o.best.Cost
}

// CurrentTrial returns how many trials have completed so far.
func (o *Optimizer) CurrentTrial() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.trial
}

// BestSoFar returns a copy of the current feasible best, if any.
func (o *Optimizer) BestSoFar() (Trial, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.best == nil {
		return Trial{}, false
	}
	return *o.best, true
}

// Run validates the configuration and executes a full run in one call.
func Run(space design.Space, weights design.Weights, cons design.Constraints, sim design.Simulator, opts Options) (*Result, error) {
	opt, err := New(space, weights, cons, sim, opts)
	if err != nil {
		return nil, err
	}
	return opt.Run(), nil
}
