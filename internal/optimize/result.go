package optimize

import "github.com/ghasn43/naobio-pro/internal/design"

// Result is the completed run: the full trial ledger in trial order, the
// feasible best (nil when no trial was feasible), and the configuration
// the run used. Treat it as read-only once produced; the analyzers and
// reporters only read it.
type Result struct {
	Space       design.Space       `json:"space"`
	Weights     design.Weights     `json:"weights"`
	Constraints design.Constraints `json:"constraints"`
	Options     Options            `json:"options"`

	Trials []Trial `json:"trials"`
	Best   *Trial  `json:"best,omitempty"`
}

// Feasible reports whether the run produced at least one feasible trial.
func (r *Result) Feasible() bool {
	return r.Best != nil
}

// FeasibleCount returns the number of feasible trials.
func (r *Result) FeasibleCount() int {
	n := 0
	for _, t := range r.Trials {
		if t.Feasible {
			n++
		}
	}
	return n
}

// ErroredCount returns the number of trials that failed evaluation.
func (r *Result) ErroredCount() int {
	n := 0
	for _, t := range r.Trials {
		if t.Err != nil {
			n++
		}
	}
	return n
}

// FeasibleScores returns the scalarized scores of the feasible trials, in
// trial order.
func (r *Result) FeasibleScores() []float64 {
	var scores []float64
	for _, t := range r.Trials {
		if t.Feasible {
			scores = append(scores, t.Score)
		}
	}
	return scores
}

// TopCandidates returns the k best feasible trials by scalarized score
// (ties broken by lower toxicity, then lower cost), preserving a stable
// order among equals. k <= 0 means all feasible trials.
func (r *Result) TopCandidates(k int) []Trial {
	feasible := make([]Trial, 0, len(r.Trials))
	for _, t := range r.Trials {
		if t.Feasible {
			feasible = append(feasible, t)
		}
	}
	sortTrials(feasible)
	if k > 0 && k < len(feasible) {
		feasible = feasible[:k]
	}
	return feasible
}
