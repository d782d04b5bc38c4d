package optimize

import "sort"

// Dominates reports whether a dominates b over the three objective axes:
// efficacy maximized, toxicity and cost minimized. a must be at least as
// good on every axis and strictly better on at least one; equal-valued
// trials do not dominate each other.
func Dominates(a, b Trial) bool {
	if a.Efficacy < b.Efficacy || a.Toxicity > b.Toxicity || a.Cost > b.Cost {
		return false
	}
	return a.Efficacy > b.Efficacy || a.Toxicity < b.Toxicity || a.Cost < b.Cost
}

// Front extracts the Pareto front: the feasible trials with no dominator
// among the feasible set. Output preserves original trial order; duplicate
// valued trials are all retained. Pairwise O(n^2), fine with n bounded by
// the trial ceiling.
func Front(trials []Trial) []Trial {
	feasible := make([]Trial, 0, len(trials))
	for _, t := range trials {
		if t.Feasible {
			feasible = append(feasible, t)
		}
	}
	if len(feasible) <= 1 {
		return feasible
	}

	var front []Trial
	for i := range feasible {
		dominated := false
		for j := range feasible {
			if i == j {
				continue
			}
			if Dominates(feasible[j], feasible[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, feasible[i])
		}
	}
	return front
}

// sortTrials orders trials best first: highest scalarized score, then
// lowest toxicity, then lowest cost. The sort is stable so equal trials
// keep their ledger order.
func sortTrials(trials []Trial) {
	sort.SliceStable(trials, func(i, j int) bool {
		if trials[i].Score != trials[j].Score {
			return trials[i].Score > trials[j].Score
		}
		if trials[i].Toxicity != trials[j].Toxicity {
			return trials[i].Toxicity < trials[j].Toxicity
		}
		return trials[i].Cost < trials[j].Cost
	})
}
