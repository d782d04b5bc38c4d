package audit

import (
	"fmt"
	"strings"
)

// Report renders the record as a plain-text summary suitable for review
// and printing. Like the JSON form, it is a derived view.
func (r Record) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Design Optimization Audit Report\n")
	fmt.Fprintf(&b, "================================\n\n")
	fmt.Fprintf(&b, "Run ID:          %s\n", r.runID)
	fmt.Fprintf(&b, "Timestamp (UTC): %s\n", r.timestamp.Format(timestampLayout))
	if r.scenarioKey != "" {
		fmt.Fprintf(&b, "Scenario:        %s (key: %s)\n", r.scenarioName, r.scenarioKey)
	}

	fmt.Fprintf(&b, "\nConfiguration\n-------------\n")
	fmt.Fprintf(&b, "Weights:     efficacy=%.3f safety=%.3f cost=%.3f\n",
		r.weights.Efficacy, r.weights.Safety, r.weights.Cost)
	fmt.Fprintf(&b, "Size (nm):   [%g, %g]\n", r.space.SizeNM.Min, r.space.SizeNM.Max)
	fmt.Fprintf(&b, "Charge (mV): [%g, %g]\n", r.space.ChargeMV.Min, r.space.ChargeMV.Max)
	fmt.Fprintf(&b, "Dose (mg/kg): [%g, %g]\n", r.space.DoseMgKg.Min, r.space.DoseMgKg.Max)
	fmt.Fprintf(&b, "Materials:   %s\n", strings.Join(r.space.Materials, ", "))
	if r.constraints.ToxicityMax != nil {
		fmt.Fprintf(&b, "Toxicity max: %g\n", *r.constraints.ToxicityMax)
	}
	if r.constraints.CostMax != nil {
		fmt.Fprintf(&b, "Cost max:     %g\n", *r.constraints.CostMax)
	}
	fmt.Fprintf(&b, "Trials: %d  Seed: %d\n", r.settings.Trials, r.settings.Seed)

	if r.outcome == nil {
		fmt.Fprintf(&b, "\nOutcome: run in progress (not sealed)\n")
		return b.String()
	}

	o := r.outcome
	fmt.Fprintf(&b, "\nOutcome\n-------\n")
	fmt.Fprintf(&b, "Trials: %d total, %d feasible, %d infeasible, %d errored\n",
		o.TotalTrials, o.FeasibleTrials, o.InfeasibleTrials, o.ErroredTrials)
	fmt.Fprintf(&b, "Pareto front size: %d\n", o.ParetoFrontSize)

	if o.BestCandidate == nil {
		fmt.Fprintf(&b, "Best design: none (no feasible candidate)\n")
	} else {
		c := o.BestCandidate
		fmt.Fprintf(&b, "Best design: size=%.1fnm charge=%.1fmV material=%s ligand=%s payload=%s dose=%.2fmg/kg pdi=%.3f\n",
			c.SizeNM, c.ChargeMV, c.Material, c.Ligand, c.Payload, c.DoseMgKg, c.PDI)
		s := o.BestScores
		fmt.Fprintf(&b, "Best scores: efficacy=%.2f toxicity=%.2f cost=%.2f confidence=%.2f scalarized=%.2f\n",
			s.Efficacy, s.Toxicity, s.Cost, s.Confidence, s.Scalarized)
	}
	if o.ScoreStats != nil {
		fmt.Fprintf(&b, "Feasible score stats: mean=%.2f median=%.2f p90=%.2f\n",
			o.ScoreStats.Mean, o.ScoreStats.Median, o.ScoreStats.P90)
	}
	if len(o.TopDrivers) > 0 {
		fmt.Fprintf(&b, "Key drivers: %s\n", strings.Join(o.TopDrivers, ", "))
	}

	fmt.Fprintf(&b, "\nResearch and educational use only. Outputs require experimental validation.\n")
	return b.String()
}
