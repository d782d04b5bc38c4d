package scoring

import (
	"fmt"

	"github.com/ghasn43/naobio-pro/internal/design"
)

// HardPDIMax is the engine-fixed ceiling on the dispersion index. It is
// always enforced, regardless of scenario or constraint configuration: a
// formulation above it is structurally inadmissible.
const HardPDIMax = 0.35

// Feasibility is the outcome of the constraint evaluation for one trial.
type Feasibility struct {
	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason,omitempty"`
}

// HardGate checks the structural admissibility of a candidate before any
// simulation is spent on it. It needs nothing from the simulator, so the
// trial loop calls it first and skips the simulate call on failure.
func HardGate(c design.Candidate) (bool, string) {
	if c.PDI > HardPDIMax {
		return false, fmt.Sprintf("pdi>%g", HardPDIMax)
	}
	return true, ""
}

// EvaluateConstraints applies the fixed hard dispersion-index gate and any
// active soft ceilings. It is a pure predicate: violating candidates are
// flagged, never discarded.
func EvaluateConstraints(c design.Candidate, toxicity, cost float64, cons design.Constraints) Feasibility {
	if c.PDI > HardPDIMax {
		return Feasibility{Feasible: false, Reason: fmt.Sprintf("pdi>%g", HardPDIMax)}
	}
	if cons.ToxicityMax != nil && toxicity > *cons.ToxicityMax {
		return Feasibility{Feasible: false, Reason: fmt.Sprintf("toxicity>%g", *cons.ToxicityMax)}
	}
	if cons.CostMax != nil && cost > *cons.CostMax {
		return Feasibility{Feasible: false, Reason: fmt.Sprintf("cost>%g", *cons.CostMax)}
	}
	return Feasibility{Feasible: true}
}
