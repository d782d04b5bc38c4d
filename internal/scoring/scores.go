// Package scoring computes the three objective scores for a candidate
// formulation: efficacy (higher is better), toxicity and cost (lower is
// better). All scores live on a common 0..100 scale so a weighted sum of
// them is meaningful. The functions are pure and never fail on well-formed
// input.
package scoring

import (
	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/pkg/utils"
)

// ScoreMin and ScoreMax bound every objective score.
const (
	ScoreMin = 0.0
	ScoreMax = 100.0
)

// Efficacy derives a potency score from the simulator response. The
// weighting favours total exposure over peak concentration, with release
// stability as a smaller stabilizing term.
func Efficacy(resp design.Response) float64 {
	raw := 0.5*resp.AUCTarget + 0.3*resp.CmaxTarget + 0.2*(resp.ReleaseStability*100.0)
	return utils.ClampFloat64(raw, ScoreMin, ScoreMax)
}

// Confidence is a bounded heuristic in [0.05, 0.95]: lower risk and lower
// cost mean higher confidence. Deliberately low-fidelity; the extension
// point for a learned uncertainty model.
func Confidence(toxicity, cost float64) float64 {
	conf := 1.0 - 0.005*toxicity - 0.003*cost
	return utils.ClampFloat64(conf, 0.05, 0.95)
}

// Scalarized combines the three objective scores into the single signal the
// optimizer maximizes: weighted efficacy minus weighted toxicity and cost
// penalties. Weights are normalized before use so callers may pass raw
// weights.
func Scalarized(w design.Weights, efficacy, toxicity, cost float64) float64 {
	n := w.Normalized()
	return n.Efficacy*efficacy - n.Safety*toxicity - n.Cost*cost
}
