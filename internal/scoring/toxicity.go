package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/pkg/utils"
)

// materialToxicityPriors are additive risk priors per material class.
// Unlisted materials get defaultMaterialPrior.
var materialToxicityPriors = map[string]float64{
	"Gold":  10,
	"Lipid": 5,
	"PLGA":  3,
}

const defaultMaterialPrior = 5.0

type riskContribution struct {
	label  string
	points float64
}

// Toxicity scores formulation risk on 0..100 using a transparent rule
// hybrid of declared attributes and simulator-independent heuristics. It
// also returns the risk drivers ranked by contribution, strongest first,
// for explainability. Whenever the score is positive at least one driver
// names where it came from. The rule table is intentionally simple; a
// learned model can replace it behind the same signature.
func Toxicity(c design.Candidate, _ design.Response) (float64, []string) {
	var risks []riskContribution
	add := func(points float64, label string) {
		risks = append(risks, riskContribution{label: label, points: points})
	}

	// Very small particles increase cellular uptake and toxicity risk.
	if c.SizeNM < 50 {
		add(20, "Small size (<50nm)")
	} else if c.SizeNM > 180 {
		add(10, "Large size (>180nm)")
	}

	// High surface charge magnitude can disrupt membranes.
	if math.Abs(c.ChargeMV) > 25 {
		add(25, "High |zeta| (>25mV)")
	} else if math.Abs(c.ChargeMV) > 15 {
		add(10, "Moderate |zeta| (>15mV)")
	}

	if c.DoseMgKg > 10 {
		add(20, "High dose (>10 mg/kg)")
	} else if c.DoseMgKg > 5 {
		add(10, "Moderate dose (>5 mg/kg)")
	}

	// Dispersion index as an aggregation proxy.
	if c.PDI > 0.25 {
		add(20, "High PDI (>0.25)")
	} else if c.PDI > 0.2 {
		add(10, "Moderate PDI (>0.20)")
	}

	prior, ok := materialToxicityPriors[c.Material]
	if !ok {
		prior = defaultMaterialPrior
	}
	if prior > 0 {
		add(prior, fmt.Sprintf("Material class risk (%s)", c.Material))
	}

	score := 0.0
	for _, r := range risks {
		score += r.points
	}
	sort.SliceStable(risks, func(i, j int) bool { return risks[i].points > risks[j].points })

	drivers := make([]string, len(risks))
	for i, r := range risks {
		drivers[i] = r.label
	}

	return utils.ClampFloat64(score, ScoreMin, ScoreMax), drivers
}
