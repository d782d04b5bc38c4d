package scoring

import (
	"math"

	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/pkg/utils"
)

// Cost/complexity proxy tables. Unlisted entries fall back to the mid-range
// defaults so an unknown material never zeroes the estimate.
var (
	materialBaseCost = map[string]float64{
		"PLGA":  30,
		"Lipid": 40,
		"Gold":  60,
	}
	ligandCost = map[string]float64{
		"None":   0,
		"PEG":    10,
		"Folate": 20,
	}
	payloadCost = map[string]float64{
		"DrugA": 10,
		"DrugB": 20,
	}
)

const (
	defaultMaterialCost = 45.0
	defaultLigandCost   = 10.0
	defaultPayloadCost  = 15.0
)

// Cost scores manufacturing cost/complexity on 0..100 from declared
// formulation attributes only. It is deterministic and independent of the
// simulator, so it can be evaluated without a simulation run.
func Cost(c design.Candidate) float64 {
	base := lookup(materialBaseCost, c.Material, defaultMaterialCost)
	ligand := lookup(ligandCost, c.Ligand, defaultLigandCost)
	payload := lookup(payloadCost, c.Payload, defaultPayloadCost)
	doseScale := 0.1 * c.DoseMgKg
	pdiPenalty := 100 * math.Max(0.0, c.PDI-0.2)

	return utils.ClampFloat64(base+ligand+payload+doseScale+pdiPenalty, ScoreMin, ScoreMax)
}

func lookup(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}
