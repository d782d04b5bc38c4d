// Package scenario ships the preset catalog: named objective weightings
// and policy ceilings for common optimization postures. The engine core is
// agnostic to how this catalog is populated; it only resolves presets by
// key.
package scenario

import (
	"fmt"
	"sort"

	"github.com/ghasn43/naobio-pro/internal/design"
)

// Preset is a pre-configured optimization posture.
type Preset struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Weights     design.Weights     `json:"weights"`
	Constraints design.Constraints `json:"constraints"`

	RecommendedTrials int `json:"recommended_trials"`
	RecommendedTopK   int `json:"recommended_top_k"`
}

// Validate checks the preset's weights, constraints, and recommendations.
func (p Preset) Validate() error {
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if err := p.Constraints.Validate(); err != nil {
		return err
	}
	if p.RecommendedTrials < 10 {
		return &design.ConfigurationError{
			Field:  fmt.Sprintf("scenario %q", p.Key),
			Reason: "recommended_trials must be >= 10",
		}
	}
	if p.RecommendedTopK < 1 {
		return &design.ConfigurationError{
			Field:  fmt.Sprintf("scenario %q", p.Key),
			Reason: "recommended_top_k must be >= 1",
		}
	}
	return nil
}

func ceiling(v float64) *float64 { return &v }

var catalog = map[string]Preset{
	"academic": {
		Key:   "academic",
		Title: "Academic / Educational",
		Description: "Balanced exploration for teaching and early research. " +
			"Encourages learning about trade-offs without strict constraints.",
		Weights:           design.Weights{Efficacy: 0.45, Safety: 0.35, Cost: 0.20},
		RecommendedTrials: 200,
		RecommendedTopK:   10,
	},
	"safety_first": {
		Key:   "safety_first",
		Title: "Safety-First (Translational)",
		Description: "Prioritizes safety and risk reduction with a strict toxicity " +
			"ceiling. Suitable for translational programs and pre-clinical decision support.",
		Weights:           design.Weights{Efficacy: 0.30, Safety: 0.55, Cost: 0.15},
		Constraints:       design.Constraints{ToxicityMax: ceiling(55)},
		RecommendedTrials: 300,
		RecommendedTopK:   12,
	},
	"cost_constrained": {
		Key:   "cost_constrained",
		Title: "Cost-Constrained (Manufacturing)",
		Description: "Prioritizes manufacturability and cost discipline while keeping " +
			"acceptable safety. Applies a cost ceiling to avoid unrealistic candidates.",
		Weights:           design.Weights{Efficacy: 0.35, Safety: 0.30, Cost: 0.35},
		Constraints:       design.Constraints{CostMax: ceiling(55)},
		RecommendedTrials: 300,
		RecommendedTopK:   12,
	},
	"efficacy_driven": {
		Key:   "efficacy_driven",
		Title: "Efficacy-Driven (Early Research)",
		Description: "Maximizes therapeutic efficacy with reasonable safety margins. " +
			"Minimal cost constraints; focus on finding the most potent candidates.",
		Weights:           design.Weights{Efficacy: 0.60, Safety: 0.25, Cost: 0.15},
		Constraints:       design.Constraints{ToxicityMax: ceiling(70)},
		RecommendedTrials: 250,
		RecommendedTopK:   15,
	},
	"balanced": {
		Key:   "balanced",
		Title: "Balanced (General Purpose)",
		Description: "Balanced optimization across all three objectives with no hard " +
			"ceilings; suitable for general design exploration.",
		Weights:           design.Weights{Efficacy: 0.40, Safety: 0.35, Cost: 0.25},
		RecommendedTrials: 250,
		RecommendedTopK:   12,
	},
	"regulatory_compliant": {
		Key:   "regulatory_compliant",
		Title: "Regulatory Compliant (Strict)",
		Description: "Maximum stringency: strict ceilings on both safety and cost, " +
			"focused on reproducible, well-characterized designs.",
		Weights:           design.Weights{Efficacy: 0.35, Safety: 0.50, Cost: 0.15},
		Constraints:       design.Constraints{ToxicityMax: ceiling(40), CostMax: ceiling(50)},
		RecommendedTrials: 400,
		RecommendedTopK:   10,
	},
}

// Get resolves a preset by key.
func Get(key string) (Preset, bool) {
	p, ok := catalog[key]
	return p, ok
}

// Keys lists the available preset keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every preset, keyed order matching Keys.
func All() []Preset {
	presets := make([]Preset, 0, len(catalog))
	for _, k := range Keys() {
		presets = append(presets, catalog[k])
	}
	return presets
}
