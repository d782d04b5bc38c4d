package design

// Weights are the objective weights for scalarization. Each weight must be
// non-negative and at least one must be positive.
type Weights struct {
	Efficacy float64 `json:"efficacy" yaml:"efficacy"`
	Safety   float64 `json:"safety" yaml:"safety"`
	Cost     float64 `json:"cost" yaml:"cost"`
}

// DefaultWeights returns the balanced reference weighting.
func DefaultWeights() Weights {
	return Weights{Efficacy: 0.5, Safety: 0.3, Cost: 0.2}
}

// Validate checks that no weight is negative and the sum is positive.
func (w Weights) Validate() error {
	if w.Efficacy < 0 {
		return &ConfigurationError{Field: "weights.efficacy", Reason: "must be >= 0"}
	}
	if w.Safety < 0 {
		return &ConfigurationError{Field: "weights.safety", Reason: "must be >= 0"}
	}
	if w.Cost < 0 {
		return &ConfigurationError{Field: "weights.cost", Reason: "must be >= 0"}
	}
	if w.Efficacy+w.Safety+w.Cost <= 0 {
		return &ConfigurationError{Field: "weights", Reason: "at least one weight must be positive"}
	}
	return nil
}

// Normalized returns a copy of the weights scaled to sum to 1.
func (w Weights) Normalized() Weights {
	sum := w.Efficacy + w.Safety + w.Cost
	if sum <= 0 {
		sum = 1e-9
	}
	return Weights{
		Efficacy: w.Efficacy / sum,
		Safety:   w.Safety / sum,
		Cost:     w.Cost / sum,
	}
}

// Constraints are the optional soft policy ceilings. A nil field means the
// constraint is inactive. The hard dispersion-index ceiling is engine-fixed
// and not configurable here.
type Constraints struct {
	ToxicityMax *float64 `json:"toxicity_max,omitempty" yaml:"toxicity_max,omitempty"`
	CostMax     *float64 `json:"cost_max,omitempty" yaml:"cost_max,omitempty"`
}

// Validate rejects negative ceilings.
func (c Constraints) Validate() error {
	if c.ToxicityMax != nil && *c.ToxicityMax < 0 {
		return &ConfigurationError{Field: "constraints.toxicity_max", Reason: "must be >= 0"}
	}
	if c.CostMax != nil && *c.CostMax < 0 {
		return &ConfigurationError{Field: "constraints.cost_max", Reason: "must be >= 0"}
	}
	return nil
}
