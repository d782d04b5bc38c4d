package design

// Candidate is one resolved point in the design space: a concrete
// nanoparticle formulation. Candidates are created by the sampler and are
// never mutated afterwards.
type Candidate struct {
	SizeNM   float64 `json:"size_nm" yaml:"size_nm"`
	ChargeMV float64 `json:"charge_mv" yaml:"charge_mv"`
	Material string  `json:"material" yaml:"material"`
	Ligand   string  `json:"ligand" yaml:"ligand"`
	Payload  string  `json:"payload" yaml:"payload"`
	DoseMgKg float64 `json:"dose_mg_per_kg" yaml:"dose_mg_per_kg"`

	// PDI is the polydispersity (dispersion) index, a fixed structural
	// attribute of the candidate with a hard feasibility ceiling.
	PDI float64 `json:"pdi" yaml:"pdi"`
}

// Response is the numeric payload an external simulator returns for a
// candidate. The engine treats it as opaque except through the scorer.
type Response struct {
	AUCTarget        float64 `json:"auc_target"`
	CmaxTarget       float64 `json:"cmax_target"`
	THalfProxy       float64 `json:"t_half_proxy"`
	ReleaseStability float64 `json:"release_stability"`
}

// Simulator is the single-operation capability the engine needs from the
// external simulation collaborator. Implementations may carry their own
// randomness; only sampler randomness is seeded by the engine.
type Simulator interface {
	Simulate(c Candidate) (Response, error)
}

// SimulatorFunc adapts a plain function to the Simulator interface.
type SimulatorFunc func(c Candidate) (Response, error)

// Simulate calls f(c).
func (f SimulatorFunc) Simulate(c Candidate) (Response, error) {
	return f(c)
}
