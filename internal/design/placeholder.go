package design

import "math"

// PlaceholderSimulator is a deterministic PK/PD-lite stand-in for a real
// simulator. It exists so the engine can run end to end (CLI defaults,
// tests, demos) without an external collaborator wired in.
type PlaceholderSimulator struct{}

// Simulate computes toy pharmacokinetic proxies from the formulation alone.
func (PlaceholderSimulator) Simulate(c Candidate) (Response, error) {
	auc := (c.DoseMgKg * 10.0) / (1.0 + math.Abs(c.ChargeMV)/25.0)
	cmax := c.DoseMgKg * (200.0 / math.Max(c.SizeNM, 1.0))
	tHalf := 2.0 + (c.SizeNM / 100.0)
	stability := math.Max(0.0, 1.0-c.PDI)
	return Response{
		AUCTarget:        auc,
		CmaxTarget:       cmax,
		THalfProxy:       tHalf,
		ReleaseStability: stability,
	}, nil
}
