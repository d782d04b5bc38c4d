package optimize

import (
	"fmt"

	"github.com/ghasn43/naobio-pro/internal/design"
)

// MaxTrials is the ceiling on the trial budget. Runs requesting more are
// rejected before the first trial.
const MaxTrials = 1000

// DefaultTrials is the budget used when the caller does not set one.
const DefaultTrials = 200

// Options configure a single optimization run.
type Options struct {
	// Trials is the exact number of trials to run. The loop is fixed
	// length; there is no early stopping.
	Trials int `json:"trials" yaml:"trials"`

	// Seed drives all sampler randomness. Identical inputs and seed
	// reproduce an identical run.
	Seed int64 `json:"seed" yaml:"seed"`

	// TopK bounds the candidate list some reports display. Zero means all.
	TopK int `json:"top_k,omitempty" yaml:"top_k,omitempty"`
}

// Validate rejects out-of-range budgets before a run starts.
func (o Options) Validate() error {
	if o.Trials <= 0 {
		return &design.ConfigurationError{Field: "trials", Reason: "must be positive"}
	}
	if o.Trials > MaxTrials {
		return &design.ConfigurationError{
			Field:  "trials",
			Reason: fmt.Sprintf("%d exceeds the ceiling of %d", o.Trials, MaxTrials),
		}
	}
	if o.TopK < 0 {
		return &design.ConfigurationError{Field: "top_k", Reason: "must be >= 0"}
	}
	return nil
}
