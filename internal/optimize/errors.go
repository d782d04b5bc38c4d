package optimize

import "fmt"

// TrialError records a per-trial evaluation failure: a simulator error or a
// malformed response. It is caught inside the trial loop, attached to the
// trial, and never aborts the run.
type TrialError struct {
	Trial int
	Cause error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("trial %d failed: %v", e.Trial, e.Cause)
}

func (e *TrialError) Unwrap() error {
	return e.Cause
}
