// Package engine is the orchestrator for complete optimization workflows:
// scenario resolution, validation, the optimization run itself, and the
// audit trail around it.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ghasn43/naobio-pro/internal/audit"
	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/internal/optimize"
	"github.com/ghasn43/naobio-pro/internal/scenario"
	"github.com/ghasn43/naobio-pro/pkg/logger"
)

// Config holds engine-level settings.
type Config struct {
	LogLevel          string
	EnableAudit       bool
	EnableSensitivity bool
	Seed              int64
	DefaultTrials     int
}

// DefaultConfig returns the reference engine configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:          "info",
		EnableAudit:       true,
		EnableSensitivity: true,
		Seed:              42,
		DefaultTrials:     optimize.DefaultTrials,
	}
}

// Engine coordinates runs against one simulator collaborator and keeps the
// audit trail of the session.
type Engine struct {
	sim design.Simulator
	cfg Config
	log *slog.Logger

	mu    sync.Mutex
	trail []audit.Record
}

// New creates an engine around a simulator.
func New(sim design.Simulator, cfg Config) (*Engine, error) {
	if sim == nil {
		return nil, &design.ConfigurationError{Field: "simulator", Reason: "is required"}
	}
	if cfg.DefaultTrials <= 0 {
		cfg.DefaultTrials = optimize.DefaultTrials
	}
	return &Engine{
		sim: sim,
		cfg: cfg,
		log: logger.With("component", "engine"),
	}, nil
}

// RunScenario runs an optimization using a preset's weights and
// constraints. A trials value of zero uses the preset's recommendation.
// The returned audit record is nil when auditing is disabled.
func (e *Engine) RunScenario(key string, space design.Space, trials int) (*optimize.Result, *audit.Record, error) {
	preset, ok := scenario.Get(key)
	if !ok {
		return nil, nil, &design.ConfigurationError{
			Field:  "scenario",
			Reason: fmt.Sprintf("unknown scenario %q", key),
		}
	}
	if trials <= 0 {
		trials = preset.RecommendedTrials
	}
	return e.run(key, preset.Title, space, preset.Weights, preset.Constraints, trials, preset.RecommendedTopK)
}

// RunCustom runs an optimization with caller-supplied weights and
// constraints, outside the scenario catalog.
func (e *Engine) RunCustom(space design.Space, weights design.Weights, cons design.Constraints, trials int) (*optimize.Result, *audit.Record, error) {
	if trials <= 0 {
		trials = e.cfg.DefaultTrials
	}
	return e.run("", "Custom", space, weights, cons, trials, 0)
}

func (e *Engine) run(key, title string, space design.Space, weights design.Weights, cons design.Constraints, trials, topK int) (*optimize.Result, *audit.Record, error) {
	opts := optimize.Options{Trials: trials, Seed: e.cfg.Seed, TopK: topK}

	opt, err := optimize.New(space, weights, cons, e.sim, opts)
	if err != nil {
		return nil, nil, err
	}

	var record audit.Record
	if e.cfg.EnableAudit {
		record = audit.Open(key, title, space, weights, cons, audit.RunSettings{
			Trials: trials,
			Seed:   opts.Seed,
			TopK:   topK,
		})
	}

	e.log.Info("optimization started", "scenario", key, "trials", trials, "seed", opts.Seed)

	res := opt.Run()
	front := optimize.Front(res.Trials)

	var sens *optimize.SensitivityReport
	if e.cfg.EnableSensitivity && res.Best != nil {
		sens, err = optimize.Sensitivity(space, weights, res.Best.Candidate, e.sim, optimize.DefaultSensitivityOptions())
		if err != nil {
			e.log.Warn("sensitivity analysis failed", "error", err)
			sens = nil
		}
	}

	if !res.Feasible() {
		e.log.Warn("optimization produced no feasible candidate",
			"scenario", key, "trials", len(res.Trials), "errored", res.ErroredCount())
	} else {
		e.log.Info("optimization completed",
			"scenario", key,
			"best_efficacy", res.Best.Efficacy,
			"best_toxicity", res.Best.Toxicity,
			"best_cost", res.Best.Cost,
			"pareto_front", len(front))
	}

	if !e.cfg.EnableAudit {
		return res, nil, nil
	}

	sealed, err := record.Complete(audit.OutcomeFromResult(res, front, sens))
	if err != nil {
		return res, nil, fmt.Errorf("sealing audit record: %w", err)
	}
	e.mu.Lock()
	e.trail = append(e.trail, sealed)
	e.mu.Unlock()

	return res, &sealed, nil
}

// ParetoFront extracts the non-dominated feasible trials of a result.
func (e *Engine) ParetoFront(res *optimize.Result) []optimize.Trial {
	return optimize.Front(res.Trials)
}

// ExplainBest runs the sensitivity analysis for a result's best candidate.
func (e *Engine) ExplainBest(res *optimize.Result) (*optimize.SensitivityReport, error) {
	if !e.cfg.EnableSensitivity {
		return nil, fmt.Errorf("sensitivity analysis is disabled")
	}
	if res == nil || res.Best == nil {
		return nil, fmt.Errorf("result has no feasible best candidate")
	}
	return optimize.Sensitivity(res.Space, res.Weights, res.Best.Candidate, e.sim, optimize.DefaultSensitivityOptions())
}

// AuditTrail returns a copy of the session's sealed audit records.
func (e *Engine) AuditTrail() []audit.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]audit.Record(nil), e.trail...)
}
