// Package audit produces the immutable provenance record for a run. The
// record is built in two phases: the configuration snapshot is sealed when
// the run opens, the outcome section is appended and sealed when it
// completes. Each phase transition returns a new value; a sealed record is
// never mutated. Serialized JSON and the plain-text report are derived
// views, never the authoritative state.
package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/internal/optimize"
)

// RunSettings is the run configuration captured in the snapshot.
type RunSettings struct {
	Trials int   `json:"trials"`
	Seed   int64 `json:"seed"`
	TopK   int   `json:"top_k,omitempty"`
}

// Scores summarizes the best candidate's objective scores.
type Scores struct {
	Efficacy   float64 `json:"efficacy"`
	Toxicity   float64 `json:"toxicity"`
	Cost       float64 `json:"cost"`
	Confidence float64 `json:"confidence"`
	Scalarized float64 `json:"scalarized"`
}

// ScoreStats are aggregate statistics over the feasible scalarized scores.
type ScoreStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// Outcome is the sealed completion section of the record.
type Outcome struct {
	BestCandidate *design.Candidate `json:"best_candidate,omitempty"`
	BestScores    *Scores           `json:"best_scores,omitempty"`

	ParetoFrontSize  int `json:"pareto_front_size"`
	TotalTrials      int `json:"total_trials"`
	FeasibleTrials   int `json:"feasible_trials"`
	InfeasibleTrials int `json:"infeasible_trials"`
	ErroredTrials    int `json:"errored_trials"`

	ScoreStats *ScoreStats `json:"score_stats,omitempty"`
	TopDrivers []string    `json:"top_drivers,omitempty"`
}

// Record is the two-phase provenance record. The zero value is not useful;
// build one with Open.
type Record struct {
	runID        string
	timestamp    time.Time
	scenarioKey  string
	scenarioName string

	space       design.Space
	weights     design.Weights
	constraints design.Constraints
	settings    RunSettings

	outcome *Outcome
}

// Open seals phase one: the configuration snapshot, a fresh run ID, and
// the start timestamp.
func Open(scenarioKey, scenarioName string, space design.Space, weights design.Weights, cons design.Constraints, settings RunSettings) Record {
	return Record{
		runID:        uuid.NewString(),
		timestamp:    time.Now().UTC(),
		scenarioKey:  scenarioKey,
		scenarioName: scenarioName,
		space:        space,
		weights:      weights,
		constraints:  cons,
		settings:     settings,
	}
}

// Complete appends and seals the outcome section, returning the completed
// record as a new value. Completing twice is an error; the receiver is
// left untouched either way.
func (r Record) Complete(outcome Outcome) (Record, error) {
	if r.outcome != nil {
		return r, fmt.Errorf("audit record %s is already sealed", r.runID)
	}
	o := outcome
	r.outcome = &o
	return r, nil
}

// RunID returns the record's unique run identifier.
func (r Record) RunID() string { return r.runID }

// Timestamp returns the UTC time the configuration was sealed.
func (r Record) Timestamp() time.Time { return r.timestamp }

// ScenarioKey returns the scenario identity captured at open time.
func (r Record) ScenarioKey() string { return r.scenarioKey }

// Completed reports whether the outcome section has been sealed.
func (r Record) Completed() bool { return r.outcome != nil }

// Outcome returns the sealed outcome section, if completed.
func (r Record) Outcome() (Outcome, bool) {
	if r.outcome == nil {
		return Outcome{}, false
	}
	return *r.outcome, true
}

// OutcomeFromResult assembles the outcome section from a completed run,
// its Pareto front, and the optional sensitivity report of the best.
func OutcomeFromResult(res *optimize.Result, front []optimize.Trial, sens *optimize.SensitivityReport) Outcome {
	out := Outcome{
		ParetoFrontSize:  len(front),
		TotalTrials:      len(res.Trials),
		FeasibleTrials:   res.FeasibleCount(),
		ErroredTrials:    res.ErroredCount(),
		InfeasibleTrials: len(res.Trials) - res.FeasibleCount(),
	}

	if res.Best != nil {
		best := res.Best.Candidate
		out.BestCandidate = &best
		out.BestScores = &Scores{
			Efficacy:   res.Best.Efficacy,
			Toxicity:   res.Best.Toxicity,
			Cost:       res.Best.Cost,
			Confidence: res.Best.Confidence,
			Scalarized: res.Best.Score,
		}
		out.TopDrivers = append(out.TopDrivers, res.Best.Drivers...)
		if len(out.TopDrivers) > 6 {
			out.TopDrivers = out.TopDrivers[:6]
		}
	}

	if sens != nil && len(out.TopDrivers) == 0 {
		out.TopDrivers = append(out.TopDrivers, sens.Drivers...)
	}

	if scores := res.FeasibleScores(); len(scores) > 0 {
		mean, _ := stats.Mean(scores)
		median, _ := stats.Median(scores)
		p90, _ := stats.Percentile(scores, 90)
		out.ScoreStats = &ScoreStats{Mean: mean, Median: median, P90: p90}
	}

	return out
}

// recordDoc is the flat serialized form: configuration block plus outcome
// block, no cross-record references.
type recordDoc struct {
	RunID        string             `json:"run_id"`
	TimestampUTC string             `json:"timestamp_utc"`
	ScenarioKey  string             `json:"scenario_key,omitempty"`
	ScenarioName string             `json:"scenario_name,omitempty"`
	Space        design.Space       `json:"design_space"`
	Weights      design.Weights     `json:"weights"`
	Constraints  design.Constraints `json:"constraints"`
	RunSettings  RunSettings        `json:"run_settings"`
	Outcome      *Outcome           `json:"outcome,omitempty"`
}

const timestampLayout = "2006-01-02T15:04:05Z"

// MarshalJSON serializes the record losslessly as a flat document.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordDoc{
		RunID:        r.runID,
		TimestampUTC: r.timestamp.Format(timestampLayout),
		ScenarioKey:  r.scenarioKey,
		ScenarioName: r.scenarioName,
		Space:        r.space,
		Weights:      r.weights,
		Constraints:  r.constraints,
		RunSettings:  r.settings,
		Outcome:      r.outcome,
	})
}

// Decode rebuilds a record from its serialized form.
func Decode(data []byte) (Record, error) {
	var doc recordDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("decode audit record: %w", err)
	}
	ts, err := time.Parse(timestampLayout, doc.TimestampUTC)
	if err != nil {
		return Record{}, fmt.Errorf("decode audit record timestamp: %w", err)
	}
	return Record{
		runID:        doc.RunID,
		timestamp:    ts,
		scenarioKey:  doc.ScenarioKey,
		scenarioName: doc.ScenarioName,
		space:        doc.Space,
		weights:      doc.Weights,
		constraints:  doc.Constraints,
		settings:     doc.RunSettings,
		outcome:      doc.Outcome,
	}, nil
}
