// Package report records step outcomes for a scenario run.
package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepEvent describes one step as it starts or finishes.
type StepEvent struct {
	Name      string
	Title     string
	Args      []string
	Status    Status
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Reporter receives step lifecycle events.
type Reporter interface {
	StepStarted(ev StepEvent)
	StepFinished(ev StepEvent)
}

// StepResult is a finished step as stored by a Recorder.
type StepResult struct {
	Index     int
	Name      string
	Title     string
	Status    Status
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// Recorder keeps the results of one run in order.
type Recorder struct {
	mu        sync.Mutex
	id        string
	scenario  string
	startedAt time.Time
	results   []StepResult
	runErr    error
}

func NewRecorder(scenario string) *Recorder {
	return &Recorder{
		id:        uuid.New().String(),
		scenario:  scenario,
		startedAt: time.Now(),
		results:   make([]StepResult, 0),
	}
}

func (r *Recorder) ID() string {
	return r.id
}

func (r *Recorder) Scenario() string {
	return r.scenario
}

func (r *Recorder) StepStarted(StepEvent) {}

func (r *Recorder) StepFinished(ev StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := StepResult{
		Index:     len(r.results) + 1,
		Name:      ev.Name,
		Title:     ev.Title,
		Status:    ev.Status,
		StartedAt: ev.StartedAt,
		Duration:  ev.Duration,
	}
	if ev.Err != nil {
		result.Error = ev.Err.Error()
	}
	r.results = append(r.results, result)
}

// Results returns a copy of the recorded steps.
func (r *Recorder) Results() []StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StepResult, len(r.results))
	copy(out, r.results)
	return out
}

// Finish stores the error the run ended with. A run that ended with an
// error is failed even when no single step failed.
func (r *Recorder) Finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runErr = err
}

func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runErr
}

// Status is failed when the run ended with an error or any step failed.
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runErr != nil {
		return StatusFailed
	}
	for _, result := range r.results {
		if result.Status == StatusFailed {
			return StatusFailed
		}
	}
	return StatusPassed
}

type field struct {
	path  string
	value any
}

func setFields(doc string, fields []field) (string, error) {
	var err error
	for _, f := range fields {
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("failed to render report field %s: %w", f.path, err)
		}
	}
	return doc, nil
}

// JSON renders the run as a JSON document.
func (r *Recorder) JSON() ([]byte, error) {
	results := r.Results()

	fields := []field{
		{"id", r.id},
		{"scenario", r.scenario},
		{"status", string(r.Status())},
		{"started_at", r.startedAt.Format(time.RFC3339Nano)},
	}
	if err := r.Err(); err != nil {
		fields = append(fields, field{"error", err.Error()})
	}
	doc, err := setFields(`{"steps":[]}`, fields)
	if err != nil {
		return nil, err
	}

	for i, result := range results {
		stepFields := []field{
			{"index", result.Index},
			{"name", result.Name},
			{"title", result.Title},
			{"status", string(result.Status)},
		}
		if !result.StartedAt.IsZero() {
			stepFields = append(stepFields, field{"started_at", result.StartedAt.Format(time.RFC3339Nano)})
		}
		stepFields = append(stepFields, field{"duration_ms", result.Duration.Milliseconds()})
		if result.Error != "" {
			stepFields = append(stepFields, field{"error", result.Error})
		}

		step, errStep := setFields(`{}`, stepFields)
		if errStep != nil {
			return nil, fmt.Errorf("failed to render step %d: %w", result.Index, errStep)
		}
		if doc, err = sjson.SetRaw(doc, fmt.Sprintf("steps.%d", i), step); err != nil {
			return nil, fmt.Errorf("failed to render step %d: %w", result.Index, err)
		}
	}
	return []byte(doc), nil
}
