package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
	log "github.com/sirupsen/logrus"
)

// Runner executes scenarios on a single session.
type Runner struct {
	session   interactions.Session
	reporters []report.Reporter
	mu        sync.Mutex
	variables map[string]string
	abort     atomic.Bool
}

func NewRunner(session interactions.Session, reporters ...report.Reporter) *Runner {
	return &Runner{
		session:   session,
		reporters: reporters,
		variables: make(map[string]string),
	}
}

// SetVariable makes value available to step params written as #name#.
func (r *Runner) SetVariable(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables[name] = value
}

// Abort stops the current run before its next step.
func (r *Runner) Abort() {
	r.abort.Store(true)
}

// Run executes the steps in order. After the first failure, or an abort, every
// remaining step is recorded as skipped. The returned error is the first failure
// and is also stored on the recorder, so the run reports failed.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) (*report.Recorder, error) {
	r.abort.Store(false)
	recorder := report.NewRecorder(scenario.Name)
	reporter := append(report.Multi{recorder}, r.reporters...)
	registry := NewRegistry(r.session, reporter)

	log.Infof("Running scenario %s (%d steps), run id %s", scenario.Name, len(scenario.Steps), recorder.ID())

	var firstErr error
	for i, step := range scenario.Steps {
		params := r.resolve(step.Params)

		if firstErr == nil {
			if r.abort.Load() {
				log.Debugf("Get abort signal, skip the remaining steps")
				firstErr = fmt.Errorf("scenario %s aborted at step %d", scenario.Name, i+1)
			} else if err := ctx.Err(); err != nil {
				firstErr = fmt.Errorf("scenario %s stopped at step %d: %w", scenario.Name, i+1, err)
			}
		}
		if firstErr != nil {
			definition := registry.Definition(step.Action)
			reporter.StepFinished(report.StepEvent{
				Name:   definition.Name,
				Title:  definition.Title(params...),
				Args:   params,
				Status: report.StatusSkipped,
			})
			continue
		}

		log.Debugf("execute step %d: %s %v", i+1, step.Action, params)
		if err := registry.Execute(ctx, step.Action, params); err != nil {
			firstErr = fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}

	recorder.Finish(firstErr)
	log.Infof("Scenario %s finished: %s", scenario.Name, recorder.Status())
	return recorder, firstErr
}

func (r *Runner) resolve(params []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	resolved := make([]string, len(params))
	for i, param := range params {
		input := strings.TrimSpace(param)
		if len(input) > 2 && input[0] == '#' && input[len(input)-1] == '#' {
			if value, ok := r.variables[input[1:len(input)-1]]; ok {
				resolved[i] = value
				continue
			}
		}
		resolved[i] = param
	}
	return resolved
}
