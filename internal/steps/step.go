// Package steps holds the named, reported step actions used by scenarios.
package steps

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/luispater/anySteps/internal/report"
)

// Definition carries the reporting metadata of a step.
// Description may reference arguments positionally as {0}, {1}, ...
type Definition struct {
	Name        string
	Description string
}

// Title renders Description with args substituted.
func (d Definition) Title(args ...string) string {
	if len(args) == 0 {
		return d.Description
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(d.Description)
}

// Run executes fn as the step def, reporting its start and outcome.
// The error returned by fn is passed through unchanged.
func Run(ctx context.Context, reporter report.Reporter, def Definition, args []string, fn func(ctx context.Context) error) error {
	if reporter == nil {
		reporter = report.Multi{}
	}
	ev := report.StepEvent{
		Name:      def.Name,
		Title:     def.Title(args...),
		Args:      args,
		StartedAt: time.Now(),
	}
	reporter.StepStarted(ev)

	err := fn(ctx)

	ev.Duration = time.Since(ev.StartedAt)
	ev.Status = report.StatusPassed
	if err != nil {
		ev.Status = report.StatusFailed
		ev.Err = err
	}
	reporter.StepFinished(ev)
	return err
}
