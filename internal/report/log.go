package report

import (
	log "github.com/sirupsen/logrus"
)

// LogReporter writes step events to logrus.
type LogReporter struct{}

func (LogReporter) StepStarted(ev StepEvent) {
	log.Debugf("Step started: %s", ev.Title)
}

func (LogReporter) StepFinished(ev StepEvent) {
	switch ev.Status {
	case StatusFailed:
		log.Errorf("Step failed: %s (%s): %v", ev.Title, ev.Duration, ev.Err)
	case StatusSkipped:
		log.Infof("Step skipped: %s", ev.Title)
	default:
		log.Infof("Step passed: %s (%s)", ev.Title, ev.Duration)
	}
}

// Multi fans events out to every reporter in order.
type Multi []Reporter

func (m Multi) StepStarted(ev StepEvent) {
	for _, r := range m {
		r.StepStarted(ev)
	}
}

func (m Multi) StepFinished(ev StepEvent) {
	for _, r := range m {
		r.StepFinished(ev)
	}
}
