// Package mocks holds testify mocks for the interfaces steps and runners consume.
package mocks

import (
	"context"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
	"github.com/stretchr/testify/mock"
)

// MockSession mocks interactions.Session.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) NavigateTo(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockSession) FindByIDAndType(ctx context.Context, id, text string) error {
	args := m.Called(ctx, id, text)
	return args.Error(0)
}

func (m *MockSession) FindBySelectorAndClick(ctx context.Context, selector string) error {
	args := m.Called(ctx, selector)
	return args.Error(0)
}

func (m *MockSession) Location(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Value(ctx context.Context, selector string) (string, error) {
	args := m.Called(ctx, selector)
	return args.String(0), args.Error(1)
}

// MockReporter mocks report.Reporter.
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) StepStarted(ev report.StepEvent) {
	m.Called(ev)
}

func (m *MockReporter) StepFinished(ev report.StepEvent) {
	m.Called(ev)
}

var (
	_ interactions.Session = (*MockSession)(nil)
	_ report.Reporter      = (*MockReporter)(nil)
)

// MockScreenshotter mocks the screenshot source of the API.
type MockScreenshotter struct {
	mock.Mock
}

func (m *MockScreenshotter) Screenshot(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
