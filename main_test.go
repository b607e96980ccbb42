package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luispater/anySteps/internal/config"
	"github.com/luispater/anySteps/internal/interactions/fake"
	"github.com/luispater/anySteps/internal/runner"
	"github.com/luispater/anySteps/internal/steps"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestLogFormatter(t *testing.T) {
	entry := &log.Entry{
		Time:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Level:   log.InfoLevel,
		Message: "Step passed: Navigate to the home page",
	}
	out, err := (&LogFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2024-05-06 07:08:09] [info] Step passed: Navigate to the home page\n", string(out))
}

func TestSetupLogging(t *testing.T) {
	defer log.SetOutput(os.Stdout)
	defer log.SetLevel(log.DebugLevel)

	setupLogging(&config.AppConfig{Debug: false})
	assert.Equal(t, log.InfoLevel, log.GetLevel())

	logFile := filepath.Join(t.TempDir(), "steps.log")
	setupLogging(&config.AppConfig{Debug: true, LogFile: logFile})
	log.Info("written to file")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "serve")
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func homeRunner() *runner.Runner {
	session := fake.NewSession(map[string]map[string]string{
		steps.HomePageURL: {
			"#" + steps.SearchInputID:  "",
			steps.SearchButtonSelector: "",
		},
	})
	return runner.NewRunner(session)
}

func TestRunScenarios(t *testing.T) {
	scenarios := []*runner.Scenario{
		{Name: "broken", Steps: []runner.ScenarioStep{{Action: "search", Params: []string{"kittens"}}}},
		{Name: "home", Steps: []runner.ScenarioStep{
			{Action: "navigate-home"},
			{Action: "search", Params: []string{"kittens"}},
		}},
	}
	prepared := 0
	var out bytes.Buffer

	err := runScenarios(context.Background(), &out, homeRunner(), scenarios, func() error {
		prepared++
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, "1 of 2 scenarios failed", err.Error())
	assert.Equal(t, 2, prepared)

	lines := make([]string, 0)
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "broken", gjson.Get(lines[0], "scenario").String())
	assert.Equal(t, "failed", gjson.Get(lines[0], "status").String())
	assert.Equal(t, "home", gjson.Get(lines[1], "scenario").String())
	assert.Equal(t, "passed", gjson.Get(lines[1], "status").String())
}

func TestRunScenariosPrepareFailure(t *testing.T) {
	var out bytes.Buffer
	err := runScenarios(context.Background(), &out, homeRunner(), []*runner.Scenario{
		{Name: "home", Steps: []runner.ScenarioStep{{Action: "navigate-home"}}},
	}, func() error { return errors.New("cookies") })
	assert.EqualError(t, err, "cookies")
	assert.Empty(t, out.String())
}

func TestRunScenariosAllPass(t *testing.T) {
	var out bytes.Buffer
	err := runScenarios(context.Background(), &out, homeRunner(), []*runner.Scenario{
		{Name: "home", Steps: []runner.ScenarioStep{{Action: "navigate-home"}}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "passed", gjson.Get(out.String(), "status").String())
}
