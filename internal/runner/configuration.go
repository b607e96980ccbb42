package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"
)

// Scenario is an ordered list of steps run against one browser session.
type Scenario struct {
	Version     string         `yaml:"version" json:"version"`
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description" json:"description"`
	Steps       []ScenarioStep `yaml:"steps" json:"steps"`
}

type ScenarioStep struct {
	Action string   `yaml:"action" json:"action"`
	Params []string `yaml:"params" json:"params"`
}

// ParseScenario decodes a scenario document. name is used when the document
// does not carry one.
func ParseScenario(name string, data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", name, err)
	}
	if scenario.Name == "" {
		scenario.Name = name
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %s has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if strings.TrimSpace(step.Action) == "" {
			return fmt.Errorf("scenario %s: step %d has no action", s.Name, i+1)
		}
	}
	return nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseScenario(name, data)
}

// LoadScenarios reads every yaml and yml file in dir, keyed by file name
// without extension.
func LoadScenarios(dir string) (map[string]*Scenario, error) {
	yamlFiles, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan yaml files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan yml files: %w", err)
	}

	allFiles := append(yamlFiles, ymlFiles...)
	sort.Strings(allFiles)

	scenarios := make(map[string]*Scenario, len(allFiles))
	for _, filePath := range allFiles {
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		log.Debugf("Loading scenario file: %s -> %s", name, filePath)

		scenario, errLoad := LoadScenario(filePath)
		if errLoad != nil {
			return nil, fmt.Errorf("failed to load scenario file %s: %w", filePath, errLoad)
		}
		scenarios[name] = scenario
	}

	log.Debugf("Total loaded %d scenario files", len(scenarios))
	return scenarios, nil
}
