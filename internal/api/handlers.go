package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
	"github.com/luispater/anySteps/internal/runner"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type Screenshotter interface {
	Screenshot(ctx context.Context) ([]byte, error)
}

// APIHandlers contains the handlers for API endpoints
type APIHandlers struct {
	runMutex    sync.Mutex
	session     interactions.Session
	reporters   []report.Reporter
	scenarios   map[string]*runner.Scenario
	screenshots Screenshotter
	beforeRun   func() error
	reports     *reportStore
	actionNames []string
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(config *ServerConfig) *APIHandlers {
	scenarios := config.Scenarios
	if scenarios == nil {
		scenarios = make(map[string]*runner.Scenario)
	}
	return &APIHandlers{
		session:     config.Session,
		reporters:   config.Reporters,
		scenarios:   scenarios,
		screenshots: config.Screenshots,
		beforeRun:   config.BeforeRun,
		reports:     newReportStore(),
		actionNames: runner.NewRegistry(nil, nil).Names(),
	}
}

// RunScenario handles POST /v1/scenarios/run. The body either names a loaded
// scenario ({"scenario": "search"}) or carries one inline
// ({"name": "...", "steps": [{"action": "search", "params": ["kittens"]}]}).
// Optional "variables" apply to this run only.
func (h *APIHandlers) RunScenario(c *gin.Context) {
	rawJson, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err), "code": 400})
		return
	}
	if !gjson.ValidBytes(rawJson) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: body is not valid JSON", "code": 400})
		return
	}

	scenario, err := h.scenarioFromRequest(rawJson)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": 400})
		return
	}

	h.runMutex.Lock()
	defer h.runMutex.Unlock()

	scenarioRunner := runner.NewRunner(h.session, h.reporters...)
	gjson.GetBytes(rawJson, "variables").ForEach(func(key, value gjson.Result) bool {
		scenarioRunner.SetVariable(key.String(), value.String())
		return true
	})

	if h.beforeRun != nil {
		if err = h.beforeRun(); err != nil {
			log.Errorf("prepare scenario run failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": 500})
			return
		}
	}

	recorder, errRun := scenarioRunner.Run(c.Request.Context(), scenario)
	if errRun != nil {
		log.Debugf("scenario %s failed: %v", scenario.Name, errRun)
	}

	data, err := recorder.JSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": 500})
		return
	}
	h.reports.Put(recorder.ID(), data)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *APIHandlers) scenarioFromRequest(rawJson []byte) (*runner.Scenario, error) {
	if name := gjson.GetBytes(rawJson, "scenario"); name.Exists() {
		scenario, ok := h.scenarios[name.String()]
		if !ok {
			return nil, fmt.Errorf("scenario %s not found", name.String())
		}
		return scenario, nil
	}

	scenario := &runner.Scenario{
		Name:        gjson.GetBytes(rawJson, "name").String(),
		Description: gjson.GetBytes(rawJson, "description").String(),
	}
	if scenario.Name == "" {
		scenario.Name = "inline"
	}
	stepsJson := gjson.GetBytes(rawJson, "steps")
	if stepsJson.Exists() && !stepsJson.IsArray() {
		return nil, fmt.Errorf("steps must be an array")
	}
	for i, step := range stepsJson.Array() {
		if !step.IsObject() {
			return nil, fmt.Errorf("step %d must be an object", i+1)
		}
		paramsJson := step.Get("params")
		if paramsJson.Exists() && !paramsJson.IsArray() {
			return nil, fmt.Errorf("step %d: params must be an array", i+1)
		}
		params := make([]string, 0)
		for _, param := range paramsJson.Array() {
			params = append(params, param.String())
		}
		scenario.Steps = append(scenario.Steps, runner.ScenarioStep{
			Action: step.Get("action").String(),
			Params: params,
		})
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (h *APIHandlers) ListScenarios(c *gin.Context) {
	names := make([]string, 0, len(h.scenarios))
	for name := range h.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]gin.H, 0, len(names))
	for _, name := range names {
		items = append(items, gin.H{
			"name":        name,
			"title":       h.scenarios[name].Name,
			"description": h.scenarios[name].Description,
			"steps":       len(h.scenarios[name].Steps),
		})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": items})
}

func (h *APIHandlers) GetReport(c *gin.Context) {
	data, ok := h.reports.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found", "code": 404})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *APIHandlers) TakeScreenshot(c *gin.Context) {
	if h.screenshots == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.runMutex.Lock()
	defer h.runMutex.Unlock()

	screenshot, err := h.screenshots.Screenshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("screenshot failed: %v", err), "code": 500})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", screenshot)
}
