package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luispater/anySteps/internal/api"
	"github.com/luispater/anySteps/internal/browser/chrome"
	"github.com/luispater/anySteps/internal/config"
	"github.com/luispater/anySteps/internal/method"
	"github.com/luispater/anySteps/internal/report"
	"github.com/luispater/anySteps/internal/runner"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	appCfg  *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:           "anySteps",
	Short:         "Run browser step scenarios against a Chrome session.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			if cfgFile != "" || !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load configuration error: %w", err)
			}
			cfg = config.Default()
		}
		appCfg = cfg
		setupLogging(appCfg)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>...",
	Short: "Run scenario files and print their reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios := make([]*runner.Scenario, 0, len(args))
		for _, file := range args {
			scenario, err := runner.LoadScenario(file)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, scenario)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		session, err := openSession(appCfg)
		if err != nil {
			return err
		}
		defer session.Close()

		r := runner.NewRunner(session.method, report.LogReporter{})
		return runScenarios(ctx, cmd.OutOrStdout(), r, scenarios, session.prepare)
	},
}

// runScenarios runs every scenario in order and prints one JSON report line
// per scenario. A failing scenario does not stop the ones after it; prepare
// runs before each of them.
func runScenarios(ctx context.Context, out io.Writer, r *runner.Runner, scenarios []*runner.Scenario, prepare func() error) error {
	failed := 0
	for _, scenario := range scenarios {
		if prepare != nil {
			if err := prepare(); err != nil {
				return err
			}
		}
		recorder, errRun := r.Run(ctx, scenario)
		if errRun != nil {
			failed++
		}
		data, err := recorder.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scenario API",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := runner.LoadScenarios(appCfg.ScenarioDir)
		if err != nil {
			return err
		}

		session, err := openSession(appCfg)
		if err != nil {
			return err
		}
		defer session.Close()

		apiServer := api.NewServer(&api.ServerConfig{
			Port:        appCfg.ApiPort,
			Debug:       appCfg.Debug,
			Session:     session.method,
			Reporters:   []report.Reporter{report.LogReporter{}},
			Scenarios:   scenarios,
			Screenshots: session.page,
			BeforeRun:   session.prepare,
		})

		errChan := make(chan error, 1)
		go func() {
			log.Infof("Starting API server on port %s", appCfg.ApiPort)
			errChan <- apiServer.Start()
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err = <-errChan:
			return err
		case <-sigChan:
			log.Debugf("Received shutdown signal. Cleaning up...")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err = apiServer.Stop(ctx); err != nil {
			log.Debugf("Error stopping API server: %v", err)
		}
		log.Debugf("Cleanup completed. Exiting...")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.AddCommand(runCmd, serveCmd)
}

// browserSession is the one Chrome tab scenarios run against.
type browserSession struct {
	manager      *chrome.Manager
	page         *chrome.Page
	method       *method.Method
	clearCookies bool
}

func openSession(cfg *config.AppConfig) (*browserSession, error) {
	manager, err := chrome.NewManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create browser manager: %w", err)
	}
	if err = manager.LaunchBrowserAndContext(); err != nil {
		return nil, fmt.Errorf("could not launch browser and context: %w", err)
	}
	page, err := manager.NewPage()
	if err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &browserSession{
		manager:      manager,
		page:         page,
		method:       method.NewMethod(page, time.Duration(cfg.ImplicitWaitMs)*time.Millisecond),
		clearCookies: cfg.ClearCookies,
	}, nil
}

func (s *browserSession) prepare() error {
	if !s.clearCookies {
		return nil
	}
	return s.manager.ClearBrowserCookies()
}

func (s *browserSession) Close() {
	s.page.Close()
	if err := s.manager.Close(); err != nil {
		log.Debugf("Error closing browser manager: %v", err)
	}
}
