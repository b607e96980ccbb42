package chrome

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/luispater/anySteps/internal/config"
	log "github.com/sirupsen/logrus"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"

// Manager manages a Chrome browser instance and its contexts.
type Manager struct {
	appConfig     *config.AppConfig
	allocator     context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	execPath      string
}

// NewManager creates a new Chromedp Manager instance.
// It initializes the allocator context but does not launch the browser yet.
func NewManager(appConfig *config.AppConfig) (*Manager, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("appConfig cannot be nil")
	}

	opts := AllocatorOptions(appConfig)
	execPath := appConfig.Browser.ChromePath
	if execPath == "" {
		execPath = FindExecutable()
		if execPath == "" {
			log.Warn("Chrome path not specified in config or CHROME_BIN env, leaving detection to chromedp.")
		} else {
			opts = append(opts, chromedp.ExecPath(execPath))
		}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Manager{
		appConfig:   appConfig,
		allocator:   allocCtx,
		allocCancel: allocCancel,
		execPath:    execPath,
	}, nil
}

// FindExecutable returns CHROME_BIN or the first Chrome binary on PATH, and
// an empty string when there is none.
func FindExecutable() string {
	if path := os.Getenv("CHROME_BIN"); path != "" {
		return path
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// AllocatorOptions translates the browser section of the configuration into
// chromedp exec allocator options.
func AllocatorOptions(appConfig *config.AppConfig) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
	}

	if appConfig.Browser.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(appConfig.Browser.ChromePath))
	}

	if appConfig.Headless {
		opts = append(opts, chromedp.Headless)
		opts = append(opts, chromedp.DisableGPU)
		opts = append(opts, chromedp.WindowSize(1920, 1080))
	}

	if appConfig.Browser.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(appConfig.Browser.UserDataDir))
	}

	userAgent := appConfig.Browser.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	opts = append(opts, chromedp.UserAgent(userAgent))

	for _, arg := range appConfig.Browser.Args {
		if name, value, ok := ParseFlag(arg); ok {
			opts = append(opts, chromedp.Flag(name, value))
		}
	}
	return opts
}

// ParseFlag splits a "--name=value" command line switch. A switch without a
// value becomes a boolean true.
func ParseFlag(arg string) (string, any, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", nil, false
	}
	parts := strings.SplitN(arg, "=", 2)
	name := strings.TrimPrefix(parts[0], "--")
	if name == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		return name, parts[1], true
	}
	return name, true, true
}

// LaunchBrowserAndContext launches the browser and creates a new browser context.
func (m *Manager) LaunchBrowserAndContext() error {
	if m.allocator == nil {
		return fmt.Errorf("manager not properly initialized, allocator is nil")
	}

	browserCtx, browserCancel := chromedp.NewContext(
		m.allocator,
		chromedp.WithLogf(log.Infof),
		chromedp.WithErrorf(log.Debugf),
	)
	m.browserCtx = browserCtx
	m.browserCancel = browserCancel

	if err := chromedp.Run(m.browserCtx); err != nil {
		_ = m.Close()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Infof("Chromedp browser launched successfully with path: %s", m.execPath)
	return nil
}

// NewPage opens a blank tab in the launched browser.
func (m *Manager) NewPage() (*Page, error) {
	if m.browserCtx == nil {
		return nil, fmt.Errorf("browser context not initialized. Call LaunchBrowserAndContext first")
	}
	return NewPage(m.browserCtx)
}

func (m *Manager) Close() error {
	if m.browserCancel != nil {
		log.Debug("Cancelling Chromedp browser context...")
		m.browserCancel()
		m.browserCancel = nil
		m.browserCtx = nil
		log.Info("Chromedp browser context cancelled.")
	}

	if m.allocCancel != nil {
		log.Debug("Cancelling Chromedp allocator context...")
		m.allocCancel()
		m.allocCancel = nil
		m.allocator = nil
		log.Info("Chromedp allocator context cancelled and browser process shut down.")
	}

	log.Info("Chromedp Manager closed.")
	return nil
}

// ClearBrowserCookies clears all browser cookies.
func (m *Manager) ClearBrowserCookies() error {
	if m.browserCtx == nil {
		return fmt.Errorf("browser context not initialized")
	}
	log.Info("Clearing browser cookies...")
	if err := chromedp.Run(m.browserCtx, network.ClearBrowserCookies()); err != nil {
		return fmt.Errorf("failed to clear browser cookies: %w", err)
	}
	log.Info("Browser cookies cleared.")
	return nil
}
