package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/auto-dns/elastic-stack-ctl/internal/compose"
	"github.com/auto-dns/elastic-stack-ctl/internal/config"
	"github.com/auto-dns/elastic-stack-ctl/internal/core"
	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/health"
	"github.com/auto-dns/elastic-stack-ctl/internal/hostaddr"
	"github.com/auto-dns/elastic-stack-ctl/internal/reaper"
	"github.com/auto-dns/elastic-stack-ctl/internal/report"
	dockerCli "github.com/docker/docker/client"
	"github.com/rs/zerolog"
)

type App struct {
	dockerClient *dockerCli.Client
	controller   *core.Controller
	logger       zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	// Docker CLI
	dockerClient, err := dockerCli.NewClientWithOpts(dockerCli.FromEnv, dockerCli.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}

	// Host address and the URLs derived from it
	hostIP := cfg.Stack.HostIP
	if hostIP == "" {
		hostIP = hostaddr.Resolve(logger)
	}
	baseURL := fmt.Sprintf("http://%s:%d", hostIP, cfg.Elastic.Port)
	uiURL := fmt.Sprintf("http://%s:%d", hostIP, cfg.Kibana.Port)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	// Workflow components
	pruner := compose.NewPruner(dockerClient, logger)
	runner := compose.NewRunner(cfg, hostIP, pruner, logger)
	poller := health.NewPoller(httpClient, baseURL+"/_cluster/health", cfg.Elastic.Username, cfg.Elastic.Password, health.Options{
		MaxAttempts: cfg.Health.MaxAttempts,
		Interval:    time.Duration(cfg.Health.IntervalSeconds) * time.Second,
	}, logger)
	sweeper := reaper.NewReaper(dockerClient, cfg.Stack.ProjectName, logger)
	reporter := report.NewReporter(dockerClient, httpClient, cfg, baseURL, uiURL, os.Stdout, logger)
	controller := core.NewController(runner, poller, sweeper, reporter, logger)

	return &App{
		dockerClient: dockerClient,
		controller:   controller,
		logger:       logger,
	}, nil
}

// Run executes the workflow for the chosen action.
func (a *App) Run(ctx context.Context, action domain.Action) error {
	a.logger.Info().Str("action", string(action)).Msg("Application starting")
	return a.controller.Dispatch(ctx, action)
}

func (a *App) Close() error {
	var firstErr error
	if a.dockerClient != nil {
		if err := a.dockerClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close docker client: %w", err)
		}
	}
	return firstErr
}
