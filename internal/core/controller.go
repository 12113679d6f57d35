package core

import (
	"context"

	"github.com/auto-dns/elastic-stack-ctl/internal/compose"
	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/rs/zerolog"
)

// Controller maps a deployment action onto the workflow that realizes it.
type Controller struct {
	orchestrator orchestrator
	poller       healthPoller
	reaper       containerReaper
	reporter     statusReporter
	logger       zerolog.Logger
}

func NewController(orchestrator orchestrator, poller healthPoller, reaper containerReaper, reporter statusReporter, logger zerolog.Logger) *Controller {
	return &Controller{
		orchestrator: orchestrator,
		poller:       poller,
		reaper:       reaper,
		reporter:     reporter,
		logger:       logger,
	}
}

// Dispatch runs the workflow for the given action. Unknown actions are
// rejected before any orchestration call is made.
func (c *Controller) Dispatch(ctx context.Context, action domain.Action) error {
	switch action {
	case domain.ActionStart:
		return c.start(ctx)
	case domain.ActionStatus:
		return c.reporter.Report(ctx)
	case domain.ActionStop:
		return c.orchestrator.Down(ctx, compose.DownOptions{RemoveVolumes: true})
	case domain.ActionDestroy:
		return c.orchestrator.Down(ctx, compose.DownOptions{RemoveVolumes: true, RemoveImages: true})
	default:
		return domain.NewInvalidActionError(string(action))
	}
}

// start brings the stack up, waits for the cluster to become usable, sweeps
// one-shot containers that finished during startup, and prints the summary.
func (c *Controller) start(ctx context.Context) error {
	if err := c.orchestrator.Up(ctx); err != nil {
		return err
	}

	status, err := c.poller.Wait(ctx)
	if err != nil {
		return err
	}
	c.logger.Info().Str("status", string(status)).Msg("Cluster is up")

	removed, err := c.reaper.ReapExited(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to sweep exited containers")
	} else if len(removed) > 0 {
		c.logger.Info().Int("count", len(removed)).Msg("Removed exited containers")
	}

	return c.reporter.Report(ctx)
}
