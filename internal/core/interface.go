package core

import (
	"context"

	"github.com/auto-dns/elastic-stack-ctl/internal/compose"
	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
)

type orchestrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context, opts compose.DownOptions) error
}

type healthPoller interface {
	Wait(ctx context.Context) (domain.HealthStatus, error)
}

type containerReaper interface {
	ReapExited(ctx context.Context) ([]string, error)
}

type statusReporter interface {
	Report(ctx context.Context) error
}
