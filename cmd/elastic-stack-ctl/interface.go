package main

import (
	"context"

	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
)

type application interface {
	Run(ctx context.Context, action domain.Action) error
	Close() error
}
