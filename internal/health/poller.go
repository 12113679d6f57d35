package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxAttempts = 30
	DefaultInterval    = 10 * time.Second
)

// Options tune one polling run. Zero values fall back to the defaults: the
// {green, yellow} acceptable set, 30 attempts, a 10-second interval.
type Options struct {
	Acceptable  []domain.HealthStatus
	MaxAttempts int
	Interval    time.Duration
}

// Poller blocks until the cluster health endpoint reports an acceptable
// status or the retry budget is exhausted. One HTTP round trip per attempt.
// A transport error or malformed response consumes the attempt like any
// unacceptable status, since the engine may simply not be listening yet.
type Poller struct {
	client      httpDoer
	healthURL   string
	username    string
	password    string
	acceptable  map[domain.HealthStatus]bool
	maxAttempts int
	interval    time.Duration
	logger      zerolog.Logger
}

func NewPoller(client httpDoer, healthURL, username, password string, opts Options, logger zerolog.Logger) *Poller {
	if len(opts.Acceptable) == 0 {
		opts.Acceptable = []domain.HealthStatus{domain.HealthGreen, domain.HealthYellow}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	acceptable := make(map[domain.HealthStatus]bool, len(opts.Acceptable))
	for _, s := range opts.Acceptable {
		acceptable[s] = true
	}

	return &Poller{
		client:      client,
		healthURL:   healthURL,
		username:    username,
		password:    password,
		acceptable:  acceptable,
		maxAttempts: opts.MaxAttempts,
		interval:    opts.Interval,
		logger:      logger,
	}
}

// Wait polls until an acceptable status is observed. It fails only when the
// retry budget is exhausted or the context ends first. The budget is local to
// one call and resets on the next.
func (p *Poller) Wait(ctx context.Context) (domain.HealthStatus, error) {
	start := time.Now()
	p.logger.Info().Msgf("Waiting for cluster health at %s (up to %d attempts)", p.healthURL, p.maxAttempts)

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		status := p.check(ctx)
		if p.acceptable[status] {
			p.logger.Info().Msgf("Cluster health is %s after %d attempt(s)", status, attempt)
			return status, nil
		}
		p.logger.Debug().Msgf("Attempt %d/%d: cluster health is %s", attempt, p.maxAttempts, status)

		if attempt == p.maxAttempts {
			break
		}
		if err := sleepWithContext(ctx, p.interval); err != nil {
			return domain.HealthUnknown, err
		}
	}

	return domain.HealthUnknown, NewTimeoutError(p.maxAttempts, time.Since(start))
}

// check performs a single health round trip. Any failure maps to HealthUnknown.
func (p *Poller) check(ctx context.Context) domain.HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.healthURL, nil)
	if err != nil {
		p.logger.Debug().Err(err).Msg("Building health request failed")
		return domain.HealthUnknown
	}
	req.SetBasicAuth(p.username, p.password)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug().Err(err).Msg("Health request failed")
		return domain.HealthUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug().Msgf("Health endpoint returned HTTP %d", resp.StatusCode)
		return domain.HealthUnknown
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		p.logger.Debug().Err(err).Msg("Decoding health response failed")
		return domain.HealthUnknown
	}
	return domain.ParseHealthStatus(body.Status)
}

// sleepWithContext blocks for d unless the context ends first.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
