package compose

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/go-units"
	"github.com/rs/zerolog"
)

// Pruner removes dangling system-wide resources left behind by destroyed
// deployments. Every step is non-critical cleanup: errors are observed,
// logged, and deliberately dropped, never propagated.
type Pruner struct {
	cli    dockerClient
	logger zerolog.Logger
}

func NewPruner(cli dockerClient, logger zerolog.Logger) *Pruner {
	return &Pruner{cli: cli, logger: logger}
}

// PruneAll runs every prune step. A failing step does not block the others.
func (p *Pruner) PruneAll(ctx context.Context) {
	if err := p.pruneContainers(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Container prune failed")
	}
	if err := p.pruneImages(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Image prune failed")
	}
	if err := p.pruneNetworks(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Network prune failed")
	}
	if err := p.pruneVolumes(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Volume prune failed")
	}
	if err := p.pruneBuildCache(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Build cache prune failed")
	}
}

func (p *Pruner) pruneContainers(ctx context.Context) error {
	report, err := p.cli.ContainersPrune(ctx, filters.NewArgs())
	if err != nil {
		return err
	}
	p.logger.Info().Msgf("Pruned %d stopped containers (%s reclaimed)", len(report.ContainersDeleted), units.HumanSize(float64(report.SpaceReclaimed)))
	return nil
}

func (p *Pruner) pruneImages(ctx context.Context) error {
	filterArgs := filters.NewArgs()
	filterArgs.Add("dangling", "true")
	report, err := p.cli.ImagesPrune(ctx, filterArgs)
	if err != nil {
		return err
	}
	p.logger.Info().Msgf("Pruned %d dangling images (%s reclaimed)", len(report.ImagesDeleted), units.HumanSize(float64(report.SpaceReclaimed)))
	return nil
}

func (p *Pruner) pruneNetworks(ctx context.Context) error {
	report, err := p.cli.NetworksPrune(ctx, filters.NewArgs())
	if err != nil {
		return err
	}
	p.logger.Info().Msgf("Pruned %d unused networks", len(report.NetworksDeleted))
	return nil
}

// pruneVolumes removes anonymous volumes only; named volumes survive.
func (p *Pruner) pruneVolumes(ctx context.Context) error {
	report, err := p.cli.VolumesPrune(ctx, filters.NewArgs())
	if err != nil {
		return err
	}
	p.logger.Info().Msgf("Pruned %d anonymous volumes (%s reclaimed)", len(report.VolumesDeleted), units.HumanSize(float64(report.SpaceReclaimed)))
	return nil
}

func (p *Pruner) pruneBuildCache(ctx context.Context) error {
	report, err := p.cli.BuildCachePrune(ctx, types.BuildCachePruneOptions{})
	if err != nil {
		return err
	}
	p.logger.Info().Msgf("Pruned %d build cache entries (%s reclaimed)", len(report.CachesDeleted), units.HumanSize(float64(report.SpaceReclaimed)))
	return nil
}
