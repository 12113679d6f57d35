package reaper

import (
	"context"
	"fmt"
	"strings"

	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/util"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/rs/zerolog"
)

// Reaper removes containers that have run to completion, such as the
// one-shot init containers the stack leaves behind after startup.
type Reaper struct {
	cli     dockerClient
	project string
	logger  zerolog.Logger
}

func NewReaper(cli dockerClient, project string, logger zerolog.Logger) *Reaper {
	return &Reaper{cli: cli, project: project, logger: logger}
}

// ReapExited removes every exited container belonging to the compose project
// and returns the names of the containers it removed. Removal failures are
// logged and skipped so one stuck container does not block the rest.
func (r *Reaper) ReapExited(ctx context.Context) ([]string, error) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("label", fmt.Sprintf("%s=%s", domain.ComposeProjectLabel, r.project))

	containers, err := r.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: filterArgs})
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	exited := util.Filter(containers, func(c container.Summary) bool {
		return c.State == domain.StateExited
	})
	if len(exited) == 0 {
		r.logger.Debug().Msg("No exited containers to remove")
		return nil, nil
	}

	var removed []string
	for _, c := range exited {
		name := containerName(c)
		if err := r.cli.ContainerRemove(ctx, c.ID, container.RemoveOptions{}); err != nil {
			r.logger.Warn().Err(err).Str("container", name).Msg("Failed to remove exited container")
			continue
		}
		r.logger.Debug().Str("container", name).Msg("Removed exited container")
		removed = append(removed, name)
	}
	return removed, nil
}

func containerName(c container.Summary) string {
	if len(c.Names) == 0 {
		return c.ID
	}
	return strings.TrimPrefix(c.Names[0], "/")
}
