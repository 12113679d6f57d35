package report

import (
	"strings"
	"time"

	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/util"
	"github.com/docker/docker/api/types/container"
)

func fromContainerSummary(c container.Summary) domain.Container {
	return domain.Container{
		ID:      c.ID,
		Name:    containerName(c),
		Image:   c.Image,
		State:   c.State,
		Health:  domain.ParseContainerHealth(c.Status),
		Status:  c.Status,
		Created: time.Unix(c.Created, 0),
		Ports:   util.Map(c.Ports, fromPort),
		Labels:  c.Labels,
	}
}

func fromPort(p container.Port) domain.PortMapping {
	return domain.PortMapping{
		HostIP:        p.IP,
		HostPort:      p.PublicPort,
		ContainerPort: p.PrivatePort,
		Protocol:      p.Type,
	}
}

func containerName(c container.Summary) string {
	if len(c.Names) == 0 {
		return c.ID
	}
	return strings.TrimPrefix(c.Names[0], "/")
}
