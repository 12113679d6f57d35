package domain

import (
	"fmt"
	"strings"
	"time"
)

// StateExited is the terminal run state reported by the runtime for containers
// that have run to completion.
const StateExited = "exited"

// ComposeProjectLabel is the runtime label that groups one deployment's
// containers, distinguishing them from unrelated ones on the same host.
const ComposeProjectLabel = "com.docker.compose.project"

// Container is a read-only projection of runtime-reported container state. It
// is observed and acted upon (removal), never mutated.
type Container struct {
	ID      string
	Name    string
	Image   string
	State   string
	Health  string
	Status  string
	Created time.Time
	Ports   []PortMapping
	Labels  map[string]string
}

func (c Container) IsExited() bool {
	return c.State == StateExited
}

type PortMapping struct {
	HostIP        string
	HostPort      uint16
	ContainerPort uint16
	Protocol      string
}

func (p PortMapping) Render() string {
	if p.HostPort == 0 {
		return fmt.Sprintf("%d/%s", p.ContainerPort, p.Protocol)
	}
	ip := p.HostIP
	if ip == "" {
		ip = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d->%d/%s", ip, p.HostPort, p.ContainerPort, p.Protocol)
}

// ParseContainerHealth extracts the health marker the runtime embeds in a
// container's status text, e.g. "Up 2 minutes (healthy)". Containers without
// a health check yield "".
func ParseContainerHealth(statusText string) string {
	s := strings.ToLower(statusText)
	switch {
	case strings.Contains(s, "(healthy)"):
		return "healthy"
	case strings.Contains(s, "(unhealthy)"):
		return "unhealthy"
	case strings.Contains(s, "(health: starting)"):
		return "starting"
	default:
		return ""
	}
}
