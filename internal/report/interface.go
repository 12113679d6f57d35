package report

import (
	"context"
	"net/http"

	"github.com/docker/docker/api/types/container"
)

type dockerClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
