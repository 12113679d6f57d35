package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/auto-dns/elastic-stack-ctl/internal/config"
	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/util"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/go-units"
	"github.com/rs/zerolog"
)

const placeholder = "-"

type clusterHealthResponse struct {
	Status string `json:"status"`
}

type clusterInfoResponse struct {
	ClusterName string `json:"cluster_name"`
	Version     struct {
		Number string `json:"number"`
	} `json:"version"`
}

// Reporter assembles a human-readable summary of the stack: cluster health
// and identity, connection details for the web UI, and one row per container.
type Reporter struct {
	cli     dockerClient
	http    httpDoer
	cfg     *config.Config
	baseURL string
	uiURL   string
	project string
	out     io.Writer
	logger  zerolog.Logger
}

func NewReporter(cli dockerClient, http httpDoer, cfg *config.Config, baseURL, uiURL string, out io.Writer, logger zerolog.Logger) *Reporter {
	return &Reporter{
		cli:     cli,
		http:    http,
		cfg:     cfg,
		baseURL: baseURL,
		uiURL:   uiURL,
		project: cfg.Stack.ProjectName,
		out:     out,
		logger:  logger,
	}
}

// Report writes the summary to the configured writer. It is read-only and
// safe to call whether or not the stack is running: an unreachable cluster
// renders as such instead of failing the command.
func (r *Reporter) Report(ctx context.Context) error {
	r.printClusterSection(ctx)
	r.printConnectionSection()
	return r.printContainerSection(ctx)
}

func (r *Reporter) printClusterSection(ctx context.Context) {
	health, healthErr := r.fetchHealth(ctx)
	info, infoErr := r.fetchInfo(ctx)

	fmt.Fprintln(r.out, "Cluster:")
	if healthErr != nil && infoErr != nil {
		fmt.Fprintf(r.out, "  %s: not reachable\n", r.baseURL)
		fmt.Fprintln(r.out)
		return
	}

	fmt.Fprintf(r.out, "  address:  %s\n", r.baseURL)
	if healthErr == nil {
		fmt.Fprintf(r.out, "  health:   %s\n", health.Status)
	} else {
		fmt.Fprintf(r.out, "  health:   %s\n", placeholder)
	}
	if infoErr == nil {
		fmt.Fprintf(r.out, "  name:     %s\n", orPlaceholder(info.ClusterName))
		fmt.Fprintf(r.out, "  version:  %s\n", orPlaceholder(info.Version))
	} else {
		fmt.Fprintf(r.out, "  name:     %s\n", placeholder)
		fmt.Fprintf(r.out, "  version:  %s\n", placeholder)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printConnectionSection() {
	fmt.Fprintln(r.out, "Connect:")
	fmt.Fprintf(r.out, "  Elasticsearch:  %s\n", r.baseURL)
	fmt.Fprintf(r.out, "  Kibana:         %s\n", r.uiURL)
	fmt.Fprintf(r.out, "  username:       %s\n", r.cfg.Elastic.Username)
	fmt.Fprintf(r.out, "  password:       %s\n", r.cfg.Elastic.Password)
	fmt.Fprintln(r.out)
}

func (r *Reporter) printContainerSection(ctx context.Context) error {
	fmt.Fprintln(r.out, "Containers:")

	filterArgs := filters.NewArgs()
	filterArgs.Add("label", fmt.Sprintf("%s=%s", domain.ComposeProjectLabel, r.project))
	summaries, err := r.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: filterArgs})
	if err != nil {
		r.logger.Debug().Err(err).Msg("Container listing failed")
		fmt.Fprintln(r.out, "  container state unavailable")
		return nil
	}
	if len(summaries) == 0 {
		fmt.Fprintln(r.out, "  no containers")
		return nil
	}

	containers := util.Map(summaries, fromContainerSummary)
	sort.Slice(containers, func(i, j int) bool { return containers[i].Name < containers[j].Name })

	w := tabwriter.NewWriter(r.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tSTATE\tHEALTH\tSTATUS\tPORTS")
	for _, c := range containers {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			orPlaceholder(c.Name),
			orPlaceholder(c.State),
			orPlaceholder(c.Health),
			orPlaceholder(statusText(c)),
			orPlaceholder(renderPorts(c.Ports)),
		)
	}
	return w.Flush()
}

func (r *Reporter) fetchHealth(ctx context.Context) (domain.ClusterHealth, error) {
	var payload clusterHealthResponse
	if err := r.getJSON(ctx, r.baseURL+"/_cluster/health", &payload); err != nil {
		r.logger.Debug().Err(err).Msg("Cluster health query failed")
		return domain.ClusterHealth{}, err
	}
	return domain.ClusterHealth{Status: domain.ParseHealthStatus(payload.Status)}, nil
}

func (r *Reporter) fetchInfo(ctx context.Context) (domain.ClusterInfo, error) {
	var payload clusterInfoResponse
	if err := r.getJSON(ctx, r.baseURL+"/", &payload); err != nil {
		r.logger.Debug().Err(err).Msg("Cluster info query failed")
		return domain.ClusterInfo{}, err
	}
	return domain.ClusterInfo{ClusterName: payload.ClusterName, Version: payload.Version.Number}, nil
}

func (r *Reporter) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(r.cfg.Elastic.Username, r.cfg.Elastic.Password)

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// statusText prefers the runtime's own status line ("Up 2 minutes (healthy)",
// "Exited (0) 3 minutes ago"). Without one it falls back to container age.
func statusText(c domain.Container) string {
	if c.Status != "" {
		return c.Status
	}
	if c.Created.IsZero() {
		return ""
	}
	return fmt.Sprintf("created %s ago", units.HumanDuration(time.Since(c.Created)))
}

func renderPorts(ports []domain.PortMapping) string {
	return strings.Join(util.Map(ports, func(p domain.PortMapping) string { return p.Render() }), ", ")
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
