package compose

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/auto-dns/elastic-stack-ctl/internal/config"
	"github.com/rs/zerolog"
)

const composeBinary = "docker"

// DownOptions control how much of the deployment a tear-down removes.
type DownOptions struct {
	RemoveVolumes bool
	RemoveImages  bool
}

// Runner issues declarative bring-up and tear-down commands to the external
// compose runtime. Each command is attempted exactly once; a non-zero exit
// from the runtime is propagated to the caller.
type Runner struct {
	cfg    *config.Config
	hostIP string
	proc   processRunner
	pruner systemPruner
	logger zerolog.Logger
}

func NewRunner(cfg *config.Config, hostIP string, pruner systemPruner, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		hostIP: hostIP,
		proc:   execRunner{},
		pruner: pruner,
		logger: logger,
	}
}

// Up creates and starts all declared services. Already-running services are
// left alone by the runtime, so Up is safe to repeat.
func (r *Runner) Up(ctx context.Context) error {
	r.logger.Info().Msgf("Bringing up compose project %s", r.cfg.Stack.ProjectName)
	if err := r.proc.Run(ctx, composeBinary, r.upArgs(), r.composeEnv()); err != nil {
		return fmt.Errorf("compose up: %w", err)
	}
	return nil
}

// Down stops and removes the deployment. With RemoveImages set it also runs
// the system-wide prune steps; those are best-effort and never fail Down.
func (r *Runner) Down(ctx context.Context, opts DownOptions) error {
	r.logger.Info().Msgf("Tearing down compose project %s (volumes=%t, images=%t)", r.cfg.Stack.ProjectName, opts.RemoveVolumes, opts.RemoveImages)
	if err := r.proc.Run(ctx, composeBinary, r.downArgs(opts), r.composeEnv()); err != nil {
		return fmt.Errorf("compose down: %w", err)
	}
	if opts.RemoveImages && r.pruner != nil {
		r.pruner.PruneAll(ctx)
	}
	return nil
}

func (r *Runner) baseArgs() []string {
	return []string{"compose", "-p", r.cfg.Stack.ProjectName, "-f", r.cfg.Stack.ComposeFile}
}

func (r *Runner) upArgs() []string {
	return append(r.baseArgs(), "up", "-d")
}

func (r *Runner) downArgs(opts DownOptions) []string {
	args := append(r.baseArgs(), "down")
	if opts.RemoveVolumes {
		args = append(args, "-v")
	}
	if opts.RemoveImages {
		args = append(args, "--rmi", "all")
	}
	return args
}

// composeEnv renders the configuration the deployment descriptor consumes.
func (r *Runner) composeEnv() []string {
	return []string{
		"STACK_VERSION=" + r.cfg.Stack.Version,
		"ELASTIC_PASSWORD=" + r.cfg.Elastic.Password,
		"KIBANA_PASSWORD=" + r.cfg.Kibana.Password,
		fmt.Sprintf("ES_PORT=%d", r.cfg.Elastic.Port),
		fmt.Sprintf("KIBANA_PORT=%d", r.cfg.Kibana.Port),
		"ENCRYPTION_KEY=" + r.cfg.Kibana.EncryptionKey,
		"HOST_IP=" + r.hostIP,
	}
}

// execRunner runs the command as a child process with inherited stdio, so
// runtime progress output stays visible to the user.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args []string, extraEnv []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extraEnv...)
	return cmd.Run()
}
