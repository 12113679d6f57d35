package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/auto-dns/elastic-stack-ctl/internal/config"
	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/health"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApp struct {
	runErr  error
	actions []domain.Action
	closed  bool
}

func (s *stubApp) Run(ctx context.Context, action domain.Action) error {
	s.actions = append(s.actions, action)
	return s.runErr
}

func (s *stubApp) Close() error {
	s.closed = true
	return nil
}

func withStubApp(t *testing.T, stub *stubApp) *bool {
	t.Helper()
	created := false
	orig := newApplication
	newApplication = func(cfg *config.Config, logInstance zerolog.Logger) (application, error) {
		created = true
		return stub, nil
	}
	t.Cleanup(func() { newApplication = orig })
	return &created
}

func executeCommand(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunWithActionArgument(t *testing.T) {
	stub := &stubApp{}
	withStubApp(t, stub)

	_, err := executeCommand(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, []domain.Action{domain.ActionStatus}, stub.actions)
	assert.True(t, stub.closed)
}

func TestRunWithMixedCaseArgument(t *testing.T) {
	stub := &stubApp{}
	withStubApp(t, stub)

	_, err := executeCommand(t, "", "START")
	require.NoError(t, err)
	assert.Equal(t, []domain.Action{domain.ActionStart}, stub.actions)
}

func TestRunWithInvalidArgument(t *testing.T) {
	stub := &stubApp{}
	created := withStubApp(t, stub)

	out, err := executeCommand(t, "", "reboot")
	require.Error(t, err)

	var invalidErr *domain.InvalidActionError
	assert.True(t, errors.As(err, &invalidErr))
	assert.False(t, *created, "an invalid action must not build the application")
	assert.Empty(t, stub.actions)
	assert.Contains(t, out, "Usage:")
}

func TestRunPromptsWhenNoArgument(t *testing.T) {
	stub := &stubApp{}
	withStubApp(t, stub)

	out, err := executeCommand(t, "stop\n")
	require.NoError(t, err)
	assert.Equal(t, []domain.Action{domain.ActionStop}, stub.actions)
	assert.Contains(t, out, "Action (start/status/stop/destroy): ")
}

func TestRunPromptEOFWithoutAction(t *testing.T) {
	stub := &stubApp{}
	created := withStubApp(t, stub)

	_, err := executeCommand(t, "")
	require.Error(t, err)
	assert.False(t, *created)
	assert.Empty(t, stub.actions)
}

func TestExitCode(t *testing.T) {
	exitErr := exec.Command("sh", "-c", "exit 7").Run()
	require.Error(t, exitErr)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid action", err: domain.NewInvalidActionError("reboot"), want: 2},
		{name: "wrapped invalid action", err: fmt.Errorf("app run error: %w", domain.NewInvalidActionError("reboot")), want: 2},
		{name: "health timeout", err: health.NewTimeoutError(30, 5*time.Minute), want: 1},
		{name: "compose exit status", err: fmt.Errorf("compose up: %w", exitErr), want: 7},
		{name: "plain error", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRunErrorKeepsCauseChain(t *testing.T) {
	stub := &stubApp{runErr: health.NewTimeoutError(30, 5*time.Minute)}
	withStubApp(t, stub)

	_, err := executeCommand(t, "", "start")
	require.Error(t, err)

	var timeoutErr *health.TimeoutError
	assert.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 1, exitCode(err))
}
