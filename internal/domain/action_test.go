package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"start", ActionStart},
		{"START", ActionStart},
		{"StArT", ActionStart},
		{"  start  ", ActionStart},
		{"status", ActionStatus},
		{"Status", ActionStatus},
		{"stop", ActionStop},
		{"STOP", ActionStop},
		{"destroy", ActionDestroy},
		{"Destroy\n", ActionDestroy},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseActionInvalid(t *testing.T) {
	for _, input := range []string{"", "  ", "restart", "halt", "star t", "startx", "destroy-all"} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseAction(input)
			require.Error(t, err)
			assert.Empty(t, got)

			var invalidErr *InvalidActionError
			assert.True(t, errors.As(err, &invalidErr))
		})
	}
}

func TestActionIsValid(t *testing.T) {
	for _, a := range Actions() {
		assert.True(t, a.IsValid(), "action %q", a)
	}
	assert.False(t, Action("reboot").IsValid())
	assert.False(t, Action("").IsValid())
	assert.False(t, Action("Start").IsValid(), "validity is defined on the canonical lowercase form")
}
