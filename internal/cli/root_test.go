package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoot_RejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "validate", "whatever.yaml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestRoot_ListsSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	assert.NoError(t, err)
	for _, sub := range []string{"apply", "show", "validate", "history"} {
		assert.Contains(t, out, sub)
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
