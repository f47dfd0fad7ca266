package guard_test

import (
	"errors"
	"testing"

	"deliveryapp/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		assert.Equal(t, expected, g.Validate(expected))
	})

	t.Run("zero_value_guard_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type patchCommand struct {
		status string
		guard  guard.ConstructorGuard
	}
	errNotConstructed := errors.New("patchCommand must be created via newPatchCommand")

	newPatchCommand := func(status string) (patchCommand, error) {
		if status == "" {
			return patchCommand{}, errors.New("status is required")
		}
		return patchCommand{status: status, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newPatchCommand("COMPLETED")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errNotConstructed))

	var zero patchCommand
	require.ErrorIs(t, zero.guard.Validate(errNotConstructed), errNotConstructed)

	_, err = newPatchCommand("")
	require.Error(t, err)
}
