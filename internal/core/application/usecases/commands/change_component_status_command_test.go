package commands_test

import (
	"testing"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeComponentStatusCommand(t *testing.T) {
	t.Run("should trim actor and note and copy the document", func(t *testing.T) {
		doc, err := component.NewDocument("DDT-1", time.Now())
		require.NoError(t, err)

		cmd, err := commands.NewChangeComponentStatusCommand(kernel.NewUUID(), status.Shipped, " m.rossi ", " truck 2 ", &doc)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, status.Shipped, cmd.Target())
		assert.Equal(t, "m.rossi", cmd.Actor())
		assert.Equal(t, "truck 2", cmd.Note())
		require.NotNil(t, cmd.Document())
		assert.NotSame(t, &doc, cmd.Document())
		assert.Equal(t, "DDT-1", cmd.Document().Number())
	})

	t.Run("should require id, status and actor", func(t *testing.T) {
		_, err := commands.NewChangeComponentStatusCommand(kernel.UUID{}, status.Status{}, "", "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "actor")
	})

	t.Run("should reject an unconstructed document", func(t *testing.T) {
		_, err := commands.NewChangeComponentStatusCommand(kernel.NewUUID(), status.Shipped, "m.rossi", "", &component.Document{})

		require.ErrorIs(t, err, component.ErrDocumentIsNotConstructed)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.ChangeComponentStatusCommand{}.Validate(), commands.ErrChangeComponentStatusCommandIsNotConstructed)
	})
}
