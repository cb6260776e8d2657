package commands_test

import (
	"testing"

	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddCartItemCommand(t *testing.T) {
	itemID := kernel.NewUUID()

	t.Run("valid_command", func(t *testing.T) {
		cmd, err := commands.NewAddCartItemCommand(42, itemID)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, int64(42), cmd.CustomerID())
		assert.True(t, cmd.ItemID().IsEqual(itemID))
	})

	t.Run("zero_customer_id", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(0, itemID)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrCustomerIDIsRequired)
	})

	t.Run("empty_item_id", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(42, kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("default_constructed_fails_validation", func(t *testing.T) {
		var cmd commands.AddCartItemCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrAddCartItemCommandIsNotConstructed)
	})
}
