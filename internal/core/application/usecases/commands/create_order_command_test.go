package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, commands.CheckoutInput{
		Items:         testItems(),
		Shipping:      testAddress(),
		PaymentMethod: order.PaymentOnline,
	})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Len(t, cmd.Items(), 2)
	assert.Equal(t, order.PaymentOnline, cmd.PaymentMethod())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, commands.CheckoutInput{
		Items: testItems(), PaymentMethod: order.PaymentCOD,
	})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), commands.CheckoutInput{PaymentMethod: "wire"})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_InvalidItem(t *testing.T) {
	items := testItems()
	items[1].Quantity = 0

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), commands.CheckoutInput{
		Items: items, PaymentMethod: order.PaymentCOD,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
