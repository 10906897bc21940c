package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStatusUoW(repo *MockOrderRepository) (*MockOrderUoW, *MockOrderUoWFactory) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return uow, factory
}

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(kernel.UUID{}, order.Confirmed)
	require.Error(t, err)

	_, err = commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Shipped)
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, cmd.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredCODBecomesPaid(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.Shipped, shipment.RestoreParams{})
	cmd, _ := commands.NewUpdateOrderStatusCommand(o.ID(), order.Delivered)

	repo := new(MockOrderRepository)
	uow, factory := newStatusUoW(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := commands.NewUpdateOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, got.Status())
	assert.Equal(t, order.PaymentPaid, got.PaymentStatus())
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_BackwardMoveRejected(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.Shipped, shipment.RestoreParams{})
	cmd, _ := commands.NewUpdateOrderStatusCommand(o.ID(), order.Pending)

	repo := new(MockOrderRepository)
	uow, factory := newStatusUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err := commands.NewUpdateOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
