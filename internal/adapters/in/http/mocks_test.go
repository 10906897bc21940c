package http_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockShipmentHandler struct{ mock.Mock }

func (m *MockShipmentHandler) Handle(ctx context.Context, cmd commands.ShipmentCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAssignAWBHandler struct{ mock.Mock }

func (m *MockAssignAWBHandler) Handle(ctx context.Context, cmd commands.AssignAWBCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(
	ctx context.Context, cmd commands.UpdateOrderStatusCommand,
) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error) {
	args := m.Called(ctx, query)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context, query queries.ListOrdersQuery,
) ([]queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]queries.ListOrdersQueryResponse)
	return rows, args.Error(1)
}

type MockTrackShipmentHandler struct{ mock.Mock }

func (m *MockTrackShipmentHandler) Handle(ctx context.Context, query queries.TrackShipmentQuery) (ports.Tracking, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(ports.Tracking), args.Error(1)
}

func testAddress() order.Address {
	return order.Address{
		Name:     "Asha Verma",
		Phone:    "9876543210",
		Email:    "asha@example.com",
		Line1:    "14 MG Road",
		Line2:    "Flat 3B",
		City:     "Pune",
		State:    "Maharashtra",
		Postcode: "411001",
	}
}

// testOrder returns a COD order worth 1045.
func testOrder(t *testing.T, s shipment.RestoreParams) *order.Order {
	t.Helper()
	sh, err := shipment.RestoreShipment(s)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:     kernel.NewUUID(),
		Number: "ORD-261014-ABCDEF12",
		Details: order.Details{
			Items: []order.LineItem{
				{ProductID: "p-1", Name: "USB-C Charger", SKU: "CHG-65", UnitPrice: 500, Quantity: 1},
				{ProductID: "p-2", Name: "Cable", UnitPrice: 185, Quantity: 2},
			},
			Shipping:      testAddress(),
			Billing:       testAddress(),
			PaymentMethod: order.PaymentCOD,
			Pricing: order.Pricing{
				Subtotal: 870, TaxableBase: 737, TaxAmount: 133,
				ShippingFee: 150, CODSurcharge: 25, Total: 1045,
			},
		},
		Status:        order.Pending,
		PaymentStatus: order.PaymentPending,
		Shipment:      sh,
		CreatedAt:     time.Date(2026, 10, 14, 9, 5, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}
