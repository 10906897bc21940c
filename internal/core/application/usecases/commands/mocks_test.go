package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, statuses []order.Status, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, statuses, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingShipment(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkShipmentCreateAttempted(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOrderRepository) AcquireShipmentLease(ctx context.Context, id kernel.UUID, owner string, ttl time.Duration) error {
	args := m.Called(ctx, id, owner, ttl)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveShipment(
	ctx context.Context, id kernel.UUID, owner string, expected shipment.State, patch shipment.Patch,
) error {
	args := m.Called(ctx, id, owner, expected, patch)
	return args.Error(0)
}

func (m *MockOrderRepository) ReleaseShipmentLease(ctx context.Context, id kernel.UUID, owner string) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Decrement(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockStockRepository) Available(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoW struct {
	MockOrderUoW
}

func (m *MockCheckoutUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockShipmentScheduler struct{ mock.Mock }

func (m *MockShipmentScheduler) Schedule(orderID kernel.UUID) {
	m.Called(orderID)
}

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) CheckServiceability(
	ctx context.Context, req ports.ServiceabilityRequest,
) (ports.Serviceability, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Serviceability), args.Error(1)
}

func (m *MockCarrierClient) CreateOrder(
	ctx context.Context, payload shipment.CarrierPayload,
) (ports.CreateOrderResult, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(ports.CreateOrderResult), args.Error(1)
}

func (m *MockCarrierClient) AssignAWB(ctx context.Context, shipmentID, courierID string) (ports.AssignAWBResult, error) {
	args := m.Called(ctx, shipmentID, courierID)
	return args.Get(0).(ports.AssignAWBResult), args.Error(1)
}

func (m *MockCarrierClient) GeneratePickup(ctx context.Context, ref ports.ShipmentRef) (ports.PickupResult, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.PickupResult), args.Error(1)
}

func (m *MockCarrierClient) GenerateLabel(ctx context.Context, ref ports.ShipmentRef) (ports.DocumentResult, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.DocumentResult), args.Error(1)
}

func (m *MockCarrierClient) PrintInvoice(ctx context.Context, ref ports.ShipmentRef) (ports.DocumentResult, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.DocumentResult), args.Error(1)
}

func (m *MockCarrierClient) GenerateManifest(ctx context.Context, ref ports.ShipmentRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockCarrierClient) PrintManifest(ctx context.Context, ref ports.ShipmentRef) (ports.DocumentResult, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.DocumentResult), args.Error(1)
}

func (m *MockCarrierClient) TrackAWB(ctx context.Context, awb string) (ports.Tracking, error) {
	args := m.Called(ctx, awb)
	return args.Get(0).(ports.Tracking), args.Error(1)
}

func testAddress() order.Address {
	return order.Address{
		Name:     "Asha Verma",
		Phone:    "+91 98765 43210",
		Email:    "asha@example.com",
		Line1:    "14 MG Road",
		Line2:    "Flat 3B",
		City:     "Pune",
		State:    "Maharashtra",
		Postcode: "411001",
	}
}

func testItems() []order.LineItem {
	return []order.LineItem{
		{ProductID: "p-1", Name: "USB-C Charger", SKU: "CHG-65", UnitPrice: 500, Quantity: 1},
		{ProductID: "p-2", Name: "Cable", UnitPrice: 185, Quantity: 2},
	}
}

// testOrder returns a COD order worth 870 whose shipment is in state s.
func testOrder(t *testing.T, status order.Status, s shipment.RestoreParams) *order.Order {
	t.Helper()
	sh, err := shipment.RestoreShipment(s)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:     kernel.NewUUID(),
		Number: "ORD-260301-ABCDEF12",
		Details: order.Details{
			Items:         testItems(),
			Shipping:      testAddress(),
			Billing:       testAddress(),
			PaymentMethod: order.PaymentCOD,
			Pricing: order.Pricing{
				Subtotal: 870, TaxableBase: 737, TaxAmount: 133,
				ShippingFee: 150, CODSurcharge: 25, Total: 1045,
			},
		},
		Status:        status,
		PaymentStatus: order.PaymentPending,
		Shipment:      sh,
		CreatedAt:     time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func testBuilder() services.PayloadBuilder {
	cfg := services.DefaultPayloadConfig()
	cfg.PickupLocation = "Warehouse-Pune"
	return services.NewPayloadBuilder(cfg)
}

func testSettings() commands.ShipmentSettings {
	return commands.ShipmentSettings{StepTimeout: time.Second, LeaseTTL: 5 * time.Second}
}

// orderUoWFactoryFor wires repo behind a UoW that is only asked for its repository.
func orderUoWFactoryFor(repo ports.OrderRepository) *MockOrderUoWFactory {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

func patchState(want shipment.State) any {
	return mock.MatchedBy(func(p shipment.Patch) bool {
		return p.State != nil && *p.State == want
	})
}
