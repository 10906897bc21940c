package queries_test

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
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
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingShipment(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkShipmentCreateAttempted(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOrderRepository) AcquireShipmentLease(ctx context.Context, id kernel.UUID, owner string, ttl time.Duration) error {
	return m.Called(ctx, id, owner, ttl).Error(0)
}

func (m *MockOrderRepository) SaveShipment(
	ctx context.Context, id kernel.UUID, owner string, expected shipment.State, patch shipment.Patch,
) error {
	return m.Called(ctx, id, owner, expected, patch).Error(0)
}

func (m *MockOrderRepository) ReleaseShipmentLease(ctx context.Context, id kernel.UUID, owner string) error {
	return m.Called(ctx, id, owner).Error(0)
}

// MockCarrierClient only records tracking calls; the queries never call
// anything else.
type MockCarrierClient struct {
	ports.CarrierClient
	mock.Mock
}

func (m *MockCarrierClient) TrackAWB(ctx context.Context, awb string) (ports.Tracking, error) {
	args := m.Called(ctx, awb)
	return args.Get(0).(ports.Tracking), args.Error(1)
}
