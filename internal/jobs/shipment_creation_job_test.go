package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentCreator struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockShipmentCreator) Handle(ctx context.Context, cmd commands.ShipmentCommand) (*order.Order, error) {
	m.calls.Add(1)
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAwaitingShipmentLister struct{ mock.Mock }

func (m *MockAwaitingShipmentLister) ListAwaitingShipment(
	ctx context.Context, before time.Time, limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestJob(t *testing.T, creator ShipmentCreator, lister AwaitingShipmentLister, cfg ShipmentCreationConfig) *ShipmentCreationJob {
	t.Helper()
	job, err := NewShipmentCreationJob(creator, lister, cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	job.now = func() time.Time { return testNow }
	return job
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	addr := order.Address{
		Name: "Asha Verma", Phone: "9876543210", Line1: "14 MG Road", Line2: "Flat 3B",
		City: "Pune", State: "Maharashtra", Postcode: "411001",
	}
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:     kernel.NewUUID(),
		Number: "ORD-261014-ABCDEF12",
		Details: order.Details{
			Items:         []order.LineItem{{ProductID: "p-1", Name: "Charger", UnitPrice: 870, Quantity: 1}},
			Shipping:      addr,
			Billing:       addr,
			PaymentMethod: order.PaymentCOD,
			Pricing: order.Pricing{
				Subtotal: 870, TaxableBase: 737, TaxAmount: 133,
				ShippingFee: 150, CODSurcharge: 25, Total: 1045,
			},
		},
		Status:        order.Pending,
		PaymentStatus: order.PaymentPending,
		CreatedAt:     testNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

func forOrder(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.ShipmentCommand) bool { return cmd.OrderID().IsEqual(id) })
}

func TestShipmentCreationConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultShipmentCreationConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *ShipmentCreationConfig)
		want   error
	}{
		{"empty_schedule", func(c *ShipmentCreationConfig) { c.Schedule = "" }, errs.ErrValueIsRequired},
		{"bad_schedule", func(c *ShipmentCreationConfig) { c.Schedule = "every minute" }, errs.ErrValueIsInvalid},
		{"zero_batch", func(c *ShipmentCreationConfig) { c.BatchSize = 0 }, errs.ErrValueIsOutOfRange},
		{"negative_age", func(c *ShipmentCreationConfig) { c.MinAge = -time.Second }, errs.ErrValueIsOutOfRange},
		{"zero_queue", func(c *ShipmentCreationConfig) { c.QueueSize = 0 }, errs.ErrValueIsOutOfRange},
		{"zero_workers", func(c *ShipmentCreationConfig) { c.Workers = 0 }, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultShipmentCreationConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	t.Run("six_field_spec", func(t *testing.T) {
		cfg := DefaultShipmentCreationConfig()
		cfg.Schedule = "*/30 * * * * *"
		require.NoError(t, cfg.Validate())
	})
}

func TestNewShipmentCreationJob_RequiresDependencies(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cfg := DefaultShipmentCreationConfig()

	_, err := NewShipmentCreationJob(nil, new(MockAwaitingShipmentLister), cfg, logger)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = NewShipmentCreationJob(new(MockShipmentCreator), nil, cfg, logger)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = NewShipmentCreationJob(new(MockShipmentCreator), new(MockAwaitingShipmentLister), cfg, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestShipmentCreationJob_Sweep(t *testing.T) {
	t.Run("creates_every_listed_order", func(t *testing.T) {
		first, second, third := testOrder(t), testOrder(t), testOrder(t)
		lister := new(MockAwaitingShipmentLister)
		lister.On("ListAwaitingShipment", mock.Anything, testNow.Add(-2*time.Minute), 20).
			Return([]*order.Order{first, second, third}, nil).Once()

		creator := new(MockShipmentCreator)
		creator.On("Handle", mock.Anything, forOrder(first.ID())).Return(first, nil).Once()
		creator.On("Handle", mock.Anything, forOrder(second.ID())).
			Return(nil, ports.NewCarrierTransportError("create order", 0, "", context.DeadlineExceeded)).Once()
		creator.On("Handle", mock.Anything, forOrder(third.ID())).Return(nil, ports.ErrShipmentBusy).Once()

		newTestJob(t, creator, lister, DefaultShipmentCreationConfig()).Sweep()

		lister.AssertExpectations(t)
		creator.AssertExpectations(t)
	})

	t.Run("list_failure_creates_nothing", func(t *testing.T) {
		lister := new(MockAwaitingShipmentLister)
		lister.On("ListAwaitingShipment", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError).Once()
		creator := new(MockShipmentCreator)

		newTestJob(t, creator, lister, DefaultShipmentCreationConfig()).Sweep()

		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestShipmentCreationJob_ScheduledOrderIsCreated(t *testing.T) {
	o := testOrder(t)
	creator := new(MockShipmentCreator)
	creator.On("Handle", mock.Anything, forOrder(o.ID())).Return(o, nil).Once()

	cfg := DefaultShipmentCreationConfig()
	cfg.Schedule = "@every 1h"
	job := newTestJob(t, creator, new(MockAwaitingShipmentLister), cfg)
	require.NoError(t, job.Start())

	job.Schedule(o.ID())

	assert.Eventually(t, func() bool { return creator.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Stop()
	creator.AssertExpectations(t)
}

func TestShipmentCreationJob_Schedule(t *testing.T) {
	t.Run("full_queue_does_not_block", func(t *testing.T) {
		cfg := DefaultShipmentCreationConfig()
		cfg.QueueSize = 1
		job := newTestJob(t, new(MockShipmentCreator), new(MockAwaitingShipmentLister), cfg)

		finished := make(chan struct{})
		go func() {
			for range 3 {
				job.Schedule(kernel.NewUUID())
			}
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("Schedule blocked on a full queue")
		}
		assert.Len(t, job.queue, 1)
	})

	t.Run("after_stop_is_ignored", func(t *testing.T) {
		job := newTestJob(t, new(MockShipmentCreator), new(MockAwaitingShipmentLister), DefaultShipmentCreationConfig())
		require.NoError(t, job.Start())
		job.Stop()
		job.Stop()

		assert.NotPanics(t, func() { job.Schedule(kernel.NewUUID()) })
		assert.Empty(t, job.queue)
	})
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"busy", ports.ErrShipmentBusy, true},
		{"already_created", errs.NewStateIsInvalidErrorWithCause("shipment", "ORDER_CREATED", shipment.ErrShipmentAlreadyCreated), true},
		{"cancelled", errs.NewStateIsInvalidErrorWithCause("order", "Cancelled", order.ErrOrderIsCancelled), true},
		{"lost_race", errs.NewVersionIsInvalidErrorWithCause("shipment state"), true},
		{"carrier_down", ports.NewCarrierTransportError("create order", 503, "", nil), false},
		{"payload_invalid", errs.NewValidationFailedError("carrier payload", []string{"x"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSettled(tt.err))
		})
	}
}
