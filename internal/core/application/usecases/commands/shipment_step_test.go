package commands_test

import (
	"context"
	"errors"
	"slices"
	"sync"
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

// memoryOrderRepository keeps orders in memory with the same lease and
// compare-and-swap rules as the postgres adapter.
type memoryOrderRepository struct {
	mu     sync.Mutex
	rows   map[kernel.UUID]*memoryRow
	saves  int
	nowFor func() time.Time
}

type memoryRow struct {
	order       *order.Order
	leaseOwner  string
	leaseUntil  time.Time
	attemptedAt *time.Time
}

var _ ports.OrderRepository = (*memoryOrderRepository)(nil)

func newMemoryOrderRepository(orders ...*order.Order) *memoryOrderRepository {
	r := &memoryOrderRepository{rows: map[kernel.UUID]*memoryRow{}, nowFor: time.Now}
	for _, o := range orders {
		r.rows[o.ID()] = &memoryRow{order: o}
	}
	return r
}

func cloneOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(order.RestoreParams{
		ID:     o.ID(),
		Number: o.Number(),
		Details: order.Details{
			Items:         o.Items(),
			Shipping:      o.ShippingAddress(),
			Billing:       o.BillingAddress(),
			AddressNote:   o.AddressNote(),
			PaymentMethod: o.PaymentMethod(),
			Pricing:       o.Pricing(),
			GST:           o.GST(),
		},
		Status:        o.Status(),
		PaymentStatus: o.PaymentStatus(),
		Shipment:      o.Shipment(),
		CreatedAt:     o.CreatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (r *memoryOrderRepository) Add(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[o.ID()] = &memoryRow{order: cloneOrder(o)}
	return nil
}

func (r *memoryOrderRepository) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	stored := cloneOrder(row.order)
	if err := stored.ChangeStatus(o.Status()); err != nil {
		return err
	}
	row.order = stored
	return nil
}

func (r *memoryOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(row.order), nil
}

func (r *memoryOrderRepository) GetByNumber(context.Context, string) (*order.Order, error) {
	return nil, errors.New("not supported")
}

func (r *memoryOrderRepository) ListByStatus(context.Context, []order.Status, int) ([]*order.Order, error) {
	return nil, errors.New("not supported")
}

func (r *memoryOrderRepository) ListAwaitingShipment(_ context.Context, before time.Time, limit int) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.nowFor()
	var out []*order.Order
	for _, row := range r.rows {
		o := row.order
		if o.Shipment().State() != shipment.None || o.Status() == order.Cancelled || !o.CreatedAt().Before(before) {
			continue
		}
		if row.attemptedAt != nil || (row.leaseOwner != "" && now.Before(row.leaseUntil)) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	slices.SortFunc(out, func(a, b *order.Order) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryOrderRepository) MarkShipmentCreateAttempted(_ context.Context, id kernel.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.order.Shipment().State() != shipment.None {
		return errs.NewVersionIsInvalidErrorWithCause("shipment state")
	}
	row.attemptedAt = &at
	return nil
}

func (r *memoryOrderRepository) AcquireShipmentLease(_ context.Context, id kernel.UUID, owner string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	now := r.nowFor()
	if row.leaseOwner != "" && now.Before(row.leaseUntil) {
		return ports.ErrShipmentBusy
	}
	row.leaseOwner, row.leaseUntil = owner, now.Add(ttl)
	return nil
}

func (r *memoryOrderRepository) SaveShipment(
	_ context.Context, id kernel.UUID, owner string, expected shipment.State, patch shipment.Patch,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if row.leaseOwner != owner || row.order.Shipment().State() != expected || row.order.Status() == order.Cancelled {
		return errs.NewVersionIsInvalidErrorWithCause("shipment state")
	}
	stored := cloneOrder(row.order)
	stored.ApplyShipment(patch)
	row.order, row.leaseOwner, row.leaseUntil = stored, "", time.Time{}
	r.saves++
	return nil
}

func (r *memoryOrderRepository) ReleaseShipmentLease(_ context.Context, id kernel.UUID, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[id]; ok && row.leaseOwner == owner {
		row.leaseOwner, row.leaseUntil = "", time.Time{}
	}
	return nil
}

func (r *memoryOrderRepository) snapshot(id kernel.UUID) (*order.Order, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.rows[id]
	return cloneOrder(row.order), row.leaseOwner
}

// slowCarrier answers CreateOrder after a delay and counts the calls.
type slowCarrier struct {
	MockCarrierClient
	delay  time.Duration
	calls  atomic.Int32
	during func()
}

func (c *slowCarrier) CreateOrder(ctx context.Context, _ shipment.CarrierPayload) (ports.CreateOrderResult, error) {
	c.calls.Add(1)
	if c.during != nil {
		c.during()
	}
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return ports.CreateOrderResult{}, ctx.Err()
	}
	return ports.CreateOrderResult{ShipmentID: "81234567", CarrierOrderID: "440011", Status: "NEW"}, nil
}

func TestShipmentStep_ConcurrentCreateCallsCarrierOnce(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.Confirmed, shipment.RestoreParams{})
	repo := newMemoryOrderRepository(o)
	carrier := &slowCarrier{delay: 100 * time.Millisecond}
	handler := newCreateShipmentHandler(repo, carrier)
	cmd, _ := commands.NewShipmentCommand(o.ID())

	var (
		wg      sync.WaitGroup
		results = make([]error, 2)
		start   = make(chan struct{})
	)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = handler.Handle(ctx, cmd)
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t,
			errors.Is(err, ports.ErrShipmentBusy) || errors.Is(err, shipment.ErrShipmentAlreadyCreated),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.EqualValues(t, 1, carrier.calls.Load())

	stored, leaseOwner := repo.snapshot(o.ID())
	assert.Equal(t, shipment.OrderCreated, stored.Shipment().State())
	assert.Equal(t, "81234567", stored.Shipment().ShipmentID())
	assert.Empty(t, leaseOwner)
	assert.Equal(t, 1, repo.saves)
}

func TestShipmentStep_CancellationDuringCarrierCallWins(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.Confirmed, shipment.RestoreParams{})
	repo := newMemoryOrderRepository(o)
	carrier := &slowCarrier{delay: 10 * time.Millisecond}
	carrier.during = func() {
		cancelled := cloneOrder(o)
		require.NoError(t, cancelled.ChangeStatus(order.Cancelled))
		require.NoError(t, repo.Update(context.Background(), cancelled))
	}
	cmd, _ := commands.NewShipmentCommand(o.ID())

	_, err := newCreateShipmentHandler(repo, carrier).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	stored, leaseOwner := repo.snapshot(o.ID())
	assert.Equal(t, order.Cancelled, stored.Status())
	assert.Equal(t, shipment.None, stored.Shipment().State())
	assert.Empty(t, leaseOwner)
}

func TestShipmentStep_StepTimeoutReleasesLease(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.Confirmed, shipment.RestoreParams{})
	repo := newMemoryOrderRepository(o)
	carrier := &slowCarrier{delay: time.Minute}
	settings := commands.ShipmentSettings{StepTimeout: 20 * time.Millisecond, LeaseTTL: time.Second}
	handler := commands.NewCreateShipmentCommandHandler(
		orderUoWFactoryFor(repo), carrier, testBuilder(), settings, discardLogger())
	cmd, _ := commands.NewShipmentCommand(o.ID())

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	_, leaseOwner := repo.snapshot(o.ID())
	assert.Empty(t, leaseOwner)
}

func TestShipmentStep_FailedCreateIsNotSweptAgain(t *testing.T) {
	ctx := t.Context()
	failing := testOrder(t, order.Confirmed, shipment.RestoreParams{})
	untouched := testOrder(t, order.Confirmed, shipment.RestoreParams{})
	repo := newMemoryOrderRepository(failing, untouched)

	carrier := new(MockCarrierClient)
	carrier.On("CreateOrder", mock.Anything, mock.Anything).
		Return(ports.CreateOrderResult{}, ports.NewCarrierTransportError("create order", 0, "", context.DeadlineExceeded))
	handler := newCreateShipmentHandler(repo, carrier)
	cmd, _ := commands.NewShipmentCommand(failing.ID())

	_, err := handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	for range 3 {
		pending, err := repo.ListAwaitingShipment(ctx, time.Now(), 20)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, untouched.ID(), pending[0].ID())
	}

	stored, leaseOwner := repo.snapshot(failing.ID())
	assert.Equal(t, shipment.None, stored.Shipment().State())
	assert.Empty(t, leaseOwner)
	carrier.AssertNumberOfCalls(t, "CreateOrder", 1)

	// The explicit create action still retries.
	_, err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	carrier.AssertNumberOfCalls(t, "CreateOrder", 2)
}

func TestShipmentSettings_Validate(t *testing.T) {
	require.NoError(t, commands.DefaultShipmentSettings().Validate())
	require.ErrorIs(t,
		commands.ShipmentSettings{StepTimeout: time.Minute, LeaseTTL: time.Second}.Validate(),
		errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, commands.ShipmentSettings{}.Validate(), errs.ErrValueIsInvalid)
}
