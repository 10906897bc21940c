package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

var _ ports.ShipmentScheduler = (*ShipmentCreationJob)(nil)

// ShipmentCreator creates the carrier shipment for one order.
type ShipmentCreator interface {
	Handle(ctx context.Context, cmd commands.ShipmentCommand) (*order.Order, error)
}

// AwaitingShipmentLister finds committed orders that still have no carrier
// shipment.
type AwaitingShipmentLister interface {
	ListAwaitingShipment(ctx context.Context, before time.Time, limit int) ([]*order.Order, error)
}

type ShipmentCreationConfig struct {
	// Schedule is a cron expression with an optional seconds field, or a descriptor
	// such as "@every 1m".
	Schedule  string
	BatchSize int
	// MinAge keeps the sweep away from orders whose post-checkout attempt may
	// still be queued.
	MinAge    time.Duration
	QueueSize int
	Workers   int
}

func DefaultShipmentCreationConfig() ShipmentCreationConfig {
	return ShipmentCreationConfig{
		Schedule:  "@every 1m",
		BatchSize: 20,
		MinAge:    2 * time.Minute,
		QueueSize: 100,
		Workers:   2,
	}
}

func (c ShipmentCreationConfig) Validate() error {
	var errList []error
	if c.Schedule == "" {
		errList = append(errList, errs.NewValueIsRequiredError("sweep schedule"))
	} else if _, err := cronParser.Parse(c.Schedule); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("sweep schedule", err))
	}
	if c.BatchSize < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("sweep batch", c.BatchSize, 1, "-"))
	}
	if c.MinAge < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("sweep min age", c.MinAge, 0, "-"))
	}
	if c.QueueSize < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("queue size", c.QueueSize, 1, "-"))
	}
	if c.Workers < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("workers", c.Workers, 1, "-"))
	}
	return errors.Join(errList...)
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ShipmentCreationJob creates carrier shipments outside the checkout
// request. Orders arrive through Schedule right after commit, and a cron
// sweep picks up anything that was dropped or failed.
type ShipmentCreationJob struct {
	creator ShipmentCreator
	lister  AwaitingShipmentLister
	cfg     ShipmentCreationConfig
	cron    *cron.Cron
	logger  *slog.Logger
	now     func() time.Time

	queue    chan kernel.UUID
	done     chan struct{}
	stopOnce sync.Once
	workers  sync.WaitGroup
}

func NewShipmentCreationJob(
	creator ShipmentCreator,
	lister AwaitingShipmentLister,
	cfg ShipmentCreationConfig,
	logger *slog.Logger,
) (*ShipmentCreationJob, error) {
	if creator == nil {
		return nil, errs.NewValueIsRequiredError("shipment creator")
	}
	if lister == nil {
		return nil, errs.NewValueIsRequiredError("awaiting shipment lister")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ShipmentCreationJob{
		creator: creator,
		lister:  lister,
		cfg:     cfg,
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "shipment_creation_job"),
		now:    time.Now,
		queue:  make(chan kernel.UUID, cfg.QueueSize),
		done:   make(chan struct{}),
	}, nil
}

// Schedule queues one order without blocking. A full queue drops the order,
// which the next sweep picks up.
func (j *ShipmentCreationJob) Schedule(orderID kernel.UUID) {
	select {
	case <-j.done:
		return
	default:
	}

	select {
	case j.queue <- orderID:
	default:
		j.logger.Warn("Shipment queue is full, leaving order to the sweep", "order_id", orderID.String())
	}
}

// Start launches the queue workers and the sweep.
func (j *ShipmentCreationJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.Sweep); err != nil {
		return err
	}

	for range j.cfg.Workers {
		j.workers.Add(1)
		go j.work()
	}
	j.cron.Start()

	j.logger.InfoContext(context.Background(), "Shipment creation job started",
		"schedule", j.cfg.Schedule, "workers", j.cfg.Workers)
	return nil
}

// Stop waits for a running sweep and for the workers to finish their
// current order. Queued orders are left to the next process's sweep.
func (j *ShipmentCreationJob) Stop() {
	j.stopOnce.Do(func() {
		<-j.cron.Stop().Done()
		close(j.done)
		j.workers.Wait()
		j.logger.InfoContext(context.Background(), "Shipment creation job stopped")
	})
}

func (j *ShipmentCreationJob) work() {
	defer j.workers.Done()
	for {
		select {
		case <-j.done:
			return
		case id := <-j.queue:
			j.create(context.Background(), id)
		}
	}
}

// Sweep creates shipments for one batch of orders that were never attempted.
func (j *ShipmentCreationJob) Sweep() {
	ctx := context.Background()

	pending, err := j.lister.ListAwaitingShipment(ctx, j.now().Add(-j.cfg.MinAge), j.cfg.BatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment sweep failed", "error", err)
		return
	}

	for _, o := range pending {
		select {
		case <-j.done:
			return
		default:
		}
		j.create(ctx, o.ID())
	}
}

func (j *ShipmentCreationJob) create(ctx context.Context, orderID kernel.UUID) {
	cmd, err := commands.NewShipmentCommand(orderID)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment creation skipped", "order_id", orderID.String(), "error", err)
		return
	}

	created, err := j.creator.Handle(ctx, cmd)
	switch {
	case err == nil:
		j.logger.InfoContext(ctx, "Carrier shipment created",
			"order_id", orderID.String(), "shipment_id", created.Shipment().ShipmentID())
	case isSettled(err):
		j.logger.DebugContext(ctx, "Shipment creation not needed", "order_id", orderID.String(), "reason", err)
	default:
		j.logger.ErrorContext(ctx, "Shipment creation failed", "order_id", orderID.String(), "error", err)
	}
}

// isSettled reports errors meaning another path already handled the order.
func isSettled(err error) bool {
	return errors.Is(err, ports.ErrShipmentBusy) ||
		errors.Is(err, shipment.ErrShipmentAlreadyCreated) ||
		errors.Is(err, order.ErrOrderIsCancelled) ||
		errors.Is(err, errs.ErrVersionIsInvalid)
}
