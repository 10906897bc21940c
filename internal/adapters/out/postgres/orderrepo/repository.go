package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, now: time.Now}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrOrderNumberTaken
		}
		return err
	}
	return nil
}

// Update writes lifecycle and payment status. Shipment columns are owned by
// SaveShipment and are never touched here.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			colStatus:        int(aggregate.Status()),
			colPaymentStatus: string(aggregate.PaymentStatus()),
			"updated_at":     r.now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByStatus returns the newest orders in any of statuses.
func (r *GormOrderRepository) ListByStatus(ctx context.Context, statuses []order.Status, limit int) ([]*order.Order, error) {
	codes := make([]int, 0, len(statuses))
	for _, s := range statuses {
		codes = append(codes, int(s))
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", codes).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// ListAwaitingShipment returns orders that still need a carrier shipment,
// were never sent to the carrier and are not leased by a running step.
// Orders whose create call failed stay out of the sweep; they are retried
// only through the explicit create action.
func (r *GormOrderRepository) ListAwaitingShipment(
	ctx context.Context, createdBefore time.Time, limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where(colShipmentState+" = ? AND status <> ? AND created_at < ?",
			int(shipment.None), int(order.Cancelled), createdBefore).
		Where(colCreateAttemptedAt + " IS NULL").
		Where("("+colLeaseUntil+" IS NULL OR "+colLeaseUntil+" < ?)", r.now().UTC()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// MarkShipmentCreateAttempted stamps the attempt time while the shipment is
// still None. The caller holds the lease.
func (r *GormOrderRepository) MarkShipmentCreateAttempted(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND "+colShipmentState+" = ?", id.Bytes(), int(shipment.None)).
		Update(colCreateAttemptedAt, at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("shipment state")
	}
	return nil
}

// AcquireShipmentLease takes the lease with a conditional update so that two
// callers can never both hold it.
func (r *GormOrderRepository) AcquireShipmentLease(
	ctx context.Context, id kernel.UUID, owner string, ttl time.Duration,
) error {
	now := r.now().UTC()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Where("("+colLeaseUntil+" IS NULL OR "+colLeaseUntil+" < ?)", now).
		Updates(map[string]any{
			colLeaseOwner: owner,
			colLeaseUntil: now.Add(ttl),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return ports.ErrShipmentBusy
}

// SaveShipment applies patch only while the shipment is still in expected,
// owner holds the lease and the order is not cancelled. The lease is
// cleared in the same statement.
func (r *GormOrderRepository) SaveShipment(
	ctx context.Context, id kernel.UUID, owner string, expected shipment.State, patch shipment.Patch,
) error {
	cols := patchColumns(patch)
	cols[colLeaseOwner] = ""
	cols[colLeaseUntil] = nil
	cols["updated_at"] = r.now().UTC()

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND "+colShipmentState+" = ? AND "+colLeaseOwner+" = ? AND status <> ?",
			id.Bytes(), int(expected), owner, int(order.Cancelled)).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("shipment state")
	}
	return nil
}

// ReleaseShipmentLease clears owner's lease. Releasing a lease held by
// someone else is a no-op.
func (r *GormOrderRepository) ReleaseShipmentLease(ctx context.Context, id kernel.UUID, owner string) error {
	return r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND "+colLeaseOwner+" = ?", id.Bytes(), owner).
		Updates(map[string]any{colLeaseOwner: "", colLeaseUntil: nil}).Error
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
