package stockrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.StockRepository = (*GormStockRepository)(nil)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Decrement subtracts quantity only when enough stock is left, so concurrent
// checkouts can never drive it negative.
func (r *GormStockRepository) Decrement(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.NewInsufficientStockError(productID, quantity)
	}
	return nil
}

// Available returns the current stock of productID.
func (r *GormStockRepository) Available(ctx context.Context, productID string) (int, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("product", productID)
		}
		return 0, err
	}
	return dto.Stock, nil
}
