package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// GetOrderQueryHandler resolves a reference that is either an order UUID or
// an order number.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if kernel.IsUUID(query.Ref()) {
		id, err := kernel.UUIDFromString(query.Ref())
		if err != nil {
			return nil, err
		}
		return h.repo.Get(ctx, id)
	}
	return h.repo.GetByNumber(ctx, query.Ref())
}
