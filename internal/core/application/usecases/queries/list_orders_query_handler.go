package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order list straight from the orders table
// without rebuilding aggregates.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns rows newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const columns = `
		SELECT
			id,
			number,
			status,
			payment_method,
			payment_status,
			pricing_total,
			shipment_state,
			shipment_awb,
			created_at
		FROM orders`

	var tx *gorm.DB
	if statuses := query.Statuses(); len(statuses) > 0 {
		codes := make([]int, len(statuses))
		for i, s := range statuses {
			codes[i] = int(s)
		}
		tx = h.db.WithContext(ctx).Raw(columns+`
		WHERE status IN ?
		ORDER BY created_at DESC
		LIMIT ?`, codes, query.Limit())
	} else {
		tx = h.db.WithContext(ctx).Raw(columns+`
		ORDER BY created_at DESC
		LIMIT ?`, query.Limit())
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id                         uuid.UUID
			status, shipmentState      int
			paymentMethod, paymentStat string
			row                        ListOrdersQueryResponse
			createdAt                  time.Time
		)
		if err = rows.Scan(
			&id,
			&row.Number,
			&status,
			&paymentMethod,
			&paymentStat,
			&row.Total,
			&shipmentState,
			&row.AWB,
			&createdAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = orderID
		row.Status = order.Status(status)
		row.PaymentMethod = order.PaymentMethod(paymentMethod)
		row.PaymentStatus = order.PaymentStatus(paymentStat)
		row.ShipmentState = shipment.State(shipmentState)
		row.CreatedAt = createdAt.UTC()
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
