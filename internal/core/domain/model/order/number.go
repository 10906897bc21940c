package order

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// NewOrderNumber returns a human readable order reference such as
// ORD-260301-9F3A61C2. The suffix comes from the order id so that numbers
// stay unique without a sequence.
func NewOrderNumber(now time.Time, id kernel.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
	return "ORD-" + now.UTC().Format("060102") + "-" + suffix
}
