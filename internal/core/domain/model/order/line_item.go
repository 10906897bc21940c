package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// LineItem is one purchased product. UnitPrice is GST-inclusive, in rupees.
type LineItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	SKU        string `json:"sku,omitempty"`
	ProductSKU string `json:"product_sku,omitempty"`
	HSN        string `json:"hsn,omitempty"`
	GSTRate    int    `json:"gst_rate,omitempty"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

func (li LineItem) Validate() error {
	var errList []error
	if strings.TrimSpace(li.ProductID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product id"))
	}
	if strings.TrimSpace(li.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if li.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", li.Quantity)))
	}
	if li.UnitPrice < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%d is negative", li.UnitPrice)))
	}
	if li.GSTRate < 0 || li.GSTRate > 100 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("gst rate", li.GSTRate, 0, 100))
	}
	return errors.Join(errList...)
}

// Subtotal sums the GST-inclusive line totals.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.LineTotal()
	}
	return sum
}

// TotalUnits sums item quantities.
func TotalUnits(items []LineItem) int {
	units := 0
	for _, item := range items {
		units += item.Quantity
	}
	return units
}
