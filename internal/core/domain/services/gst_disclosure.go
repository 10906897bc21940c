package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// BuildGSTDisclosure derives the GST invoice block. A GSTIN forces the
// invoice to be requested. A missing rate is back-computed from the
// pricing snapshot for display; the tax amount always comes from pricing.
func BuildGSTDisclosure(req order.GSTRequest, pricing order.Pricing) order.GSTDisclosure {
	gstin := strings.ToUpper(strings.TrimSpace(req.GSTIN))
	if !req.Requested && gstin == "" {
		return order.GSTDisclosure{}
	}

	rate := 0
	switch {
	case req.TaxRate != nil:
		rate = *req.TaxRate
	case pricing.TaxableBase > 0:
		rate = int(decimal.NewFromInt(pricing.TaxAmount).
			Div(decimal.NewFromInt(pricing.TaxableBase)).
			Mul(decimal.NewFromInt(100)).
			Round(0).IntPart())
	}

	return order.GSTDisclosure{
		Requested:     true,
		GSTIN:         gstin,
		LegalName:     strings.TrimSpace(req.LegalName),
		PlaceOfSupply: strings.TrimSpace(req.PlaceOfSupply),
		TaxRate:       rate,
		TaxableValue:  pricing.TaxableBase,
		TaxAmount:     pricing.TaxAmount,
	}
}
