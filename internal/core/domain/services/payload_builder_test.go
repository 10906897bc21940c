package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T, mutate func(d *order.Details)) *order.Order {
	t.Helper()
	addr := order.Address{
		Name:     "Asha  Rani Verma",
		Phone:    "+91 98765 43210",
		Email:    "asha@example.com",
		Line1:    "14  MG Road",
		Line2:    "Flat 3B",
		City:     "Pune",
		State:    "Maharashtra",
		Postcode: "411 001",
	}
	d := order.Details{
		Items: []order.LineItem{
			{ProductID: "p-1", Name: "USB-C Charger", SKU: "CHG-65", UnitPrice: 500, Quantity: 1},
			{ProductID: "p-2", Name: "Cable", ProductSKU: "CBL-1", HSN: "854442", GSTRate: 12, UnitPrice: 185, Quantity: 2},
		},
		Shipping:      addr,
		Billing:       addr,
		PaymentMethod: order.PaymentCOD,
		Pricing: order.Pricing{
			Subtotal: 870, TaxableBase: 737, TaxAmount: 133,
			ShippingFee: 150, CODSurcharge: 25, Total: 1045,
		},
	}
	if mutate != nil {
		mutate(&d)
	}
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-260301-ABCDEF12", d,
		time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func newBuilder() services.PayloadBuilder {
	cfg := services.DefaultPayloadConfig()
	cfg.PickupLocation = "Warehouse-Pune"
	cfg.ChannelID = "4412"
	return services.NewPayloadBuilder(cfg)
}

func TestPayloadBuilder_Build(t *testing.T) {
	t.Run("maps order onto carrier schema", func(t *testing.T) {
		p, err := newBuilder().Build(testOrder(t, nil))

		require.NoError(t, err)
		assert.Equal(t, "ORD-260301-ABCDEF12", p.OrderID)
		assert.Equal(t, "2026-03-01 09:05", p.OrderDate)
		assert.Equal(t, "Warehouse-Pune", p.PickupLocation)
		assert.Equal(t, "4412", p.ChannelID)
		assert.True(t, p.ShippingIsBilling)

		assert.Equal(t, "Asha", p.BillingCustomerName)
		assert.Equal(t, "Rani Verma", p.BillingLastName)
		assert.Equal(t, "14 MG Road", p.BillingAddress)
		assert.Equal(t, "Flat 3B", p.BillingAddress2)
		assert.Equal(t, "411001", p.BillingPincode)
		assert.Equal(t, "9876543210", p.BillingPhone)
		assert.Equal(t, "India", p.BillingCountry)
		assert.Equal(t, p.BillingAddress, p.ShippingAddress)

		assert.Equal(t, shipment.PaymentCOD, p.PaymentMethod)
		assert.Equal(t, int64(870), p.SubTotal)
		assert.Equal(t, int64(150), p.ShippingCharges)
		assert.Equal(t, int64(25), p.TransactionCharges)
		assert.Equal(t, int64(870), p.DeclaredValue)
		assert.Equal(t, int64(1045), p.CollectableAmount())

		assert.InDelta(t, 0.7, p.Weight, 1e-9)
		assert.InDelta(t, 10.0, p.Length, 1e-9)
	})

	t.Run("item fallbacks", func(t *testing.T) {
		o := testOrder(t, func(d *order.Details) {
			d.Items = append(d.Items, order.LineItem{ProductID: "p-3", Name: "Sticker", UnitPrice: 0, Quantity: 1})
		})

		p, err := newBuilder().Build(o)

		require.NoError(t, err)
		require.Len(t, p.OrderItems, 3)
		assert.Equal(t, shipment.CarrierItem{
			Name: "USB-C Charger", SKU: "CHG-65", Units: 1, SellingPrice: 500, Tax: 18, HSN: services.DefaultHSN,
		}, p.OrderItems[0])
		assert.Equal(t, "CBL-1", p.OrderItems[1].SKU)
		assert.Equal(t, "854442", p.OrderItems[1].HSN)
		assert.InDelta(t, 12.0, p.OrderItems[1].Tax, 1e-9)
		assert.Equal(t, "p-3", p.OrderItems[2].SKU)
	})

	t.Run("prepaid", func(t *testing.T) {
		o := testOrder(t, func(d *order.Details) {
			d.PaymentMethod = order.PaymentOnline
			d.Pricing.CODSurcharge = 0
			d.Pricing.OnlineFee = 20
			d.Pricing.OnlineFeeTax = 4
			d.Pricing.Total = 1044
		})

		p, err := newBuilder().Build(o)

		require.NoError(t, err)
		assert.Equal(t, shipment.PaymentPrepaid, p.PaymentMethod)
		assert.Equal(t, int64(24), p.TransactionCharges)
	})

	t.Run("rejects unconstructed order", func(t *testing.T) {
		_, err := newBuilder().Build(&order.Order{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestBuildThenValidate(t *testing.T) {
	p, err := newBuilder().Build(testOrder(t, nil))
	require.NoError(t, err)

	assert.Empty(t, services.ValidatePayload(p))
	require.NoError(t, services.CheckPayload(p))
}

func TestValidatePayload(t *testing.T) {
	valid := func(t *testing.T) shipment.CarrierPayload {
		t.Helper()
		p, err := newBuilder().Build(testOrder(t, nil))
		require.NoError(t, err)
		return p
	}

	t.Run("format violations", func(t *testing.T) {
		p := valid(t)
		p.BillingPincode = "41100"
		p.BillingPhone = "12345"

		assert.Equal(t, []string{
			"billing_pincode must be 6 digits",
			"billing_phone must be 10 digits",
		}, services.ValidatePayload(p))
	})

	t.Run("required fields in stable order", func(t *testing.T) {
		p := valid(t)
		p.OrderID = ""
		p.PickupLocation = " "
		p.BillingEmail = ""
		p.PaymentMethod = ""

		assert.Equal(t, []string{
			"order_id is required",
			"pickup_location is required",
			"billing_email is required",
			"payment_method is required",
		}, services.ValidatePayload(p))
	})

	t.Run("items", func(t *testing.T) {
		p := valid(t)
		p.OrderItems = []shipment.CarrierItem{{Name: "x", SKU: "", HSN: "1", Units: 0, SellingPrice: 10}}

		assert.Equal(t, []string{
			"order_items[0].sku is required",
			"order_items[0].units must be greater than 0",
		}, services.ValidatePayload(p))

		p.OrderItems = nil
		assert.Contains(t, services.ValidatePayload(p), "order_items must not be empty")
	})

	t.Run("dimensions and cod collectable", func(t *testing.T) {
		p := valid(t)
		p.Weight = 0
		p.TotalDiscount = p.SubTotal + p.ShippingCharges + p.TransactionCharges

		v := services.ValidatePayload(p)

		assert.Contains(t, v, "weight must be greater than 0")
		assert.Contains(t, v, "collectable amount must be greater than 0 for COD")
	})

	t.Run("check payload wraps violations", func(t *testing.T) {
		p := valid(t)
		p.BillingPincode = ""

		err := services.CheckPayload(p)

		require.ErrorIs(t, err, errs.ErrValidationFailed)
		var target *errs.ValidationFailedError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, []string{"billing_pincode is required"}, target.Violations)
	})
}

func TestPayloadBuilder_ShortAddress(t *testing.T) {
	o := testOrder(t, func(d *order.Details) {
		d.Shipping.Line1, d.Shipping.Line2 = "7", "B"
		d.Billing.Line1, d.Billing.Line2 = "7", "B"
	})

	p, err := newBuilder().Build(o)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, normalize.AddressLength(p.BillingAddress, p.BillingAddress2), normalize.MinimumAddressLength)
	assert.GreaterOrEqual(t, normalize.AddressLength(p.ShippingAddress, p.ShippingAddress2), normalize.MinimumAddressLength)
}

func TestSplitName(t *testing.T) {
	first, last := services.SplitName("  Asha   Rani Verma ")
	assert.Equal(t, "Asha", first)
	assert.Equal(t, "Rani Verma", last)

	first, last = services.SplitName("Madonna")
	assert.Equal(t, "Madonna", first)
	assert.Empty(t, last)
}

func TestSelectCourier(t *testing.T) {
	options := []services.CourierOption{{ID: ""}, {ID: "12", Name: "Delhivery"}, {ID: "7", Name: "Xpressbees"}}

	t.Run("recommended", func(t *testing.T) {
		c, err := services.SelectCourier("7", options)
		require.NoError(t, err)
		assert.Equal(t, "Xpressbees", c.Name)
	})

	t.Run("recommended but not listed", func(t *testing.T) {
		c, err := services.SelectCourier("99", options)
		require.NoError(t, err)
		assert.Equal(t, "99", c.ID)
	})

	t.Run("first available", func(t *testing.T) {
		c, err := services.SelectCourier("", options)
		require.NoError(t, err)
		assert.Equal(t, "12", c.ID)
	})

	t.Run("none", func(t *testing.T) {
		_, err := services.SelectCourier(" ", nil)
		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
	})
}
