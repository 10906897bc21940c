// Package pgtest starts a disposable PostgreSQL for integration suites.
package pgtest

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated schema inside a running container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects through postgres.Open and applies
// the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table owned by the service.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE orders, products").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	return d.Container.Terminate(ctx)
}

// SampleOrder returns a pending COD order worth 1045 created at createdAt.
func SampleOrder(createdAt time.Time) (*order.Order, error) {
	address := order.Address{
		Name:     "Asha Verma",
		Phone:    "9876543210",
		Email:    "asha@example.com",
		Line1:    "14 MG Road",
		City:     "Pune",
		State:    "Maharashtra",
		Postcode: "411001",
	}
	id := kernel.NewUUID()

	return order.NewOrder(id, order.NewOrderNumber(createdAt, id), order.Details{
		Items: []order.LineItem{
			{ProductID: "p-1", Name: "USB-C Charger", SKU: "CHG-65", UnitPrice: 500, Quantity: 1},
			{ProductID: "p-2", Name: "Cable", UnitPrice: 185, Quantity: 2},
		},
		Shipping:      address,
		Billing:       address,
		PaymentMethod: order.PaymentCOD,
		Pricing: order.Pricing{
			Subtotal: 870, TaxableBase: 737, TaxAmount: 133,
			ShippingFee: 150, CODSurcharge: 25, Total: 1045,
		},
		GST: order.GSTDisclosure{Requested: true, GSTIN: "27ABCDE1234F1Z5", TaxRate: 18, TaxableValue: 737, TaxAmount: 133},
	}, createdAt)
}
