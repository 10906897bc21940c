package cmd

import (
	"log/slog"

	httpapi "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	carrier    ports.CarrierClient
	pricing    *services.PricingEngine
	builder    services.PayloadBuilder
	logger     *slog.Logger

	shipmentJob *jobs.ShipmentCreationJob
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	carrierClient, err := carrier.NewClient(cfg.Carrier.Client(), logger)
	if err != nil {
		return nil, err
	}
	pricing, err := services.NewPricingEngine(cfg.Pricing)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		carrier:    carrierClient,
		pricing:    pricing,
		builder:    services.NewPayloadBuilder(cfg.Carrier.Payload()),
		logger:     logger,
	}

	c.shipmentJob, err = jobs.NewShipmentCreationJob(
		c.CreateCreateShipmentCommandHandler(),
		c.uowFactory.Create().OrderRepository(),
		cfg.Shipment.Job(),
		logger,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.pricing, c.shipmentJob, c.logger)
	return &h
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		c.orderUoWFactory(), c.carrier, c.builder, c.cfg.Shipment.Settings(), c.logger)
}

func (c *CompositionRoot) CreateAssignAWBCommandHandler() commands.AssignAWBCommandHandler {
	return commands.NewAssignAWBCommandHandler(
		c.orderUoWFactory(), c.carrier, c.builder, c.cfg.Carrier.PickupPostcode, c.cfg.Shipment.Settings(), c.logger)
}

func (c *CompositionRoot) CreateRequestPickupCommandHandler() commands.RequestPickupCommandHandler {
	return commands.NewRequestPickupCommandHandler(c.orderUoWFactory(), c.carrier, c.cfg.Shipment.Settings(), c.logger)
}

func (c *CompositionRoot) CreateGenerateLabelCommandHandler() commands.GenerateLabelCommandHandler {
	return commands.NewGenerateLabelCommandHandler(c.orderUoWFactory(), c.carrier, c.cfg.Shipment.Settings(), c.logger)
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(c.orderUoWFactory(), c.carrier, c.cfg.Shipment.Settings(), c.logger)
}

func (c *CompositionRoot) CreateGenerateManifestCommandHandler() commands.GenerateManifestCommandHandler {
	return commands.NewGenerateManifestCommandHandler(c.orderUoWFactory(), c.carrier, c.cfg.Shipment.Settings(), c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.carrier)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.shipmentJob)
}

func (c *CompositionRoot) HTTPServer() (*httpapi.Server, error) {
	return httpapi.NewServer(httpapi.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		CreateShipment:    c.CreateCreateShipmentCommandHandler(),
		AssignAWB:         c.CreateAssignAWBCommandHandler(),
		RequestPickup:     c.CreateRequestPickupCommandHandler(),
		GenerateLabel:     c.CreateGenerateLabelCommandHandler(),
		GenerateInvoice:   c.CreateGenerateInvoiceCommandHandler(),
		GenerateManifest:  c.CreateGenerateManifestCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		TrackShipment:     c.CreateTrackShipmentQueryHandler(),
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
