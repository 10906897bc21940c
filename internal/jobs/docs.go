// Package jobs runs shipment creation in the background.
//
// Checkout commits the order and hands its id to ShipmentCreationJob through
// ports.ShipmentScheduler. A small worker pool drains that queue. A cron sweep
// built on github.com/robfig/cron/v3 lists orders that are committed, not
// cancelled and were never sent to the carrier, which covers queue drops and
// crashes before the call. An order whose create attempt failed is not swept
// again; the carrier create call is not idempotent, so those go back to the
// admin create action. The sweep never overlaps itself.
//
// # Usage
//
//	job, err := jobs.NewShipmentCreationJob(createShipmentHandler, orderRepo, cfg, logger)
//	if err != nil {
//		return err
//	}
//	manager := jobs.NewJobManager(job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// Failures are logged and never returned. Orders held by another step or
// already shipped are logged at debug level.
package jobs
