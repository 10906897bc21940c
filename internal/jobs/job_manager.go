package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	shipmentCreationJob *ShipmentCreationJob
}

func NewJobManager(shipmentCreationJob *ShipmentCreationJob) *JobManager {
	return &JobManager{shipmentCreationJob: shipmentCreationJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.shipmentCreationJob.Start(); err != nil {
		return fmt.Errorf("failed to start shipment creation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.shipmentCreationJob.Stop()
}
