package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/store/model"
)

// JobEvent is published on every job status transition. It carries the owner
// so the bus can filter deliveries per subscription.
type JobEvent struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Status     string    `json:"status"`
	ReportPath *string   `json:"reportPath,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewJobEvent(job *model.ReportJob) JobEvent {
	return JobEvent{
		ID:         job.ID,
		OwnerID:    job.OwnerID,
		Status:     job.Status,
		ReportPath: job.ReportPath,
		UpdatedAt:  job.UpdatedAt,
	}
}
