package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job status constants
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusDeleted    = "deleted"
)

// Report format constants
const (
	ReportFormatCSV  = "csv"
	ReportFormatXLSX = "xlsx"
)

// ReportJob is one requested export tracked through its status lifecycle.
// ReportPath is set only when the job reaches the completed status.
type ReportJob struct {
	ID         uuid.UUID `gorm:"primaryKey;"`
	OwnerID    uuid.UUID `gorm:"not null;index:report_jobs_owner_id_idx"`
	Status     string    `gorm:"not null;type:VARCHAR(32);index:report_jobs_status_idx"`
	Format     string    `gorm:"not null;type:VARCHAR(16);default:csv"`
	ClinicID   *uuid.UUID
	VoicebotID *uuid.UUID
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`
	ReportPath *string
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

type ReportJobList []ReportJob

func (j ReportJob) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
