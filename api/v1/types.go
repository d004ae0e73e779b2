// Package v1 holds the request and response types of the report service API.
package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportJobRequest is the body of POST /api/v1/reports.
// Dates are RFC3339; both dimension filters are optional.
type CreateReportJobRequest struct {
	ClinicID   *uuid.UUID `json:"clinicId,omitempty" validate:"omitempty"`
	VoicebotID *uuid.UUID `json:"voicebotId,omitempty" validate:"omitempty"`
	StartDate  time.Time  `json:"startDate" validate:"required"`
	EndDate    time.Time  `json:"endDate" validate:"required,gtefield=StartDate"`
	Format     string     `json:"format,omitempty" validate:"omitempty,oneof=csv xlsx"`
}

// CreateReportJobResponse is returned with status 202.
type CreateReportJobResponse struct {
	Message string    `json:"message"`
	JobID   uuid.UUID `json:"jobId"`
}

// ReportJobFilters echoes the filters a job was created with, enriched with
// the denormalized dimension names where the filter is present.
type ReportJobFilters struct {
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	ClinicID     *uuid.UUID `json:"clinicId,omitempty"`
	VoicebotID   *uuid.UUID `json:"voicebotId,omitempty"`
	ClinicName   *string    `json:"clinicName,omitempty"`
	VoicebotName *string    `json:"voicebotName,omitempty"`
}

type ReportJob struct {
	ID         uuid.UUID        `json:"id"`
	OwnerID    uuid.UUID        `json:"ownerId"`
	Status     string           `json:"status"`
	Format     string           `json:"format"`
	Filters    ReportJobFilters `json:"filters"`
	ReportPath *string          `json:"reportPath,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type ReportJobList []ReportJob

// ReportJobEvent is the payload of one SSE update event.
type ReportJobEvent struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Status     string    `json:"status"`
	ReportPath *string   `json:"reportPath,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Clinic struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

type ClinicList []Clinic

type Voicebot struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type VoicebotList []Voicebot

type AppointmentPatient struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Contact string `json:"contact"`
}

type AppointmentVisit struct {
	Reason string    `json:"reason"`
	Doctor string    `json:"doctor"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Appointment is one row of GET /api/v1/appointments, with the clinic and
// voicebot references resolved inline.
type Appointment struct {
	ID        uuid.UUID          `json:"id"`
	Patient   AppointmentPatient `json:"patient"`
	Visit     AppointmentVisit   `json:"visit"`
	Clinic    Clinic             `json:"clinic"`
	Voicebot  Voicebot           `json:"voicebot"`
	CreatedAt time.Time          `json:"createdAt"`
}

type AppointmentList []Appointment

// Error is the generic error body returned by the API.
type Error struct {
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	RequestID *string  `json:"requestId,omitempty"`
}
