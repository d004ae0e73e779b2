package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Appointment is one voicebot-booked clinic visit. Patient and visit fields
// are denormalized onto the row the same way the export presents them.
type Appointment struct {
	ID             uuid.UUID `gorm:"primaryKey;"`
	PatientName    string    `gorm:"not null"`
	PatientAge     int       `gorm:"not null"`
	PatientContact string    `gorm:"not null"`
	VisitReason    string    `gorm:"not null"`
	VisitDoctor    string    `gorm:"not null"`
	VisitStart     time.Time `gorm:"not null"`
	VisitEnd       time.Time `gorm:"not null"`
	ClinicID       uuid.UUID `gorm:"not null;index:appointments_clinic_id_idx"`
	VoicebotID     uuid.UUID `gorm:"not null;index:appointments_voicebot_id_idx"`
	CreatedAt      time.Time `gorm:"not null;index:appointments_created_at_idx"`
}

type AppointmentList []Appointment

func (a Appointment) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
