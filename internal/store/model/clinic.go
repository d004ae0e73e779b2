package model

import (
	"github.com/google/uuid"
)

type Clinic struct {
	ID      uuid.UUID `gorm:"primaryKey;"`
	Name    string    `gorm:"not null"`
	Address string    `gorm:"not null"`
}

type ClinicList []Clinic

type Voicebot struct {
	ID   uuid.UUID `gorm:"primaryKey;"`
	Name string    `gorm:"not null"`
}

type VoicebotList []Voicebot
