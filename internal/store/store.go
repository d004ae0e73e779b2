package store

import (
	"context"

	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	ReportJob() ReportJob
	Appointment() Appointment
	Clinic() Clinic
	Voicebot() Voicebot
	InitialMigration() error
	Seed() error
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	reportJob   ReportJob
	appointment Appointment
	clinic      Clinic
	voicebot    Voicebot
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:          db,
		reportJob:   NewReportJob(db),
		appointment: NewAppointment(db),
		clinic:      NewClinic(db),
		voicebot:    NewVoicebot(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) ReportJob() ReportJob {
	return s.reportJob
}

func (s *DataStore) Appointment() Appointment {
	return s.appointment
}

func (s *DataStore) Clinic() Clinic {
	return s.clinic
}

func (s *DataStore) Voicebot() Voicebot {
	return s.voicebot
}

func (s *DataStore) InitialMigration() error {
	if err := s.reportJob.InitialMigration(); err != nil {
		return err
	}
	if err := s.appointment.InitialMigration(); err != nil {
		return err
	}
	if err := s.clinic.InitialMigration(); err != nil {
		return err
	}
	return s.voicebot.InitialMigration()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
