package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/store/model"
	"gorm.io/gorm"
)

type Clinic interface {
	List(ctx context.Context) (model.ClinicList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	InitialMigration() error
}

type ClinicStore struct {
	db *gorm.DB
}

// Make sure we conform to Clinic interface
var _ Clinic = (*ClinicStore)(nil)

func NewClinic(db *gorm.DB) Clinic {
	return &ClinicStore{db: db}
}

func (s *ClinicStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Clinic{})
}

func (s *ClinicStore) List(ctx context.Context) (model.ClinicList, error) {
	var clinics model.ClinicList
	result := s.getDB(ctx).Model(&clinics).Order("name").Find(&clinics)
	if result.Error != nil {
		return nil, result.Error
	}
	return clinics, nil
}

func (s *ClinicStore) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	var clinic model.Clinic
	result := s.getDB(ctx).First(&clinic, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &clinic, nil
}

func (s *ClinicStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
