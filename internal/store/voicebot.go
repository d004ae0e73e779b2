package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/store/model"
	"gorm.io/gorm"
)

type Voicebot interface {
	List(ctx context.Context) (model.VoicebotList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Voicebot, error)
	InitialMigration() error
}

type VoicebotStore struct {
	db *gorm.DB
}

// Make sure we conform to Voicebot interface
var _ Voicebot = (*VoicebotStore)(nil)

func NewVoicebot(db *gorm.DB) Voicebot {
	return &VoicebotStore{db: db}
}

func (s *VoicebotStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Voicebot{})
}

func (s *VoicebotStore) List(ctx context.Context) (model.VoicebotList, error) {
	var voicebots model.VoicebotList
	result := s.getDB(ctx).Model(&voicebots).Order("name").Find(&voicebots)
	if result.Error != nil {
		return nil, result.Error
	}
	return voicebots, nil
}

func (s *VoicebotStore) Get(ctx context.Context, id uuid.UUID) (*model.Voicebot, error) {
	var voicebot model.Voicebot
	result := s.getDB(ctx).First(&voicebot, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &voicebot, nil
}

func (s *VoicebotStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
