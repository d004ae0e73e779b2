package service

import (
	"context"

	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/store"
)

// CatalogService serves the reference collections used to populate the
// report filter choices.
type CatalogService struct {
	store store.Store
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{store: s}
}

func (s *CatalogService) ListClinics(ctx context.Context) (api.ClinicList, error) {
	clinics, err := s.store.Clinic().List(ctx)
	if err != nil {
		return nil, err
	}

	result := make(api.ClinicList, 0, len(clinics))
	for _, c := range clinics {
		result = append(result, clinicToApi(c))
	}
	return result, nil
}

func (s *CatalogService) ListVoicebots(ctx context.Context) (api.VoicebotList, error) {
	voicebots, err := s.store.Voicebot().List(ctx)
	if err != nil {
		return nil, err
	}

	result := make(api.VoicebotList, 0, len(voicebots))
	for _, v := range voicebots {
		result = append(result, voicebotToApi(v))
	}
	return result, nil
}
