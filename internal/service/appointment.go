package service

import (
	"context"

	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/store"
)

// AppointmentService serves the raw appointment listing backing the
// appointments page.
type AppointmentService struct {
	store store.Store
}

func NewAppointmentService(s store.Store) *AppointmentService {
	return &AppointmentService{store: s}
}

// ListAppointments returns all appointments newest first, with the clinic and
// voicebot references resolved inline. Rows whose clinic or voicebot no
// longer exists are skipped.
func (s *AppointmentService) ListAppointments(ctx context.Context) (api.AppointmentList, error) {
	appointments, err := s.store.Appointment().List(ctx, nil)
	if err != nil {
		return nil, err
	}

	clinics, voicebots, err := referenceMaps(ctx, s.store)
	if err != nil {
		return nil, err
	}

	result := make(api.AppointmentList, 0, len(appointments))
	for _, appointment := range appointments {
		clinic, ok := clinics[appointment.ClinicID]
		if !ok {
			continue
		}
		voicebot, ok := voicebots[appointment.VoicebotID]
		if !ok {
			continue
		}
		result = append(result, appointmentToApi(appointment, clinic, voicebot))
	}
	return result, nil
}
