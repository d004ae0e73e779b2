package service

import (
	"github.com/google/uuid"
	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/store/model"
)

func reportJobToApi(job model.ReportJob, clinics map[uuid.UUID]model.Clinic, voicebots map[uuid.UUID]model.Voicebot) api.ReportJob {
	filters := api.ReportJobFilters{
		StartDate:  job.StartDate,
		EndDate:    job.EndDate,
		ClinicID:   job.ClinicID,
		VoicebotID: job.VoicebotID,
	}
	if job.ClinicID != nil {
		if clinic, ok := clinics[*job.ClinicID]; ok {
			filters.ClinicName = &clinic.Name
		}
	}
	if job.VoicebotID != nil {
		if voicebot, ok := voicebots[*job.VoicebotID]; ok {
			filters.VoicebotName = &voicebot.Name
		}
	}

	return api.ReportJob{
		ID:         job.ID,
		OwnerID:    job.OwnerID,
		Status:     job.Status,
		Format:     job.Format,
		Filters:    filters,
		ReportPath: job.ReportPath,
		CreatedAt:  job.CreatedAt,
		UpdatedAt:  job.UpdatedAt,
	}
}

func appointmentToApi(appointment model.Appointment, clinic model.Clinic, voicebot model.Voicebot) api.Appointment {
	return api.Appointment{
		ID: appointment.ID,
		Patient: api.AppointmentPatient{
			Name:    appointment.PatientName,
			Age:     appointment.PatientAge,
			Contact: appointment.PatientContact,
		},
		Visit: api.AppointmentVisit{
			Reason: appointment.VisitReason,
			Doctor: appointment.VisitDoctor,
			Start:  appointment.VisitStart,
			End:    appointment.VisitEnd,
		},
		Clinic:    clinicToApi(clinic),
		Voicebot:  voicebotToApi(voicebot),
		CreatedAt: appointment.CreatedAt,
	}
}

func clinicToApi(clinic model.Clinic) api.Clinic {
	return api.Clinic{
		ID:      clinic.ID,
		Name:    clinic.Name,
		Address: clinic.Address,
	}
}

func voicebotToApi(voicebot model.Voicebot) api.Voicebot {
	return api.Voicebot{
		ID:   voicebot.ID,
		Name: voicebot.Name,
	}
}
