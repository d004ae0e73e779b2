// Package export produces the report file for one job. Rows are streamed from
// the record store straight into the output renderer, so memory stays flat in
// the number of exported rows. Reference joins are strict: an appointment
// pointing at a missing clinic or voicebot fails the whole export.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
)

type Exporter struct {
	store     store.Store
	folder    string
	renderers map[string]Renderer
}

func NewExporter(s store.Store, folder string) *Exporter {
	e := &Exporter{
		store:     s,
		folder:    folder,
		renderers: make(map[string]Renderer),
	}

	csvRenderer := NewCSVRenderer()
	xlsxRenderer := NewXLSXRenderer()
	e.renderers[csvRenderer.Extension()] = csvRenderer
	e.renderers[xlsxRenderer.Extension()] = xlsxRenderer

	return e
}

// Path returns the deterministic output location for a job.
func (e *Exporter) Path(job *model.ReportJob) string {
	return filepath.Join(e.folder, fmt.Sprintf("%s.%s", job.ID, job.Format))
}

// Export writes the report file for the given job and returns its path. The
// file is fully written and synced before return. On error a partial file may
// be left behind; cleanup policy belongs to the caller.
func (e *Exporter) Export(ctx context.Context, job *model.ReportJob) (string, error) {
	renderer, exists := e.renderers[job.Format]
	if !exists {
		return "", fmt.Errorf("unsupported report format: %s", job.Format)
	}

	if err := os.MkdirAll(e.folder, 0o755); err != nil {
		return "", errors.Wrap(err, "creating reports folder")
	}

	clinics, err := e.clinicsByID(ctx)
	if err != nil {
		return "", err
	}
	voicebots, err := e.voicebotsByID(ctx)
	if err != nil {
		return "", err
	}

	filter := store.NewAppointmentQueryFilter().ByCreatedBetween(job.StartDate, job.EndDate)
	if job.ClinicID != nil {
		filter = filter.ByClinicID(*job.ClinicID)
	}
	if job.VoicebotID != nil {
		filter = filter.ByVoicebotID(*job.VoicebotID)
	}

	path := e.Path(job)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating report file %s", path)
	}
	defer f.Close()

	rows := func(fn func(Row) error) error {
		return e.store.Appointment().Iterate(ctx, filter, func(appointment model.Appointment) error {
			clinic, ok := clinics[appointment.ClinicID]
			if !ok {
				return fmt.Errorf("clinic %s referenced by appointment %s not found", appointment.ClinicID, appointment.ID)
			}
			voicebot, ok := voicebots[appointment.VoicebotID]
			if !ok {
				return fmt.Errorf("voicebot %s referenced by appointment %s not found", appointment.VoicebotID, appointment.ID)
			}
			return fn(Row{
				PatientName:    appointment.PatientName,
				PatientAge:     appointment.PatientAge,
				PatientContact: appointment.PatientContact,
				VisitReason:    appointment.VisitReason,
				VisitDoctor:    appointment.VisitDoctor,
				VisitStart:     appointment.VisitStart,
				VisitEnd:       appointment.VisitEnd,
				ClinicName:     clinic.Name,
				ClinicAddress:  clinic.Address,
				VoicebotName:   voicebot.Name,
				CreatedAt:      appointment.CreatedAt,
			})
		})
	}

	if err := renderer.Render(f, rows); err != nil {
		return "", err
	}

	if err := f.Sync(); err != nil {
		return "", errors.Wrapf(err, "syncing report file %s", path)
	}
	return path, nil
}

func (e *Exporter) clinicsByID(ctx context.Context) (map[uuid.UUID]model.Clinic, error) {
	clinics, err := e.store.Clinic().List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing clinics")
	}
	byID := make(map[uuid.UUID]model.Clinic, len(clinics))
	for _, c := range clinics {
		byID[c.ID] = c
	}
	return byID, nil
}

func (e *Exporter) voicebotsByID(ctx context.Context) (map[uuid.UUID]model.Voicebot, error) {
	voicebots, err := e.store.Voicebot().List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing voicebots")
	}
	byID := make(map[uuid.UUID]model.Voicebot, len(voicebots))
	for _, v := range voicebots {
		byID[v.ID] = v
	}
	return byID, nil
}
