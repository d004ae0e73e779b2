package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/auth"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	"go.uber.org/zap"
)

var validate = validator.New()

type JobService struct {
	store store.Store
}

func NewJobService(s store.Store) *JobService {
	return &JobService{store: s}
}

// CreateReportJob validates the request and inserts a pending job. The job is
// picked up by the poll scheduler; nothing is executed inline.
func (s *JobService) CreateReportJob(ctx context.Context, req api.CreateReportJobRequest, user auth.User) (*model.ReportJob, error) {
	if err := validate.Struct(req); err != nil {
		var fieldErrors []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fieldErrors = append(fieldErrors, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
			}
		}
		return nil, NewErrInvalidJobRequest(fieldErrors)
	}

	format := req.Format
	if format == "" {
		format = model.ReportFormatCSV
	}

	now := time.Now()
	job, err := s.store.ReportJob().Create(ctx, model.ReportJob{
		ID:         uuid.New(),
		OwnerID:    user.OwnerID,
		Status:     model.JobStatusPending,
		Format:     format,
		ClinicID:   req.ClinicID,
		VoicebotID: req.VoicebotID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	zap.S().Named("job_service").Infow("report job scheduled", "job_id", job.ID, "owner_id", job.OwnerID)
	return job, nil
}

// ListReportJobs returns the caller's jobs newest first, enriched with the
// denormalized clinic and voicebot names.
func (s *JobService) ListReportJobs(ctx context.Context, user auth.User) (api.ReportJobList, error) {
	jobs, err := s.store.ReportJob().List(ctx,
		store.NewReportJobQueryFilter().ByOwnerID(user.OwnerID),
		store.NewReportJobQueryOptions().WithSortOrder(store.SortByNewestFirst))
	if err != nil {
		return nil, err
	}

	clinics, voicebots, err := referenceMaps(ctx, s.store)
	if err != nil {
		return nil, err
	}

	result := make(api.ReportJobList, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, reportJobToApi(job, clinics, voicebots))
	}
	return result, nil
}

// GetReportJob returns one of the caller's jobs. A job owned by somebody else
// is indistinguishable from a missing one.
func (s *JobService) GetReportJob(ctx context.Context, id uuid.UUID, user auth.User) (*api.ReportJob, error) {
	job, err := s.store.ReportJob().Get(ctx, id)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	if job.OwnerID != user.OwnerID {
		return nil, NewErrJobNotFound(id)
	}

	clinics, voicebots, err := referenceMaps(ctx, s.store)
	if err != nil {
		return nil, err
	}

	result := reportJobToApi(*job, clinics, voicebots)
	return &result, nil
}

// Download describes the file to serve for a completed job.
type Download struct {
	Path     string
	Filename string
}

// GetReportDownload resolves the report file of a completed job and derives
// the user-facing filename from the date range and filter names.
func (s *JobService) GetReportDownload(ctx context.Context, id uuid.UUID, user auth.User) (*Download, error) {
	job, err := s.store.ReportJob().Get(ctx, id)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	if job.OwnerID != user.OwnerID {
		return nil, NewErrJobNotFound(id)
	}
	if job.Status != model.JobStatusCompleted || job.ReportPath == nil {
		return nil, NewErrReportNotReady(id)
	}

	if _, err := os.Stat(*job.ReportPath); err != nil {
		return nil, NewErrReportFileMissing(id)
	}

	return &Download{
		Path:     *job.ReportPath,
		Filename: s.downloadFilename(ctx, job),
	}, nil
}

func (s *JobService) downloadFilename(ctx context.Context, job *model.ReportJob) string {
	dateRange := fmt.Sprintf("%s_to_%s",
		job.StartDate.UTC().Format("2006-01-02"),
		job.EndDate.UTC().Format("2006-01-02"))

	voicebotPart := "all-voicebots"
	if job.VoicebotID != nil {
		// Keep the filter visible even when the name lookup fails.
		voicebotPart = "voicebot-" + job.VoicebotID.String()
		if voicebot, err := s.store.Voicebot().Get(ctx, *job.VoicebotID); err == nil {
			voicebotPart = "voicebot-" + slugify(voicebot.Name)
		}
	}

	clinicPart := "all-clinics"
	if job.ClinicID != nil {
		clinicPart = "clinic-" + job.ClinicID.String()
		if clinic, err := s.store.Clinic().Get(ctx, *job.ClinicID); err == nil {
			clinicPart = "clinic-" + slugify(clinic.Name)
		}
	}

	return fmt.Sprintf("report_%s_%s_%s.%s", dateRange, voicebotPart, clinicPart, job.Format)
}

func referenceMaps(ctx context.Context, s store.Store) (map[uuid.UUID]model.Clinic, map[uuid.UUID]model.Voicebot, error) {
	clinicList, err := s.Clinic().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	voicebotList, err := s.Voicebot().List(ctx)
	if err != nil {
		return nil, nil, err
	}

	clinics := make(map[uuid.UUID]model.Clinic, len(clinicList))
	for _, c := range clinicList {
		clinics[c.ID] = c
	}
	voicebots := make(map[uuid.UUID]model.Voicebot, len(voicebotList))
	for _, v := range voicebotList {
		voicebots[v.ID] = v
	}
	return clinics, voicebots, nil
}

// slugify lowercases the name and collapses anything outside [a-z0-9] to '-'.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLower(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
