package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/auth"
	"github.com/voicemed/report-service/internal/config"
	"github.com/voicemed/report-service/internal/service"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("job service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.JobService
		user   auth.User
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		srv = service.NewJobService(s)
	})

	BeforeEach(func() {
		user = auth.User{OwnerID: uuid.New()}
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM report_jobs;")
		gormdb.Exec("DELETE FROM clinics;")
		gormdb.Exec("DELETE FROM voicebots;")
	})

	Context("create", func() {
		It("schedules a pending job", func() {
			job, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			}, user)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusPending))
			Expect(job.OwnerID).To(Equal(user.OwnerID))
			Expect(job.Format).To(Equal(model.ReportFormatCSV))
		})

		It("keeps the requested format", func() {
			job, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
				Format:    model.ReportFormatXLSX,
			}, user)
			Expect(err).To(BeNil())
			Expect(job.Format).To(Equal(model.ReportFormatXLSX))
		})

		It("rejects an end date before the start date", func() {
			_, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			}, user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidJobRequest{}))

			verr := err.(*service.ErrInvalidJobRequest)
			Expect(verr.FieldErrors).ToNot(BeEmpty())
		})

		It("rejects missing dates", func() {
			_, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{}, user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidJobRequest{}))
		})

		It("rejects an unknown format", func() {
			_, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
				Format:    "pdf",
			}, user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidJobRequest{}))
		})

		It("accepts equal start and end dates", func() {
			day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
			job, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: day,
				EndDate:   day,
			}, user)
			Expect(err).To(BeNil())
			Expect(job).ToNot(BeNil())
		})
	})

	Context("list", func() {
		It("returns only the caller's jobs, newest first", func() {
			createJob := func(owner uuid.UUID, createdAt time.Time) model.ReportJob {
				job := model.ReportJob{
					ID:        uuid.New(),
					OwnerID:   owner,
					Status:    model.JobStatusPending,
					Format:    model.ReportFormatCSV,
					StartDate: createdAt.AddDate(0, -1, 0),
					EndDate:   createdAt,
					CreatedAt: createdAt,
					UpdatedAt: createdAt,
				}
				Expect(gormdb.Create(&job).Error).To(BeNil())
				return job
			}

			older := createJob(user.OwnerID, time.Now().Add(-2*time.Hour))
			newer := createJob(user.OwnerID, time.Now().Add(-1*time.Hour))
			createJob(uuid.New(), time.Now())

			jobs, err := srv.ListReportJobs(context.TODO(), user)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))
			Expect(jobs[0].ID).To(Equal(newer.ID))
			Expect(jobs[1].ID).To(Equal(older.ID))
		})

		It("enriches filters with the dimension names", func() {
			clinic := model.Clinic{ID: uuid.New(), Name: "Lakeview Family Clinic", Address: "88 Aspen Avenue"}
			Expect(gormdb.Create(&clinic).Error).To(BeNil())

			_, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				ClinicID:  &clinic.ID,
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			}, user)
			Expect(err).To(BeNil())

			jobs, err := srv.ListReportJobs(context.TODO(), user)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Filters.ClinicName).ToNot(BeNil())
			Expect(*jobs[0].Filters.ClinicName).To(Equal("Lakeview Family Clinic"))
			Expect(jobs[0].Filters.VoicebotName).To(BeNil())
		})
	})

	Context("get", func() {
		It("returns the caller's job", func() {
			created, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			}, user)
			Expect(err).To(BeNil())

			job, err := srv.GetReportJob(context.TODO(), created.ID, user)
			Expect(err).To(BeNil())
			Expect(job.ID).To(Equal(created.ID))
		})

		It("hides other owners' jobs", func() {
			created, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			}, user)
			Expect(err).To(BeNil())

			_, err = srv.GetReportJob(context.TODO(), created.ID, auth.User{OwnerID: uuid.New()})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("reports a missing job", func() {
			_, err := srv.GetReportJob(context.TODO(), uuid.New(), user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("download", func() {
		makeCompleted := func(owner uuid.UUID, reportPath string, clinicID, voicebotID *uuid.UUID) *model.ReportJob {
			now := time.Now()
			job := model.ReportJob{
				ID:         uuid.New(),
				OwnerID:    owner,
				Status:     model.JobStatusCompleted,
				Format:     model.ReportFormatCSV,
				ClinicID:   clinicID,
				VoicebotID: voicebotID,
				StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
				ReportPath: &reportPath,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			Expect(gormdb.Create(&job).Error).To(BeNil())
			return &job
		}

		It("resolves the download and derives the filename", func() {
			clinic := model.Clinic{ID: uuid.New(), Name: "Riverside Medical Center", Address: "312 Harbor Street"}
			Expect(gormdb.Create(&clinic).Error).To(BeNil())
			voicebot := model.Voicebot{ID: uuid.New(), Name: "Clara Voicebot"}
			Expect(gormdb.Create(&voicebot).Error).To(BeNil())

			reportPath := filepath.Join(GinkgoT().TempDir(), "report.csv")
			Expect(os.WriteFile(reportPath, []byte("data"), 0o644)).To(BeNil())

			job := makeCompleted(user.OwnerID, reportPath, &clinic.ID, &voicebot.ID)

			download, err := srv.GetReportDownload(context.TODO(), job.ID, user)
			Expect(err).To(BeNil())
			Expect(download.Path).To(Equal(reportPath))
			Expect(download.Filename).To(Equal(
				"report_2025-01-01_to_2025-01-31_voicebot-clara-voicebot_clinic-riverside-medical-center.csv"))
		})

		It("falls back to the all-* filename parts without filters", func() {
			reportPath := filepath.Join(GinkgoT().TempDir(), "report.csv")
			Expect(os.WriteFile(reportPath, []byte("data"), 0o644)).To(BeNil())

			job := makeCompleted(user.OwnerID, reportPath, nil, nil)

			download, err := srv.GetReportDownload(context.TODO(), job.ID, user)
			Expect(err).To(BeNil())
			Expect(download.Filename).To(Equal(
				"report_2025-01-01_to_2025-01-31_all-voicebots_all-clinics.csv"))
		})

		It("keeps the filter visible when the reference row is gone", func() {
			reportPath := filepath.Join(GinkgoT().TempDir(), "report.csv")
			Expect(os.WriteFile(reportPath, []byte("data"), 0o644)).To(BeNil())

			clinicID := uuid.New()
			job := makeCompleted(user.OwnerID, reportPath, &clinicID, nil)

			download, err := srv.GetReportDownload(context.TODO(), job.ID, user)
			Expect(err).To(BeNil())
			Expect(download.Filename).To(Equal(fmt.Sprintf(
				"report_2025-01-01_to_2025-01-31_all-voicebots_clinic-%s.csv", clinicID)))
		})

		It("rejects a job that is not completed", func() {
			created, err := srv.CreateReportJob(context.TODO(), api.CreateReportJobRequest{
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			}, user)
			Expect(err).To(BeNil())

			_, err = srv.GetReportDownload(context.TODO(), created.ID, user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrReportNotReady{}))
		})

		It("reports a vanished report file", func() {
			job := makeCompleted(user.OwnerID, filepath.Join(GinkgoT().TempDir(), "gone.csv"), nil, nil)

			_, err := srv.GetReportDownload(context.TODO(), job.ID, user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrReportFileMissing{}))
		})

		It("hides other owners' downloads", func() {
			reportPath := filepath.Join(GinkgoT().TempDir(), "report.csv")
			Expect(os.WriteFile(reportPath, []byte("data"), 0o644)).To(BeNil())

			job := makeCompleted(uuid.New(), reportPath, nil, nil)

			_, err := srv.GetReportDownload(context.TODO(), job.ID, user)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})
