package store_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/config"
	st "github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := st.InitDB(cfg)
		Expect(err).To(BeNil())
		gormDB = db

		store = st.NewStore(db)
		Expect(store).ToNot(BeNil())
		Expect(store.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		store.Close()
	})

	Context("transaction", func() {
		It("insert a job successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			now := time.Now()
			job, err := store.ReportJob().Create(ctx, model.ReportJob{
				ID:        uuid.New(),
				OwnerID:   uuid.New(),
				Status:    model.JobStatusPending,
				Format:    model.ReportFormatCSV,
				StartDate: now.AddDate(0, -1, 0),
				EndDate:   now,
				CreatedAt: now,
				UpdatedAt: now,
			})
			Expect(job).ToNot(BeNil())
			Expect(err).To(BeNil())

			// commit
			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from report_jobs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rollback a job successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			now := time.Now()
			job, err := store.ReportJob().Create(ctx, model.ReportJob{
				ID:        uuid.New(),
				OwnerID:   uuid.New(),
				Status:    model.JobStatusPending,
				Format:    model.ReportFormatCSV,
				StartDate: now.AddDate(0, -1, 0),
				EndDate:   now,
				CreatedAt: now,
				UpdatedAt: now,
			})
			Expect(job).ToNot(BeNil())
			Expect(err).To(BeNil())

			// count in the same transaction
			jobs, err := store.ReportJob().List(ctx, st.NewReportJobQueryFilter(), st.NewReportJobQueryOptions())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))

			// rollback
			_, cerr := st.Rollback(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from report_jobs;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE FROM report_jobs;")
		})
	})

	Context("seed", func() {
		It("seeds the reference collections and appointments", func() {
			err := store.Seed()
			Expect(err).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from clinics;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(3))

			count = 0
			err = gormDB.Raw("SELECT COUNT(*) from voicebots;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(3))

			count = 0
			err = gormDB.Raw("SELECT COUNT(*) from appointments;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(500))
		})

		It("is idempotent", func() {
			Expect(store.Seed()).To(BeNil())
			Expect(store.Seed()).To(BeNil())

			count := 0
			err := gormDB.Raw("SELECT COUNT(*) from appointments;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(500))

			count = 0
			err = gormDB.Raw("SELECT COUNT(*) from clinics;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(3))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE FROM appointments;")
			gormDB.Exec("DELETE FROM clinics;")
			gormDB.Exec("DELETE FROM voicebots;")
		})
	})
})
