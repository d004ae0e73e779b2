package store_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/config"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("reference stores", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM clinics;")
		gormdb.Exec("DELETE FROM voicebots;")
	})

	Context("clinics", func() {
		It("lists clinics ordered by name", func() {
			b := model.Clinic{ID: uuid.New(), Name: "Beta Clinic", Address: "2 Side Street"}
			a := model.Clinic{ID: uuid.New(), Name: "Alpha Clinic", Address: "1 Main Street"}
			Expect(gormdb.Create(&b).Error).To(BeNil())
			Expect(gormdb.Create(&a).Error).To(BeNil())

			clinics, err := s.Clinic().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(clinics).To(HaveLen(2))
			Expect(clinics[0].Name).To(Equal("Alpha Clinic"))
			Expect(clinics[1].Name).To(Equal("Beta Clinic"))
		})

		It("gets a clinic by id", func() {
			c := model.Clinic{ID: uuid.New(), Name: "Alpha Clinic", Address: "1 Main Street"}
			Expect(gormdb.Create(&c).Error).To(BeNil())

			clinic, err := s.Clinic().Get(context.TODO(), c.ID)
			Expect(err).To(BeNil())
			Expect(clinic.Name).To(Equal("Alpha Clinic"))
		})

		It("returns ErrRecordNotFound for a missing clinic", func() {
			_, err := s.Clinic().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})

	Context("voicebots", func() {
		It("lists voicebots ordered by name", func() {
			b := model.Voicebot{ID: uuid.New(), Name: "Otto Voicebot"}
			a := model.Voicebot{ID: uuid.New(), Name: "Clara Voicebot"}
			Expect(gormdb.Create(&b).Error).To(BeNil())
			Expect(gormdb.Create(&a).Error).To(BeNil())

			voicebots, err := s.Voicebot().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(voicebots).To(HaveLen(2))
			Expect(voicebots[0].Name).To(Equal("Clara Voicebot"))
		})

		It("returns ErrRecordNotFound for a missing voicebot", func() {
			_, err := s.Voicebot().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})
})
