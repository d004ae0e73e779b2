package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/config"
	"github.com/voicemed/report-service/internal/service"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("appointment service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.AppointmentService
	)

	makeAppointment := func(clinicID, voicebotID uuid.UUID, patient string, createdAt time.Time) model.Appointment {
		appointment := model.Appointment{
			ID:             uuid.New(),
			PatientName:    patient,
			PatientAge:     58,
			PatientContact: "+1-555-0133",
			VisitReason:    "Follow-up",
			VisitDoctor:    "Dr. Okafor",
			VisitStart:     createdAt.Add(time.Hour),
			VisitEnd:       createdAt.Add(90 * time.Minute),
			ClinicID:       clinicID,
			VoicebotID:     voicebotID,
			CreatedAt:      createdAt,
		}
		Expect(gormdb.Create(&appointment).Error).To(BeNil())
		return appointment
	}

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		srv = service.NewAppointmentService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM appointments;")
		gormdb.Exec("DELETE FROM clinics;")
		gormdb.Exec("DELETE FROM voicebots;")
	})

	It("lists appointments newest first with resolved references", func() {
		clinic := model.Clinic{ID: uuid.New(), Name: "Lakeside Clinic", Address: "9 Shore Road"}
		Expect(gormdb.Create(&clinic).Error).To(BeNil())
		voicebot := model.Voicebot{ID: uuid.New(), Name: "Iris Voicebot"}
		Expect(gormdb.Create(&voicebot).Error).To(BeNil())

		base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		older := makeAppointment(clinic.ID, voicebot.ID, "Ana Voss", base)
		newer := makeAppointment(clinic.ID, voicebot.ID, "Ben Holt", base.Add(time.Hour))

		appointments, err := srv.ListAppointments(context.TODO())
		Expect(err).To(BeNil())
		Expect(appointments).To(HaveLen(2))

		Expect(appointments[0].ID).To(Equal(newer.ID))
		Expect(appointments[0].Patient.Name).To(Equal("Ben Holt"))
		Expect(appointments[0].Clinic.Name).To(Equal("Lakeside Clinic"))
		Expect(appointments[0].Clinic.Address).To(Equal("9 Shore Road"))
		Expect(appointments[0].Voicebot.Name).To(Equal("Iris Voicebot"))
		Expect(appointments[1].ID).To(Equal(older.ID))
	})

	It("skips rows whose clinic or voicebot is gone", func() {
		clinic := model.Clinic{ID: uuid.New(), Name: "Lakeside Clinic", Address: "9 Shore Road"}
		Expect(gormdb.Create(&clinic).Error).To(BeNil())
		voicebot := model.Voicebot{ID: uuid.New(), Name: "Iris Voicebot"}
		Expect(gormdb.Create(&voicebot).Error).To(BeNil())

		now := time.Now().UTC()
		kept := makeAppointment(clinic.ID, voicebot.ID, "Ana Voss", now)
		makeAppointment(uuid.New(), voicebot.ID, "No Clinic", now)
		makeAppointment(clinic.ID, uuid.New(), "No Voicebot", now)

		appointments, err := srv.ListAppointments(context.TODO())
		Expect(err).To(BeNil())
		Expect(appointments).To(HaveLen(1))
		Expect(appointments[0].ID).To(Equal(kept.ID))
	})

	It("returns an empty list without appointments", func() {
		appointments, err := srv.ListAppointments(context.TODO())
		Expect(err).To(BeNil())
		Expect(appointments).To(BeEmpty())
	})
})
