package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/store/model"
	"gorm.io/gorm/clause"
)

const seededAppointments = 500

var seedClinics = model.ClinicList{
	{ID: uuid.MustParse("6f1c24d5-30ac-4dbb-8c41-9f11aaec0001"), Name: "Riverside Medical Center", Address: "312 Harbor Street"},
	{ID: uuid.MustParse("6f1c24d5-30ac-4dbb-8c41-9f11aaec0002"), Name: "Lakeview Family Clinic", Address: "88 Aspen Avenue"},
	{ID: uuid.MustParse("6f1c24d5-30ac-4dbb-8c41-9f11aaec0003"), Name: "Northgate Health", Address: "14 Birchwood Lane"},
}

var seedVoicebots = model.VoicebotList{
	{ID: uuid.MustParse("2a9e41cf-77bd-4f2b-a6dd-3be02cf10001"), Name: "Clara Voicebot"},
	{ID: uuid.MustParse("2a9e41cf-77bd-4f2b-a6dd-3be02cf10002"), Name: "Otto Voicebot"},
	{ID: uuid.MustParse("2a9e41cf-77bd-4f2b-a6dd-3be02cf10003"), Name: "Nora Voicebot"},
}

var seedPatients = []string{
	"James Carter", "Maria Lopez", "Chen Wei", "Fatima Haddad",
	"Oliver Novak", "Amara Okafor", "Lucas Meyer", "Sofia Rossi",
}

var seedReasons = []string{
	"Annual checkup", "Follow-up visit", "Vaccination",
	"Blood test", "Consultation", "Dermatology screening",
}

var seedDoctors = []string{
	"Dr. Bennett", "Dr. Iqbal", "Dr. Kowalski", "Dr. Sato",
}

// Seed upserts the reference collections and, when the appointments table is
// empty, generates a year of sample appointment records.
func (s *DataStore) Seed() error {
	tx, err := newTransaction(s.db)
	if err != nil {
		return err
	}

	onIDConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}

	if err := tx.tx.Clauses(onIDConflict).Create(&seedClinics).Error; err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.tx.Clauses(onIDConflict).Create(&seedVoicebots).Error; err != nil {
		_ = tx.Rollback()
		return err
	}

	var count int64
	if err := tx.tx.Model(&model.Appointment{}).Count(&count).Error; err != nil {
		_ = tx.Rollback()
		return err
	}
	if count == 0 {
		appointments := generateAppointments(seededAppointments)
		if err := tx.tx.CreateInBatches(&appointments, 100).Error; err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func generateAppointments(n int) model.AppointmentList {
	rnd := rand.New(rand.NewSource(42))
	now := time.Now().UTC().Truncate(time.Hour)

	appointments := make(model.AppointmentList, 0, n)
	for i := 0; i < n; i++ {
		start := now.Add(-time.Duration(rnd.Intn(365*24)) * time.Hour)
		patient := seedPatients[rnd.Intn(len(seedPatients))]

		appointments = append(appointments, model.Appointment{
			ID:             uuid.New(),
			PatientName:    patient,
			PatientAge:     18 + rnd.Intn(70),
			PatientContact: fmt.Sprintf("+1-555-%04d", rnd.Intn(10000)),
			VisitReason:    seedReasons[rnd.Intn(len(seedReasons))],
			VisitDoctor:    seedDoctors[rnd.Intn(len(seedDoctors))],
			VisitStart:     start,
			VisitEnd:       start.Add(time.Duration(10+rnd.Intn(15)) * time.Minute),
			ClinicID:       seedClinics[rnd.Intn(len(seedClinics))].ID,
			VoicebotID:     seedVoicebots[rnd.Intn(len(seedVoicebots))].ID,
			CreatedAt:      start.Add(-time.Duration(1+rnd.Intn(100)) * time.Minute),
		})
	}
	return appointments
}
