package store

import (
	"context"

	"github.com/voicemed/report-service/internal/store/model"
	"gorm.io/gorm"
)

// Appointment is the record store queried by the export pipeline. Iterate
// streams matching rows through a cursor so exports stay flat in memory
// regardless of the result set size.
type Appointment interface {
	List(ctx context.Context, filter *AppointmentQueryFilter) (model.AppointmentList, error)
	Iterate(ctx context.Context, filter *AppointmentQueryFilter, fn func(model.Appointment) error) error
	InitialMigration() error
}

type AppointmentStore struct {
	db *gorm.DB
}

// Make sure we conform to Appointment interface
var _ Appointment = (*AppointmentStore)(nil)

func NewAppointment(db *gorm.DB) Appointment {
	return &AppointmentStore{db: db}
}

func (s *AppointmentStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Appointment{})
}

// List returns matching appointments newest first.
func (s *AppointmentStore) List(ctx context.Context, filter *AppointmentQueryFilter) (model.AppointmentList, error) {
	var appointments model.AppointmentList

	tx := s.query(ctx, filter).Order("created_at DESC")
	if result := tx.Find(&appointments); result.Error != nil {
		return nil, result.Error
	}
	return appointments, nil
}

func (s *AppointmentStore) Iterate(ctx context.Context, filter *AppointmentQueryFilter, fn func(model.Appointment) error) error {
	rows, err := s.query(ctx, filter).Order("created_at").Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var appointment model.Appointment
		if err := s.getDB(ctx).ScanRows(rows, &appointment); err != nil {
			return err
		}
		if err := fn(appointment); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *AppointmentStore) query(ctx context.Context, filter *AppointmentQueryFilter) *gorm.DB {
	tx := s.getDB(ctx).Model(&model.Appointment{})
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	return tx
}

func (s *AppointmentStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
