package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByCreatedTime
	SortByNewestFirst
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type ReportJobQueryFilter BaseQuerier

func NewReportJobQueryFilter() *ReportJobQueryFilter {
	return &ReportJobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *ReportJobQueryFilter) ByOwnerID(ownerID uuid.UUID) *ReportJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("owner_id = ?", ownerID)
	})
	return qf
}

func (qf *ReportJobQueryFilter) ByStatus(status string) *ReportJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *ReportJobQueryFilter) ByUpdatedBefore(t time.Time) *ReportJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("updated_at < ?", t)
	})
	return qf
}

type ReportJobQueryOptions BaseQuerier

func NewReportJobQueryOptions() *ReportJobQueryOptions {
	return &ReportJobQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *ReportJobQueryOptions) WithSortOrder(sort SortOrder) *ReportJobQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByCreatedTime:
			return tx.Order("created_at")
		case SortByNewestFirst:
			return tx.Order("created_at DESC")
		default:
			return tx
		}
	})
	return o
}

type AppointmentQueryFilter BaseQuerier

func NewAppointmentQueryFilter() *AppointmentQueryFilter {
	return &AppointmentQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// ByCreatedBetween restricts to rows whose creation time falls in [start, end],
// both bounds inclusive.
func (qf *AppointmentQueryFilter) ByCreatedBetween(start, end time.Time) *AppointmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ? AND created_at <= ?", start, end)
	})
	return qf
}

func (qf *AppointmentQueryFilter) ByClinicID(clinicID uuid.UUID) *AppointmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("clinic_id = ?", clinicID)
	})
	return qf
}

func (qf *AppointmentQueryFilter) ByVoicebotID(voicebotID uuid.UUID) *AppointmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("voicebot_id = ?", voicebotID)
	})
	return qf
}
