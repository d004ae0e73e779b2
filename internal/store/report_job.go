package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voicemed/report-service/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportJob is the durable job table. Status transitions are persisted here;
// there is no transactional guarantee across a scan followed by an update, so
// callers use Claim to take ownership of a pending job atomically.
type ReportJob interface {
	Create(ctx context.Context, job model.ReportJob) (*model.ReportJob, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ReportJob, error)
	List(ctx context.Context, filter *ReportJobQueryFilter, opts *ReportJobQueryOptions) (model.ReportJobList, error)
	Claim(ctx context.Context, id uuid.UUID) (*model.ReportJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, reportPath *string) (*model.ReportJob, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InitialMigration() error
}

type ReportJobStore struct {
	db *gorm.DB
}

// Make sure we conform to ReportJob interface
var _ ReportJob = (*ReportJobStore)(nil)

func NewReportJob(db *gorm.DB) ReportJob {
	return &ReportJobStore{db: db}
}

func (s *ReportJobStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.ReportJob{})
}

func (s *ReportJobStore) Create(ctx context.Context, job model.ReportJob) (*model.ReportJob, error) {
	result := s.getDB(ctx).Create(&job)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &job, nil
}

func (s *ReportJobStore) Get(ctx context.Context, id uuid.UUID) (*model.ReportJob, error) {
	var job model.ReportJob
	result := s.getDB(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

func (s *ReportJobStore) List(ctx context.Context, filter *ReportJobQueryFilter, opts *ReportJobQueryOptions) (model.ReportJobList, error) {
	var jobs model.ReportJobList

	tx := s.getDB(ctx).Model(&model.ReportJob{})
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&jobs); result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

// Claim moves a job from pending to processing with a conditional update.
// The WHERE clause on the current status makes the transition atomic: when
// another worker already took the job the update matches no row and
// ErrJobClaimed is returned, which callers treat as "skip".
func (s *ReportJobStore) Claim(ctx context.Context, id uuid.UUID) (*model.ReportJob, error) {
	result := s.getDB(ctx).Model(&model.ReportJob{}).
		Where("id = ? AND status = ?", id, model.JobStatusPending).
		Updates(map[string]interface{}{
			"status":     model.JobStatusProcessing,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrJobClaimed
	}

	return s.Get(ctx, id)
}

func (s *ReportJobStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string, reportPath *string) (*model.ReportJob, error) {
	job := model.ReportJob{ID: id, Status: status, UpdatedAt: time.Now()}
	selectFields := []string{"status", "updated_at"}
	if reportPath != nil {
		job.ReportPath = reportPath
		selectFields = append(selectFields, "report_path")
	}

	result := s.getDB(ctx).Model(&job).Clauses(clause.Returning{}).Select(selectFields).Updates(&job)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return &job, nil
}

func (s *ReportJobStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Unscoped().Delete(&model.ReportJob{ID: id})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (s *ReportJobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
