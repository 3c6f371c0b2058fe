package implementation

import (
	"context"
	"errors"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/mapper"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JobMapper
}

func NewJobRepository(db *gorm.DB) contract.JobRepository {
	return &JobRepositoryImpl{
		db:     db,
		mapper: mapper.NewJobMapper(),
	}
}

func (r *JobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *entity.ProcessingJob) error {
	m := r.mapper.ToModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ToEntity(m)
	return nil
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *entity.ProcessingJob) error {
	m := r.mapper.ToModel(job)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ToEntity(m)
	return nil
}

func (r *JobRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProcessingJob, error) {
	var m model.ProcessingJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *JobRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingJob, error) {
	var models []*model.ProcessingJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *JobRepositoryImpl) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.ProcessingJob, error) {
	var models []*model.ProcessingJob
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.JobStatusPending).
		Where("scheduled_for IS NULL OR scheduled_for <= ?", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *JobRepositoryImpl) ExistsForProductStage(ctx context.Context, productId uuid.UUID, stage string, statuses []string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProcessingJob{}).
		Where("product_id = ? AND stage = ? AND status IN ?", productId, stage, statuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *JobRepositoryImpl) StageStatusCounts(ctx context.Context) ([]contract.StageStatusCount, error) {
	var rows []contract.StageStatusCount
	err := r.db.WithContext(ctx).
		Model(&model.ProcessingJob{}).
		Select("stage, status, COUNT(*) as count").
		Group("stage").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
