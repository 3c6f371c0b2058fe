package implementation

import (
	"context"
	"errors"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/mapper"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"
	"shopchat-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SegmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SegmentMapper
}

func NewSegmentRepository(db *gorm.DB) contract.SegmentRepository {
	return &SegmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewSegmentMapper(),
	}
}

func (r *SegmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SegmentRepositoryImpl) Upsert(ctx context.Context, segment *entity.Segment) error {
	m := r.mapper.ToModel(segment)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}, {Name: "age_range"}, {Name: "gender"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"categories", "keywords", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// Re-read so the entity carries the canonical row (Id in particular,
	// which RETURNING does not populate on a conflicting insert everywhere).
	var persisted model.Segment
	err = r.db.WithContext(ctx).
		Where("name = ? AND age_range = ? AND gender = ?", m.Name, m.AgeRange, m.Gender).
		First(&persisted).Error
	if err != nil {
		return err
	}

	*segment = *r.mapper.ToEntity(&persisted)
	return nil
}

func (r *SegmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Segment, error) {
	var m model.Segment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SegmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Segment, error) {
	var models []*model.Segment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
