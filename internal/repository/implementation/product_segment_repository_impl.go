package implementation

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/mapper"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductSegmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SegmentMapper
}

func NewProductSegmentRepository(db *gorm.DB) contract.ProductSegmentRepository {
	return &ProductSegmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewSegmentMapper(),
	}
}

func (r *ProductSegmentRepositoryImpl) Upsert(ctx context.Context, assignment *entity.ProductSegment) error {
	m := &model.ProductSegment{
		Id:         assignment.Id,
		ProductId:  assignment.ProductId,
		SegmentId:  assignment.SegmentId,
		Confidence: assignment.Confidence,
		Reasoning:  assignment.Reasoning,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "segment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"confidence", "reasoning", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	*assignment = *r.mapper.AssignmentToEntity(m)
	return nil
}

func (r *ProductSegmentRepositoryImpl) FindByProduct(ctx context.Context, productId uuid.UUID) ([]*entity.ProductSegment, error) {
	var models []*model.ProductSegment
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productId).
		Order("confidence DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*entity.ProductSegment, len(models))
	for i, m := range models {
		assignments[i] = r.mapper.AssignmentToEntity(m)
	}
	return assignments, nil
}

func (r *ProductSegmentRepositoryImpl) TopSegmentNameByProduct(ctx context.Context, productIds []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(productIds) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	type row struct {
		ProductId  uuid.UUID
		Name       string
		Confidence float64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("product_segments ps").
		Select("ps.product_id, s.name, ps.confidence").
		Joins("JOIN segments s ON s.id = ps.segment_id").
		Where("ps.product_id IN ?", productIds).
		Order("ps.confidence DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Rows are confidence-descending, so first hit per product wins.
	result := make(map[uuid.UUID]string)
	for _, r := range rows {
		if _, seen := result[r.ProductId]; !seen {
			result[r.ProductId] = r.Name
		}
	}
	return result, nil
}
