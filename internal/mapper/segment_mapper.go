package mapper

import (
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/model"

	"gorm.io/datatypes"
)

type SegmentMapper struct{}

func NewSegmentMapper() *SegmentMapper {
	return &SegmentMapper{}
}

func (m *SegmentMapper) ToEntity(s *model.Segment) *entity.Segment {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Segment{
		Id:         s.Id,
		Name:       s.Name,
		AgeRange:   s.AgeRange,
		Gender:     s.Gender,
		Categories: []string(s.Categories),
		Keywords:   []string(s.Keywords),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *SegmentMapper) ToModel(s *entity.Segment) *model.Segment {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Segment{
		Id:         s.Id,
		Name:       s.Name,
		AgeRange:   s.AgeRange,
		Gender:     s.Gender,
		Categories: datatypes.NewJSONSlice(s.Categories),
		Keywords:   datatypes.NewJSONSlice(s.Keywords),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *SegmentMapper) ToEntities(segments []*model.Segment) []*entity.Segment {
	entities := make([]*entity.Segment, len(segments))
	for i, s := range segments {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SegmentMapper) AssignmentToEntity(a *model.ProductSegment) *entity.ProductSegment {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.ProductSegment{
		Id:         a.Id,
		ProductId:  a.ProductId,
		SegmentId:  a.SegmentId,
		Confidence: a.Confidence,
		Reasoning:  a.Reasoning,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}
