package mapper

import (
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/model"
)

type JobMapper struct{}

func NewJobMapper() *JobMapper {
	return &JobMapper{}
}

func (m *JobMapper) ToEntity(j *model.ProcessingJob) *entity.ProcessingJob {
	if j == nil {
		return nil
	}

	var updatedAt *time.Time
	if !j.UpdatedAt.IsZero() {
		t := j.UpdatedAt
		updatedAt = &t
	}

	return &entity.ProcessingJob{
		Id:           j.Id,
		ProductId:    j.ProductId,
		Stage:        j.Stage,
		Status:       j.Status,
		Attempts:     j.Attempts,
		MaxAttempts:  j.MaxAttempts,
		ScheduledFor: j.ScheduledFor,
		Error:        j.Error,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *JobMapper) ToModel(j *entity.ProcessingJob) *model.ProcessingJob {
	if j == nil {
		return nil
	}

	var updatedAt time.Time
	if j.UpdatedAt != nil {
		updatedAt = *j.UpdatedAt
	}

	return &model.ProcessingJob{
		Id:           j.Id,
		ProductId:    j.ProductId,
		Stage:        j.Stage,
		Status:       j.Status,
		Attempts:     j.Attempts,
		MaxAttempts:  j.MaxAttempts,
		ScheduledFor: j.ScheduledFor,
		Error:        j.Error,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *JobMapper) ToEntities(jobs []*model.ProcessingJob) []*entity.ProcessingJob {
	entities := make([]*entity.ProcessingJob, len(jobs))
	for i, j := range jobs {
		entities[i] = m.ToEntity(j)
	}
	return entities
}
