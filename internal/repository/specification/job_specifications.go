package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobsByProduct filters processing jobs by owning product
type JobsByProduct struct {
	ProductID uuid.UUID
}

func (s JobsByProduct) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id = ?", s.ProductID)
}

// JobsByStage filters by pipeline stage
type JobsByStage struct {
	Stage string
}

func (s JobsByStage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stage = ?", s.Stage)
}

// JobsByStatus filters by job status
type JobsByStatus struct {
	Status string
}

func (s JobsByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
