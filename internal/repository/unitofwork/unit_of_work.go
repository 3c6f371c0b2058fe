package unitofwork

import (
	"context"

	"shopchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	SegmentRepository() contract.SegmentRepository
	ProductSegmentRepository() contract.ProductSegmentRepository
	JobRepository() contract.JobRepository
	CategoryRepository() contract.CategoryRepository
}
