package implementation

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) UpsertByName(ctx context.Context, name string) (*entity.Category, error) {
	var m model.Category
	err := r.db.WithContext(ctx).
		Where(model.Category{Name: name}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}

	return &entity.Category{
		Id:        m.Id,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *CategoryRepositoryImpl) LinkProduct(ctx context.Context, productId, categoryId uuid.UUID) error {
	link := model.ProductCategory{
		ProductId:  productId,
		CategoryId: categoryId,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *CategoryRepositoryImpl) FindByProduct(ctx context.Context, productId uuid.UUID) ([]*entity.Category, error) {
	var models []*model.Category
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Joins("JOIN product_categories pc ON pc.category_id = categories.id").
		Where("pc.product_id = ?", productId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(models))
	for i, m := range models {
		categories[i] = &entity.Category{
			Id:        m.Id,
			Name:      m.Name,
			CreatedAt: m.CreatedAt,
		}
	}
	return categories, nil
}
