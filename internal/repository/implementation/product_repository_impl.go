package implementation

import (
	"context"
	"errors"
	"strings"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/mapper"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) SearchByKeywords(ctx context.Context, tokens []string, requireAll bool, limit int) ([]*entity.Product, error) {
	if len(tokens) == 0 {
		return []*entity.Product{}, nil
	}

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if requireAll {
		// Every token must match title, brand or description.
		for _, token := range tokens {
			pattern := "%" + strings.ToLower(token) + "%"
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
				pattern, pattern, pattern,
			)
		}
	} else {
		conditions := r.db.Session(&gorm.Session{NewDB: true})
		for _, token := range tokens {
			pattern := "%" + strings.ToLower(token) + "%"
			conditions = conditions.Or(
				"LOWER(title) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
				pattern, pattern, pattern,
			)
		}
		query = query.Where(conditions)
	}

	var models []*model.Product
	if err := query.Order("rating DESC, ratings_total DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) FindBySegmentProfile(ctx context.Context, ageRange, gender string, minConfidence float64, includeUnisex bool, limit int) ([]*entity.Product, error) {
	genders := []string{gender}
	if includeUnisex {
		genders = append(genders, "UNISEX")
	}

	var models []*model.Product
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Joins("JOIN product_segments ps ON ps.product_id = products.id").
		Joins("JOIN segments s ON s.id = ps.segment_id").
		Where("s.age_range = ? AND s.gender IN ? AND ps.confidence >= ?", ageRange, genders, minConfidence).
		Where("products.deleted_at IS NULL").
		Group("products.id").
		Order("MAX(ps.confidence) DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) FindPopular(ctx context.Context, minRating float64, minRatings, limit int) ([]*entity.Product, error) {
	var models []*model.Product
	err := r.db.WithContext(ctx).
		Where("rating >= ? AND ratings_total >= ?", minRating, minRatings).
		Order("rating DESC, ratings_total DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.Product, error) {
	var models []*model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
