package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podstore/backend/internal/domain/order"
)

// GormCatalogProductRepository implements CatalogProductRepository using GORM
type GormCatalogProductRepository struct {
	db *gorm.DB
}

// NewGormCatalogProductRepository creates a new GormCatalogProductRepository
func NewGormCatalogProductRepository(db *gorm.DB) *GormCatalogProductRepository {
	return &GormCatalogProductRepository{db: db}
}

// Upsert inserts or replaces the synced product keyed by provider product ID
func (r *GormCatalogProductRepository) Upsert(ctx context.Context, product *order.CatalogProduct) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "base_price", "variants", "synced_at", "updated_at",
			}),
		}).
		Create(product).Error
}

// FindByProviderProductID finds a synced product by the provider's product ID
func (r *GormCatalogProductRepository) FindByProviderProductID(ctx context.Context, providerProductID int64) (*order.CatalogProduct, error) {
	var product order.CatalogProduct
	if err := r.db.WithContext(ctx).
		Where("provider_product_id = ?", providerProductID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrCatalogProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll returns every synced catalog product
func (r *GormCatalogProductRepository) FindAll(ctx context.Context) ([]order.CatalogProduct, error) {
	var products []order.CatalogProduct
	if err := r.db.WithContext(ctx).
		Order("provider_product_id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

var _ order.CatalogProductRepository = (*GormCatalogProductRepository)(nil)
