package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/shared"
)

// GormAccountDirectory implements AccountDirectory against the shared
// accounts table owned by the user directory
type GormAccountDirectory struct {
	db *gorm.DB
}

// NewGormAccountDirectory creates a new GormAccountDirectory
func NewGormAccountDirectory(db *gorm.DB) *GormAccountDirectory {
	return &GormAccountDirectory{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountDirectory) FindByID(ctx context.Context, id int64) (*order.Account, error) {
	var account order.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

var _ order.AccountDirectory = (*GormAccountDirectory)(nil)
