// internal/repository/account_repository.go
package repository

import (
	"context"
	"errors"

	"go_habit_keep/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Find(ctx context.Context, db *gorm.DB) (*model.Account, error) // 1行しか存在しない
	Create(ctx context.Context, tx *gorm.DB, account *model.Account) error
	Update(ctx context.Context, tx *gorm.DB, account *model.Account) error
}

type gormAccountRepository struct {
}

func NewGormAccountRepository() AccountRepository {
	return &gormAccountRepository{}
}

func (r *gormAccountRepository) Find(ctx context.Context, db *gorm.DB) (*model.Account, error) {
	var account model.Account
	result := db.WithContext(ctx).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &account, nil
}

func (r *gormAccountRepository) Create(ctx context.Context, tx *gorm.DB, account *model.Account) error {
	result := tx.WithContext(ctx).Create(account)
	return result.Error
}

func (r *gormAccountRepository) Update(ctx context.Context, tx *gorm.DB, account *model.Account) error {
	result := tx.WithContext(ctx).Save(account)
	return result.Error
}
