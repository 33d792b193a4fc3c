// internal/repository/mocks/account_repository.go
package mocks

import (
	"context"

	"go_habit_keep/internal/model"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// AccountRepository は repository.AccountRepository のモック実装
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Find(ctx context.Context, db *gorm.DB) (*model.Account, error) {
	args := m.Called(ctx, db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepository) Create(ctx context.Context, tx *gorm.DB, account *model.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *AccountRepository) Update(ctx context.Context, tx *gorm.DB, account *model.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}
