// internal/service/mocks/account_service.go
package mocks

import (
	"context"

	"go_habit_keep/internal/model"

	"github.com/stretchr/testify/mock"
)

// AccountService は service.AccountService のモック実装
type AccountService struct {
	mock.Mock
}

func (m *AccountService) EnsureAccount(ctx context.Context) (*model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountService) GetSummary(ctx context.Context) (*model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}
