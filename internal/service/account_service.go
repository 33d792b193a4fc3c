// internal/service/account_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_habit_keep/internal/clock"
	"go_habit_keep/internal/config"
	"go_habit_keep/internal/middleware"
	"go_habit_keep/internal/model"
	"go_habit_keep/internal/repository"

	"gorm.io/gorm"
)

// AccountService はアカウント集計行の参照と起動時シードを提供します。
// ストリーク系フィールドを書き換えるのはHabitServiceのRecordEntryだけです。
type AccountService interface {
	EnsureAccount(ctx context.Context) (*model.Account, error)
	GetSummary(ctx context.Context) (*model.Account, error)
}

type accountService struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
	clk         clock.Clock
	cfg         *config.Config
}

func NewAccountService(db *gorm.DB, accountRepo repository.AccountRepository, clk clock.Clock, cfg *config.Config) AccountService {
	return &accountService{
		db:          db,
		accountRepo: accountRepo,
		clk:         clk,
		cfg:         cfg,
	}
}

// EnsureAccount はアカウント行が無ければ設定値から作成します (起動時に1回呼ぶ)。
func (s *accountService) EnsureAccount(ctx context.Context) (*model.Account, error) {
	logger := middleware.GetLogger(ctx)

	account, err := s.accountRepo.Find(ctx, s.db)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Error finding account", "error", err)
		return nil, model.ErrInternalServer
	}

	joinDate := clock.Day(s.clk.Now())
	if s.cfg.App.AccountJoinDate != "" {
		if parsed, parseErr := time.Parse("2006-01-02", s.cfg.App.AccountJoinDate); parseErr == nil {
			joinDate = parsed
		} else {
			logger.Warn("Invalid account_join_date in config, using today", "value", s.cfg.App.AccountJoinDate)
		}
	}

	account = &model.Account{
		Name:     s.cfg.App.AccountName,
		JoinDate: joinDate,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.accountRepo.Create(ctx, tx, account)
	})
	if err != nil {
		logger.Error("Error creating account", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Account seeded", "name", account.Name)
	return account, nil
}

func (s *accountService) GetSummary(ctx context.Context) (*model.Account, error) {
	account, err := s.accountRepo.Find(ctx, s.db)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding account", "error", err)
		return nil, model.ErrInternalServer
	}
	return account, nil
}
