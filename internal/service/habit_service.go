// internal/service/habit_service.go
package service

import (
	"context"
	"errors"
	"sync"

	"go_habit_keep/internal/clock"
	"go_habit_keep/internal/config"
	"go_habit_keep/internal/middleware"
	"go_habit_keep/internal/model"
	"go_habit_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 新規習慣のデフォルト表示設定 (クライアントが省略した場合)
const (
	defaultHabitIcon  = "✅"
	defaultHabitColor = "#3B82F6"
)

// HabitService は習慣レジストリの操作を提供します。
// すべての変更系操作は全再計算込みで完了してから戻ります (遅延再計算はしない)。
type HabitService interface {
	CreateHabit(ctx context.Context, req *model.CreateHabitRequest) (*model.Habit, error)
	GetHabit(ctx context.Context, habitID uuid.UUID) (*model.HabitDetailResponse, error)
	ListHabits(ctx context.Context, filter model.HabitFilter) ([]*model.Habit, error)
	UpdateHabit(ctx context.Context, habitID uuid.UUID, req *model.UpdateHabitRequest) (*model.Habit, error)
	DeleteHabit(ctx context.Context, habitID uuid.UUID) error
	RecordEntry(ctx context.Context, habitID uuid.UUID, value float64) (*model.Habit, error)
}

type habitService struct {
	db          *gorm.DB // トランザクション用にDB接続を持つ
	habitRepo   repository.HabitRepository
	entryRepo   repository.EntryRepository
	accountRepo repository.AccountRepository
	clk         clock.Clock
	cfg         *config.Config

	// 変更系操作はストリークと集計のread-modify-writeを含むため直列化する
	mu sync.Mutex
}

func NewHabitService(db *gorm.DB, habitRepo repository.HabitRepository, entryRepo repository.EntryRepository, accountRepo repository.AccountRepository, clk clock.Clock, cfg *config.Config) HabitService {
	return &habitService{
		db:          db,
		habitRepo:   habitRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		clk:         clk,
		cfg:         cfg,
	}
}

func (s *habitService) CreateHabit(ctx context.Context, req *model.CreateHabitRequest) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx)

	// ハンドラでもバリデーションするが、サービス単体でも成立させる
	if req.Name == "" || req.Unit == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "名前と単位は必須項目です。", "", model.ErrInvalidInput)
	}
	if req.Goal <= 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "目標値は0より大きい値を指定してください。", "goal", model.ErrInvalidInput)
	}
	if !req.Category.IsValid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "カテゴリに指定できない値が含まれています。", "category", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var createdHabit *model.Habit

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := s.habitRepo.NextPosition(ctx, tx)
		if err != nil {
			logger.Error("Error assigning habit position in transaction", "error", err)
			return model.ErrInternalServer
		}

		icon := req.Icon
		if icon == "" {
			icon = defaultHabitIcon
		}
		color := req.Color
		if color == "" {
			color = defaultHabitColor
		}

		habit := &model.Habit{
			HabitID:  uuid.New(),
			Name:     req.Name,
			Icon:     icon,
			Goal:     req.Goal,
			Unit:     req.Unit,
			Category: req.Category,
			Color:    color,
			Position: position,
			Entries:  []model.Entry{},
		}
		if err := s.habitRepo.Create(ctx, tx, habit); err != nil {
			logger.Error("Error creating habit in transaction", "error", err)
			return model.ErrInternalServer
		}

		createdHabit = habit
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Habit created", "habit_id", createdHabit.HabitID, "name", createdHabit.Name)
	return createdHabit, nil
}

func (s *habitService) GetHabit(ctx context.Context, habitID uuid.UUID) (*model.HabitDetailResponse, error) {
	habit, err := s.habitRepo.FindByID(ctx, s.db, habitID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding habit", "habit_id", habitID, "error", err)
		return nil, model.ErrInternalServer
	}

	// 当日entryが無い場合はゼロ値のプレースホルダを返す (詳細ビューの初期表示用)
	today := clock.Day(s.clk.Now())
	todayEntry := model.Entry{HabitID: habit.HabitID, Date: today}
	if entry := findEntryOn(habit.Entries, today); entry != nil {
		todayEntry = *entry
	}

	return &model.HabitDetailResponse{
		Habit:      habit,
		Step:       habit.Step(),
		TodayEntry: todayEntry,
	}, nil
}

func (s *habitService) ListHabits(ctx context.Context, filter model.HabitFilter) ([]*model.Habit, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "カテゴリに指定できない値が含まれています。", "category", model.ErrInvalidInput)
	}

	habits, err := s.habitRepo.List(ctx, s.db, filter)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing habits", "error", err)
		return nil, model.ErrInternalServer
	}
	return habits, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, habitID uuid.UUID, req *model.UpdateHabitRequest) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx).With("habit_id", habitID)

	s.mu.Lock()
	defer s.mu.Unlock()

	var updatedHabit *model.Habit

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		habit, err := s.habitRepo.FindByID(ctx, tx, habitID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrNotFound
			}
			logger.Error("Error finding habit in transaction", "error", err)
			return model.ErrInternalServer
		}

		// 表示・目標フィールドだけを更新する。
		// goalを変えても過去entryのcompletedは再計算しない (記録時点の目標を反映したまま)。
		// 新しいgoalは次のRecordEntryから効く。
		if req.Name != nil {
			habit.Name = *req.Name
		}
		if req.Icon != nil {
			habit.Icon = *req.Icon
		}
		if req.Goal != nil {
			if *req.Goal <= 0 {
				return model.NewAppError("VALIDATION_ERROR", "目標値は0より大きい値を指定してください。", "goal", model.ErrInvalidInput)
			}
			habit.Goal = *req.Goal
		}
		if req.Unit != nil {
			habit.Unit = *req.Unit
		}
		if req.Category != nil {
			if !req.Category.IsValid() {
				return model.NewAppError("VALIDATION_ERROR", "カテゴリに指定できない値が含まれています。", "category", model.ErrInvalidInput)
			}
			habit.Category = *req.Category
		}
		if req.Color != nil {
			habit.Color = *req.Color
		}

		if err := s.habitRepo.Update(ctx, tx, habit); err != nil {
			logger.Error("Error updating habit in transaction", "error", err)
			return model.ErrInternalServer
		}

		updatedHabit = habit
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Habit updated")
	return updatedHabit, nil
}

func (s *habitService) DeleteHabit(ctx context.Context, habitID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("habit_id", habitID)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// EntryログはHabitに追従して消す
		if err := s.entryRepo.DeleteByHabit(ctx, tx, habitID); err != nil {
			logger.Error("Error deleting entries in transaction", "error", err)
			return model.ErrInternalServer
		}
		if err := s.habitRepo.Delete(ctx, tx, habitID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrNotFound
			}
			logger.Error("Error deleting habit in transaction", "error", err)
			return model.ErrInternalServer
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Habit deleted")
	return nil
}

// RecordEntry は当日の記録を登録または上書きし、同一トランザクション内で
// 習慣とアカウントのストリークを同期的に再計算します。
func (s *habitService) RecordEntry(ctx context.Context, habitID uuid.UUID, value float64) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx).With("habit_id", habitID)

	if value < 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "記録値は0以上の値を指定してください。", "value", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var resultHabit *model.Habit

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		habit, err := s.habitRepo.FindByID(ctx, tx, habitID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrNotFound
			}
			logger.Error("Error finding habit in transaction", "error", err)
			return model.ErrInternalServer
		}

		now := s.clk.Now()
		today := clock.Day(now)

		// 防御的チェック: 同じ暦日に複数entryが存在したらupsertロジックのバグ。
		// どれか1件を黙って選んだりはしない。
		count, err := s.entryRepo.CountByHabitAndDate(ctx, tx, habitID, today)
		if err != nil {
			logger.Error("Error counting entries in transaction", "error", err)
			return model.ErrInternalServer
		}
		if count > 1 {
			logger.Error("Multiple entries found for the same calendar day", "date", today, "count", count)
			return model.NewAppError("INVARIANT_VIOLATION", "同一日のentryが複数存在します。", "", model.ErrInvariant)
		}

		existing, err := s.entryRepo.FindByHabitAndDate(ctx, tx, habitID, today)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding today's entry in transaction", "error", err)
			return model.ErrInternalServer
		}

		// 達成イベントのカウントは変更前のcompletedと比較して判定する。
		// 同じ達成済みの日を再送信しても二重カウントしない
		wasCompleted := existing != nil && existing.Completed
		completed := value >= habit.Goal

		if existing != nil {
			existing.Value = value
			existing.Completed = completed
			if err := s.entryRepo.Update(ctx, tx, existing); err != nil {
				logger.Error("Error updating today's entry in transaction", "error", err)
				return model.ErrInternalServer
			}
		} else {
			entry := &model.Entry{
				EntryID:   uuid.New(),
				HabitID:   habitID,
				Date:      today,
				Value:     value,
				Completed: completed,
			}
			if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
				logger.Error("Error creating today's entry in transaction", "error", err)
				return model.ErrInternalServer
			}
		}

		// --- 習慣ストリークの同期再計算 ---
		updated, err := s.habitRepo.FindByID(ctx, tx, habitID)
		if err != nil {
			logger.Error("Error reloading habit in transaction", "error", err)
			return model.ErrInternalServer
		}
		updated.CurrentStreak = calculateCurrentStreak(updated.Entries, now, s.cfg.App.LookbackDays)
		if updated.CurrentStreak > updated.LongestStreak {
			updated.LongestStreak = updated.CurrentStreak
		}
		if err := s.habitRepo.Update(ctx, tx, updated); err != nil {
			logger.Error("Error saving habit streaks in transaction", "error", err)
			return model.ErrInternalServer
		}

		// --- アカウント集計の同期再計算 ---
		habits, err := s.habitRepo.List(ctx, tx, model.HabitFilter{})
		if err != nil {
			logger.Error("Error listing habits for account streak in transaction", "error", err)
			return model.ErrInternalServer
		}
		account, err := s.accountRepo.Find(ctx, tx)
		if err != nil {
			logger.Error("Error finding account in transaction", "error", err)
			return model.ErrInternalServer
		}

		account.CurrentStreak = calculateAccountStreak(habits, now, s.cfg.App.LookbackDays)
		if account.CurrentStreak > account.LongestStreak {
			account.LongestStreak = account.CurrentStreak
		}
		if completed && !wasCompleted {
			account.TotalHabitsCompleted++
		}
		if err := s.accountRepo.Update(ctx, tx, account); err != nil {
			logger.Error("Error saving account in transaction", "error", err)
			return model.ErrInternalServer
		}

		resultHabit = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Entry recorded", "value", value, "current_streak", resultHabit.CurrentStreak)
	return resultHabit, nil
}
