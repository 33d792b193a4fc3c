// internal/handlers/habit_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_habit_keep/internal/model"
	"go_habit_keep/internal/service"
	"go_habit_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type HabitHandler struct {
	service service.HabitService
	logger  *slog.Logger
}

func NewHabitHandler(s service.HabitService, logger *slog.Logger) *HabitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HabitHandler{
		service: s,
		logger:  logger,
	}
}

// validateStruct はリクエストDTOを検証し、最初のエラーを翻訳済みAppErrorにします
func validateStruct(req interface{}) *model.AppError {
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			return model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
		}
		return model.NewAppError("VALIDATION_ERROR", "リクエストの検証に失敗しました。", "", model.ErrInvalidInput)
	}
	return nil
}

// parseHabitID はURLパラメータのhabit_idを解析します
func parseHabitID(r *http.Request) (uuid.UUID, *model.AppError) {
	habitIDStr := chi.URLParam(r, "habit_id")
	habitID, err := uuid.Parse(habitIDStr)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", "habit_idの形式が正しくありません。", "habit_id", model.ErrInvalidInput)
	}
	return habitID, nil
}

// PostHabit は新しい習慣を作成するためのハンドラ
func (h *HabitHandler) PostHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostHabit"))

	var req model.CreateHabitRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	habit, err := h.service.CreateHabit(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating habit in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit created successfully", slog.String("habit_id", habit.HabitID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, habit, logger)
}

// GetHabits は習慣の一覧を取得するためのハンドラ。
// ?category= で完全一致、?q= で名前の部分一致フィルタ
func (h *HabitHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHabits"))

	filter := model.HabitFilter{
		Category: model.Category(r.URL.Query().Get("category")),
		Search:   r.URL.Query().Get("q"),
	}

	habits, err := h.service.ListHabits(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing habits in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if habits == nil {
		habits = []*model.Habit{}
	}
	logger.Info("Habits listed successfully", slog.Int("count", len(habits)))
	webutil.RespondWithJSON(w, http.StatusOK, habits, logger)
}

// GetHabit は特定の習慣の詳細を取得するためのハンドラ
func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHabit"))

	habitID, appErr := parseHabitID(r)
	if appErr != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("habit_id", habitID.String()))

	detail, err := h.service.GetHabit(r.Context(), habitID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Habit not found in service")
		} else {
			logger.Error("Error getting habit from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, detail, logger)
}

// PatchHabit は習慣の表示・目標フィールドを部分更新するためのハンドラ
func (h *HabitHandler) PatchHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchHabit"))

	habitID, appErr := parseHabitID(r)
	if appErr != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("habit_id", habitID.String()))

	var req model.UpdateHabitRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if req.Name == nil && req.Icon == nil && req.Goal == nil && req.Unit == nil && req.Category == nil && req.Color == nil {
		logger.Warn("PatchHabit called with no fields provided for update")
		appErr := model.NewAppError("VALIDATION_ERROR", "更新するフィールドが指定されていません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	habit, err := h.service.UpdateHabit(r.Context(), habitID, &req)
	if err != nil {
		logger.Error("Error updating habit in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, habit, logger)
}

// DeleteHabit は習慣を削除するためのハンドラ
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteHabit"))

	habitID, appErr := parseHabitID(r)
	if appErr != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("habit_id", habitID.String()))

	if err := h.service.DeleteHabit(r.Context(), habitID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Habit not found in service")
		} else {
			logger.Error("Error deleting habit in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// PutHabitLog は当日の記録値を登録・上書きするためのハンドラ
func (h *HabitHandler) PutHabitLog(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutHabitLog"))

	habitID, appErr := parseHabitID(r)
	if appErr != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("habit_id", habitID.String()))

	var req model.RecordEntryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	habit, err := h.service.RecordEntry(r.Context(), habitID, *req.Value)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Habit not found in service")
		} else {
			logger.Error("Error recording entry in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry recorded successfully", slog.Int("current_streak", habit.CurrentStreak))
	webutil.RespondWithJSON(w, http.StatusOK, habit, logger)
}
