// internal/handlers/analytics_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_habit_keep/internal/model"
	"go_habit_keep/internal/service"
	"go_habit_keep/internal/webutil"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  *slog.Logger
}

func NewAnalyticsHandler(s service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{
		service: s,
		logger:  logger,
	}
}

// GetAnalytics は全習慣の集計サマリを取得するためのハンドラ
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAnalytics"))

	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		logger.Error("Error getting analytics summary from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetInsights は提案テキスト一覧を取得するためのハンドラ
func (h *AnalyticsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetInsights"))

	insights, err := h.service.GetInsights(r.Context())
	if err != nil {
		logger.Error("Error getting insights from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, insights, logger)
}

// GetHabitStats は特定の習慣の週間チャートデータを取得するためのハンドラ
func (h *AnalyticsHandler) GetHabitStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHabitStats"))

	habitID, appErr := parseHabitID(r)
	if appErr != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("habit_id", habitID.String()))

	stats, err := h.service.GetHabitStats(r.Context(), habitID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Habit not found in service")
		} else {
			logger.Error("Error getting habit stats from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
