// internal/handlers/account_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_habit_keep/internal/model"
	"go_habit_keep/internal/service"
	"go_habit_keep/internal/webutil"
)

type AccountHandler struct {
	service service.AccountService
	logger  *slog.Logger
}

func NewAccountHandler(s service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		service: s,
		logger:  logger,
	}
}

// GetAccount はアカウント集計を取得するためのハンドラ
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAccount"))

	account, err := h.service.GetSummary(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Account row missing")
		} else {
			logger.Error("Error getting account from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, account, logger)
}
