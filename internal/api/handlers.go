package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

type insufficientPointsResponse struct {
	Error             string `json:"error"`
	Required          int    `json:"required"`
	ConfirmedPoints   int    `json:"confirmedPoints"`
	UnconfirmedPoints int    `json:"unconfirmedPoints"`
	Message           string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps domain errors onto HTTP statuses. Unexpected
// errors are logged and reported as opaque 500s.
func respondServiceError(w http.ResponseWriter, err error) {
	var insufficient *store.InsufficientPointsError
	switch {
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusBadRequest, insufficientPointsResponse{
			Error:             "insufficient confirmed points",
			Required:          insufficient.Required,
			ConfirmedPoints:   insufficient.Confirmed,
			UnconfirmedPoints: insufficient.Unconfirmed,
			Message:           "Unconfirmed points become spendable once their confirmation period ends",
		})
	case errors.Is(err, store.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, store.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, store.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "shop item not found")
	case errors.Is(err, store.ErrItemUnavailable):
		respondError(w, http.StatusBadRequest, "shop item not available")
	case errors.Is(err, store.ErrAlreadyPurchased):
		respondError(w, http.StatusConflict, "shop item already purchased")
	default:
		zap.L().Error("Request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *RewardsService) handleScan(w http.ResponseWriter, r *http.Request) {
	var req models.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Barcode == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "barcode and email are required")
		return
	}

	result, err := s.ProcessScan(r.Context(), req.Barcode, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *RewardsService) handleGetRewards(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	overview, err := s.GetRewards(r.Context(), email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *RewardsService) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req models.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.ItemId == "" {
		respondError(w, http.StatusBadRequest, "email and itemId are required")
		return
	}

	result, err := s.Redeem(r.Context(), req.Email, req.ItemId)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *RewardsService) handleMonthlyCheck(w http.ResponseWriter, r *http.Request) {
	var req models.MonthlyCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	result, err := s.MonthlyCheck(r.Context(), req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *RewardsService) handleMonthlyStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	status, err := s.GetMonthlyStatus(r.Context(), email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (s *RewardsService) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Leaderboard(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

func (s *RewardsService) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
