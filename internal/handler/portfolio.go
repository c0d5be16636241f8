package handler

import (
	"net/http"
	"time"

	"github.com/playventures/bizlab/internal/ledger"
	"github.com/playventures/bizlab/internal/logger"
)

// HireManagerRequest is the request body for hiring a manager
type HireManagerRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	BusinessID string `json:"business_id" validate:"required,business_id"`
}

// CollectRequest is the request body for collecting from one business
type CollectRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	BusinessID string `json:"business_id" validate:"required,business_id"`
}

// CollectAllRequest is the request body for collecting the whole portfolio
type CollectAllRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HireManagerResponse is the response for a successful hire
type HireManagerResponse struct {
	Message string `json:"message"`
	Balance int    `json:"balance"`
	User    any    `json:"user"`
}

// HandleGetPortfolio returns the user's owned-business holdings
// @Summary Get portfolio
// @Description Lists the businesses the player has hired managers for
// @Tags portfolio
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.PortfolioItem
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/portfolio [get]
func HandleGetPortfolio(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		user, err := ledgerSvc.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get portfolio", err)
			return
		}

		respondJSON(w, http.StatusOK, user.Portfolio)
	}
}

// HandlePendingIncome returns uncollected idle income per holding
// @Summary Get pending idle income
// @Description Shows each holding's accrued-but-uncollected coins and cap progress
// @Tags portfolio
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} ledger.PendingItem
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/portfolio/pending [get]
func HandlePendingIncome(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		items, err := ledgerSvc.PendingIncome(r.Context(), userID, time.Now().UTC())
		if err != nil {
			respondServiceError(w, r, "Get pending income", err)
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}

// HandleHireManager hires a manager for a business
// @Summary Hire a manager
// @Description Spends coins to automate a business so it accrues idle income
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body HireManagerRequest true "Hire request"
// @Success 201 {object} HireManagerResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/portfolio/hire [post]
func HandleHireManager(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HireManagerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Hire manager"); err != nil {
			return
		}

		user, err := ledgerSvc.HireManager(r.Context(), req.UserID, req.BusinessID)
		if err != nil {
			respondServiceError(w, r, "Hire manager", err)
			return
		}

		logger.FromContext(r.Context()).Info("Manager hired",
			"user_id", req.UserID, "business_id", req.BusinessID, "balance", user.BizCoins)
		respondJSON(w, http.StatusCreated, HireManagerResponse{
			Message: MsgManagerHiredSuccess,
			Balance: user.BizCoins,
			User:    user,
		})
	}
}

// HandleCollect collects idle income from a single business
// @Summary Collect idle income
// @Description Credits the accrued coins for one holding and resets its accrual window
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body CollectRequest true "Collect request"
// @Success 200 {object} ledger.CollectResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/portfolio/collect [post]
func HandleCollect(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CollectRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Collect idle income"); err != nil {
			return
		}

		result, err := ledgerSvc.CollectIdleIncome(r.Context(), req.UserID, req.BusinessID, time.Now().UTC())
		if err != nil {
			respondServiceError(w, r, "Collect idle income", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCollectAll collects idle income across the whole portfolio
// @Summary Collect all idle income
// @Description Credits accrued coins for every holding in one operation
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body CollectAllRequest true "Collect-all request"
// @Success 200 {object} ledger.CollectResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/portfolio/collect-all [post]
func HandleCollectAll(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CollectAllRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Collect all idle income"); err != nil {
			return
		}

		result, err := ledgerSvc.CollectAllIdleIncome(r.Context(), req.UserID, time.Now().UTC())
		if err != nil {
			respondServiceError(w, r, "Collect all idle income", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
