package handler

import (
	"net/http"

	"github.com/playventures/bizlab/internal/ledger"
	"github.com/playventures/bizlab/internal/logger"
)

// RegisterUserRequest represents the request to register a new player
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludesall= "`
}

// HandleRegisterUser handles player registration
// @Summary Register a new player
// @Description Creates a player record with a unique username
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "Registration request"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/user/register [post]
func HandleRegisterUser(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		user, err := ledgerSvc.RegisterUser(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		logger.FromContext(r.Context()).Info("User registered", "user_id", user.ID, "username", user.Username)
		respondJSON(w, http.StatusCreated, user)
	}
}

// HandleGetUser returns a player's current record
// @Summary Get a player
// @Description Returns the player's profile: XP, level, coin balance and portfolio
// @Tags user
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/user [get]
func HandleGetUser(ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		user, err := ledgerSvc.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get user", err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
