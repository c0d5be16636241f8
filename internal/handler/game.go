package handler

import (
	"context"
	"net/http"

	"github.com/playventures/bizlab/internal/catalog"
	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game"
	"github.com/playventures/bizlab/internal/game/engine"
)

// GameRunner is the slice of the session manager the HTTP layer needs
type GameRunner interface {
	Start(ctx context.Context, userID, businessID string) (engine.View, error)
	Act(ctx context.Context, userID, businessID string, action engine.Action) (engine.View, error)
	State(ctx context.Context, userID, businessID string) (engine.View, error)
	Exit(ctx context.Context, userID, businessID string) (*game.ExitSummary, error)
}

// TutorialSource resolves a business to its template tutorial
type TutorialSource interface {
	Get(businessID string) (*domain.BusinessSimulation, error)
}

// GameHandler handles game session HTTP endpoints
type GameHandler struct {
	runner  GameRunner
	configs TutorialSource
}

// NewGameHandler creates a new game handler
func NewGameHandler(runner GameRunner, configs TutorialSource) *GameHandler {
	return &GameHandler{runner: runner, configs: configs}
}

// StartGameRequest is the request body for starting or resuming a session
type StartGameRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	BusinessID string `json:"business_id" validate:"required,business_id"`
}

// GameActionRequest is the request body for delivering a player input
type GameActionRequest struct {
	UserID     string        `json:"user_id" validate:"required"`
	BusinessID string        `json:"business_id" validate:"required,business_id"`
	Action     engine.Action `json:"action" validate:"required"`
}

// ExitGameRequest is the request body for ending a session
type ExitGameRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	BusinessID string `json:"business_id" validate:"required,business_id"`
}

// TutorialResponse pairs a business with its template tutorial
type TutorialResponse struct {
	BusinessID string           `json:"business_id"`
	GameType   domain.GameType  `json:"game_type"`
	Tutorial   catalog.Tutorial `json:"tutorial"`
}

// HandleStart starts or resumes a game session
// @Summary Start a game session
// @Description Opens a session for (user, business), or resumes the existing one
// @Tags game
// @Accept json
// @Produce json
// @Param request body StartGameRequest true "Start request"
// @Success 200 {object} engine.View
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/start [post]
func (h *GameHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start game"); err != nil {
		return
	}

	view, err := h.runner.Start(r.Context(), req.UserID, req.BusinessID)
	if err != nil {
		respondServiceError(w, r, "Start game", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HandleAct delivers a player input to the active session
// @Summary Apply a game action
// @Description Delivers one player input (click, sort, move, ...) to the session
// @Tags game
// @Accept json
// @Produce json
// @Param request body GameActionRequest true "Action request"
// @Success 200 {object} engine.View
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/act [post]
func (h *GameHandler) HandleAct(w http.ResponseWriter, r *http.Request) {
	var req GameActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Game action"); err != nil {
		return
	}

	view, err := h.runner.Act(r.Context(), req.UserID, req.BusinessID, req.Action)
	if err != nil {
		respondServiceError(w, r, "Game action", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HandleExit ends the active session and commits its reward
// @Summary Exit a game session
// @Description Ends the session, converts the score into coins and XP, and reports the totals
// @Tags game
// @Accept json
// @Produce json
// @Param request body ExitGameRequest true "Exit request"
// @Success 200 {object} game.ExitSummary
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/exit [post]
func (h *GameHandler) HandleExit(w http.ResponseWriter, r *http.Request) {
	var req ExitGameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Exit game"); err != nil {
		return
	}

	summary, err := h.runner.Exit(r.Context(), req.UserID, req.BusinessID)
	if err != nil {
		respondServiceError(w, r, "Exit game", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// HandleState returns the active session's current view
// @Summary Get game state
// @Tags game
// @Produce json
// @Param user_id query string true "User ID"
// @Param business_id query string true "Business ID"
// @Success 200 {object} engine.View
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/state [get]
func (h *GameHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	businessID, ok := GetQueryParam(r, w, "business_id")
	if !ok {
		return
	}

	view, err := h.runner.State(r.Context(), userID, businessID)
	if err != nil {
		respondServiceError(w, r, "Get game state", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HandleTutorial returns the how-to-play text for a business's template
// @Summary Get game tutorial
// @Tags game
// @Produce json
// @Param business_id query string true "Business ID"
// @Success 200 {object} TutorialResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/tutorial [get]
func (h *GameHandler) HandleTutorial(w http.ResponseWriter, r *http.Request) {
	businessID, ok := GetQueryParam(r, w, "business_id")
	if !ok {
		return
	}

	cfg, err := h.configs.Get(businessID)
	if err != nil {
		respondServiceError(w, r, "Get tutorial", err)
		return
	}

	tutorial, err := catalog.TutorialFor(cfg.GameType)
	if err != nil {
		respondServiceError(w, r, "Get tutorial", err)
		return
	}

	respondJSON(w, http.StatusOK, TutorialResponse{
		BusinessID: cfg.ID,
		GameType:   cfg.GameType,
		Tutorial:   tutorial,
	})
}
