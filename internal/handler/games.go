package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/gamification"
	"github.com/firesafetykz/portal/internal/logger"
)

// StartSessionRequest is the body of POST /api/games/sessions
type StartSessionRequest struct {
	UserID     string `json:"user_id" validate:"required,userid"`
	ScenarioID string `json:"scenario_id" validate:"required,scenario"`
}

// StartSessionResponse returns the new session id
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// CompleteSessionRequest is what the game reports when a run ends
type CompleteSessionRequest struct {
	Accuracy          float64  `json:"accuracy" validate:"gte=0,lte=100"`
	TimeSpentSeconds  int      `json:"time_spent_seconds" validate:"gte=0,lte=86400"`
	ToolsUsed         []string `json:"tools_used" validate:"max=32,dive,required,max=64"`
	FiresExtinguished int      `json:"fires_extinguished" validate:"gte=0"`
	Completed         bool     `json:"completed"`
	XPEarned          int64    `json:"xp_earned" validate:"gte=0,lte=5000"`
}

// GameHandler serves the gamification REST API
type GameHandler struct {
	svc gamification.Service
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(svc gamification.Service) *GameHandler {
	return &GameHandler{svc: svc}
}

// HandleLevels returns the level table
// @Summary Level table
// @Tags games
// @Produce json
// @Success 200 {array} gamification.LevelRow
// @Router /api/games/levels [get]
func (h *GameHandler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, gamification.Levels())
}

// HandleAchievements returns the achievement catalog
// @Summary Achievement catalog
// @Tags games
// @Produce json
// @Success 200 {array} domain.Achievement
// @Router /api/games/achievements [get]
func (h *GameHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, gamification.Achievements())
}

// HandleScenarios returns the playable scenarios
// @Summary Scenarios
// @Tags games
// @Produce json
// @Success 200 {array} gamification.Scenario
// @Router /api/games/scenarios [get]
func (h *GameHandler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, gamification.Scenarios())
}

// HandleProfile returns a player's profile with its derived level
// @Summary Player profile
// @Tags games
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.ProfileView
// @Failure 400 {object} ErrorResponse
// @Router /api/games/profile [get]
func (h *GameHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	view, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleStartSession starts a game session
// @Summary Start game session
// @Tags games
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Session"
// @Success 201 {object} StartSessionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/games/sessions [post]
func (h *GameHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start session"); err != nil {
		return
	}

	session, err := h.svc.StartSession(r.Context(), req.UserID, req.ScenarioID)
	if err != nil {
		respondServiceError(w, r, "Start session", err)
		return
	}
	respondJSON(w, http.StatusCreated, StartSessionResponse{SessionID: session.ID})
}

// HandleCompleteSession finalizes a session, awarding xp and achievements
// @Summary Complete game session
// @Tags games
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body CompleteSessionRequest true "Result"
// @Success 200 {object} domain.SessionResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/games/sessions/{id}/complete [post]
func (h *GameHandler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req CompleteSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete session"); err != nil {
		return
	}

	result, err := h.svc.CompleteSession(r.Context(), chi.URLParam(r, "id"), gamification.CompleteInput{
		Accuracy:          req.Accuracy,
		TimeSpentSeconds:  req.TimeSpentSeconds,
		ToolsUsed:         req.ToolsUsed,
		FiresExtinguished: req.FiresExtinguished,
		Completed:         req.Completed,
		XPEarned:          req.XPEarned,
	})
	if err != nil {
		respondServiceError(w, r, "Complete session", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgSessionCompleted,
		"session_id", result.Session.ID, "unlocked", len(result.Unlocked), "leveled_up", result.LeveledUp)
	if result.Unlocked == nil {
		result.Unlocked = []domain.Achievement{}
	}
	respondJSON(w, http.StatusOK, result)
}
