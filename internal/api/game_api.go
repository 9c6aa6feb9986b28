package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meu-mundo/meumundo/internal/domain"
)

// completeTaskRequest is the inbound payload for a task completion.
type completeTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	domain.TaskInput
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	result, err := s.game.CompleteTask(req.UserID, req.TaskID, req.TaskInput)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrConflict) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":             true,
		"reward":         result.Reward,
		"xp_earned":      result.XPEarned,
		"level_up":       result.LevelUp,
		"previous_level": result.PreviousLevel,
		"new_level":      result.NewLevel,
		"died":           result.Died,
		"profile":        result.Profile,
	})
}

type userRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleRelax(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	result, err := s.game.Relax(req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if result.AlreadyUsed {
		// Expected outcome: surface the retry time, no error status.
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":                false,
			"error":             "already_used",
			"next_available_at": result.NextAvailableAt.Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "profile": result.Profile})
}

func (s *Server) handleWorkBonus(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	result, err := s.game.WorkBonus(req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if result.AlreadyUsed {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":                false,
			"error":             "already_used",
			"next_available_at": result.NextAvailableAt.Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"xp_earned": result.XPEarned,
		"level_up":  result.LevelUp,
		"new_level": result.NewLevel,
		"died":      result.Died,
		"profile":   result.Profile,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	p, err := s.game.Profile(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "profile": p})
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	earned, err := s.db.ListBadges(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "badges": earned})
}

// handleMissions returns the full badge catalog with earned flags, so the
// UI can render locked and unlocked missions plus the avatar storylines.
func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	earned, err := s.db.BadgeIDs(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type mission struct {
		domain.BadgeDef
		Earned bool `json:"earned"`
	}
	var missions []mission
	for _, def := range s.game.Badges().Definitions() {
		missions = append(missions, mission{BadgeDef: def, Earned: earned[def.ID]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "missions": missions})
}
