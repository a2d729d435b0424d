package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"icebreaker_server/services"
)

// SwipeController handles candidate fetching and swipe decisions
type SwipeController struct {
	CandidateService *services.CandidateService
	MatchService     *services.MatchService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(candidateService *services.CandidateService, matchService *services.MatchService) *SwipeController {
	return &SwipeController{CandidateService: candidateService, MatchService: matchService}
}

// HandleGetCandidates returns the swipeable profiles for a user.
// includeDisliked=true re-surfaces previously disliked candidates for the
// refresh path.
func (sc *SwipeController) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	includeDisliked := r.URL.Query().Get("includeDisliked") == "true"

	candidates, err := sc.CandidateService.FetchCandidates(r.Context(), userID, includeDisliked)
	if err != nil {
		log.Printf("Failed to fetch candidates for %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// HandleSwipe processes a "liked" or "notliked" decision
func (sc *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID       string `json:"userId"`
		TargetUserID string `json:"targetUserId"`
		Action       string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.TargetUserID == "" || request.Action == "" {
		http.Error(w, "userId, targetUserId, and action are required", http.StatusBadRequest)
		return
	}

	decision := services.Decision(request.Action)
	result, err := sc.MatchService.Commit(r.Context(), request.UserID, request.TargetUserID, decision)
	if err != nil {
		log.Printf("Failed to commit %s from %s on %s: %v", request.Action, request.UserID, request.TargetUserID, err)
		writeServiceError(w, err)
		return
	}

	message := "User liked successfully"
	switch {
	case result.Matched:
		message = "It's a match!"
	case decision == services.DecisionDislike:
		message = "User added to dislikes"
	}

	writeJSON(w, map[string]interface{}{
		"message": message,
		"matched": result.Matched,
		"match":   result.Match,
	})
}
