package controllers

import (
	"log"
	"net/http"

	"icebreaker_server/services"
)

// MatchController handles match listing requests
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// GetConnections returns the display profiles of the user's current matches
func (mc *MatchController) GetConnections(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.GetCurrentMatches(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to fetch matches for %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}
