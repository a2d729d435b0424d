package routes

import (
	"icebreaker_server/controllers"
	"icebreaker_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for candidate fetching and swipe
// decisions under /api/swipe
func RegisterSwipeRoutes(r *mux.Router, candidateService *services.CandidateService, matchService *services.MatchService) {
	controller := controllers.NewSwipeController(candidateService, matchService)

	swipeRouter := r.PathPrefix("/api/swipe").Subrouter()

	swipeRouter.HandleFunc("/candidates", controller.HandleGetCandidates).Methods("GET")
	swipeRouter.HandleFunc("/action", controller.HandleSwipe).Methods("POST")
}
