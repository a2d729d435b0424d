package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"icebreaker_server/models"
	"icebreaker_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	ProfileService *services.ProfileService
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(profileService *services.ProfileService) *UserProfileController {
	return &UserProfileController{ProfileService: profileService}
}

// CreateUserProfile handles adding a new user profile
func (c *UserProfileController) CreateUserProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Printf("Failed to decode request body: %v", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	createdProfile, err := c.ProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		log.Printf("Failed to add profile: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Profile added successfully",
		"profile": createdProfile,
	})
}

// GetUserProfile handles fetching a user profile by ID
func (c *UserProfileController) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.ProfileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, profile)
}

// UpdateUserProfile handles updating an existing user profile
func (c *UserProfileController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updatedProfile, err := c.ProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		log.Printf("Failed to update profile %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": updatedProfile,
	})
}

// DeleteUserProfile handles removing a user profile
func (c *UserProfileController) DeleteUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := c.ProfileService.DeleteUserProfile(r.Context(), userID); err != nil {
		log.Printf("Failed to delete profile %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "Profile deleted successfully"})
}
