package services

import (
	"context"
	"sort"

	"icebreaker_server/models"
)

// CandidateStore is the read-only slice of the profile store the candidate
// pool needs.
type CandidateStore interface {
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	QueryByPreference(ctx context.Context, gender, preference string) ([]models.UserProfile, error)
}

// CandidateService computes the set of swipeable profiles for a user. It is
// read-only: fetching candidates never mutates interaction state.
type CandidateService struct {
	Store CandidateStore
}

// FetchCandidates returns the profiles the user can swipe on: mutual
// gender/preference fit, minus the user themselves and everyone already
// liked or matched. Disliked profiles are excluded too unless
// includeDisliked is set (the refresh recovery path re-surfaces them).
// Results are sorted by user id; the store imposes no order of its own.
// An empty pool is a valid result, not an error.
func (cs *CandidateService) FetchCandidates(ctx context.Context, userID string, includeDisliked bool) ([]models.UserProfile, error) {
	requester, err := cs.Store.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	excluded := map[string]struct{}{requester.UserID: {}}
	for _, id := range requester.Likes {
		excluded[id] = struct{}{}
	}
	for _, id := range requester.Matches {
		excluded[id] = struct{}{}
	}
	if !includeDisliked {
		for _, id := range requester.Dislikes {
			excluded[id] = struct{}{}
		}
	}

	// A candidate is shown only if its gender matches what the requester
	// wants and its preference matches the requester's own gender.
	profiles, err := cs.Store.QueryByPreference(ctx, requester.Preference, requester.Gender)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.UserProfile, 0, len(profiles))
	for _, profile := range profiles {
		if _, skip := excluded[profile.UserID]; skip {
			continue
		}
		if profile.Gender != requester.Preference || profile.Preference != requester.Gender {
			continue
		}
		candidates = append(candidates, profile)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].UserID < candidates[j].UserID
	})
	return candidates, nil
}
