package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"icebreaker_server/models"
)

// MatchStore is the slice of the profile store the match engine writes
// through. RecordLike/RecordDislike must be atomic set updates; CreateMatch
// must be idempotent per unordered pair (created=false when the record
// already existed).
type MatchStore interface {
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	RecordLike(ctx context.Context, userID, targetID string) error
	RecordDislike(ctx context.Context, userID, targetID string) error
	CreateMatch(ctx context.Context, requesterID, candidateID string, createdAt time.Time) (*models.Match, bool, error)
}

// MatchNotification carries a freshly formed match to the UI layer: the
// record plus both users' display profiles, so each side's "you matched"
// prompt can show its counterpart. It is a same-process callback, not a
// push notification.
type MatchNotification struct {
	Match     models.Match       `json:"match"`
	Requester models.UserProfile `json:"requester"`
	Candidate models.UserProfile `json:"candidate"`
}

// CommitResult reports the outcome of a swipe commit.
type CommitResult struct {
	Matched bool          `json:"matched"`
	Match   *models.Match `json:"match,omitempty"`
}

// MatchService commits swipe decisions: it updates interaction sets,
// detects mutual likes and forms match records.
type MatchService struct {
	Store   MatchStore
	OnMatch func(MatchNotification)

	now func() time.Time
}

func NewMatchService(store MatchStore) *MatchService {
	return &MatchService{Store: store, now: time.Now}
}

// Commit applies a like or dislike from requester to candidate. A like
// against a candidate who already likes the requester forms a match; the
// pair-keyed transactional create guarantees at most one match record even
// when both users swipe each other concurrently. Transient write failures
// are retried a bounded number of times per step.
func (ms *MatchService) Commit(ctx context.Context, requesterID, candidateID string, decision Decision) (CommitResult, error) {
	if requesterID == "" || candidateID == "" {
		return CommitResult{}, fmt.Errorf("%w: both user ids are required", ErrValidation)
	}
	if requesterID == candidateID {
		return CommitResult{}, fmt.Errorf("%w: cannot swipe on yourself", ErrValidation)
	}

	switch decision {
	case DecisionDislike:
		err := withRetry(ctx, func() error {
			return ms.Store.RecordDislike(ctx, requesterID, candidateID)
		})
		if err != nil {
			return CommitResult{}, err
		}
		return CommitResult{}, nil
	case DecisionLike:
		return ms.commitLike(ctx, requesterID, candidateID)
	default:
		return CommitResult{}, fmt.Errorf("%w: unsupported decision %q", ErrValidation, decision)
	}
}

func (ms *MatchService) commitLike(ctx context.Context, requesterID, candidateID string) (CommitResult, error) {
	err := withRetry(ctx, func() error {
		return ms.Store.RecordLike(ctx, requesterID, candidateID)
	})
	if err != nil {
		return CommitResult{}, err
	}

	candidate, err := ms.Store.GetUserProfile(ctx, candidateID)
	if err != nil {
		return CommitResult{}, err
	}
	if !candidate.HasLiked(requesterID) {
		return CommitResult{}, nil
	}

	// The notification carries both display profiles; load the requester's
	// before forming the match so a deleted requester surfaces here.
	requester, err := ms.Store.GetUserProfile(ctx, requesterID)
	if err != nil {
		return CommitResult{}, err
	}

	var match *models.Match
	var created bool
	err = withRetry(ctx, func() error {
		var createErr error
		match, created, createErr = ms.Store.CreateMatch(ctx, requesterID, candidateID, ms.now())
		return createErr
	})
	if err != nil {
		return CommitResult{}, err
	}
	if !created {
		log.Printf("Match between %s and %s already existed", requesterID, candidateID)
	}

	if ms.OnMatch != nil {
		ms.OnMatch(MatchNotification{
			Match:     *match,
			Requester: *requester,
			Candidate: *candidate,
		})
	}
	return CommitResult{Matched: true, Match: match}, nil
}

// GetCurrentMatches returns the display profiles of everyone the user has
// matched with. Counterparts whose profiles have since been deleted are
// skipped.
func (ms *MatchService) GetCurrentMatches(ctx context.Context, userID string) ([]models.UserProfile, error) {
	profile, err := ms.Store.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.UserProfile, 0, len(profile.Matches))
	for _, counterpartID := range profile.Matches {
		counterpart, err := ms.Store.GetUserProfile(ctx, counterpartID)
		if err != nil {
			continue
		}
		matched = append(matched, *counterpart)
	}
	return matched, nil
}
