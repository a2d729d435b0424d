package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"icebreaker_server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchStoreStub mirrors the store contract in memory: atomic set moves and
// pair-keyed match uniqueness.
type matchStoreStub struct {
	profiles map[string]*models.UserProfile
	matches  map[string]*models.Match

	failLikes    int // remaining RecordLike calls to fail with a transient error
	failDislikes int
	createCalls  int
}

func newMatchStoreStub(profiles ...*models.UserProfile) *matchStoreStub {
	s := &matchStoreStub{
		profiles: map[string]*models.UserProfile{},
		matches:  map[string]*models.Match{},
	}
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return s
}

func (s *matchStoreStub) GetUserProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}
	return profile, nil
}

func (s *matchStoreStub) RecordLike(_ context.Context, userID, targetID string) error {
	if s.failLikes > 0 {
		s.failLikes--
		return errors.New("throttled")
	}
	profile, ok := s.profiles[userID]
	if !ok {
		return fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}
	profile.Likes = addToSet(profile.Likes, targetID)
	profile.Dislikes = removeFromSet(profile.Dislikes, targetID)
	return nil
}

func (s *matchStoreStub) RecordDislike(_ context.Context, userID, targetID string) error {
	if s.failDislikes > 0 {
		s.failDislikes--
		return errors.New("throttled")
	}
	profile, ok := s.profiles[userID]
	if !ok {
		return fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}
	profile.Dislikes = addToSet(profile.Dislikes, targetID)
	profile.Likes = removeFromSet(profile.Likes, targetID)
	return nil
}

func (s *matchStoreStub) CreateMatch(_ context.Context, requesterID, candidateID string, createdAt time.Time) (*models.Match, bool, error) {
	s.createCalls++
	pairKey := models.PairKey(requesterID, candidateID)
	if existing, ok := s.matches[pairKey]; ok {
		return existing, false, nil
	}

	match := models.NewMatch(uuid.NewString(), requesterID, candidateID, createdAt)
	s.matches[pairKey] = &match
	for userID, counterpartID := range map[string]string{requesterID: candidateID, candidateID: requesterID} {
		if profile, ok := s.profiles[userID]; ok {
			profile.Matches = addToSet(profile.Matches, counterpartID)
			profile.Likes = removeFromSet(profile.Likes, counterpartID)
			profile.Dislikes = removeFromSet(profile.Dislikes, counterpartID)
		}
	}
	return &match, true, nil
}

func addToSet(set []string, id string) []string {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	return append(set, id)
}

func removeFromSet(set []string, id string) []string {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func TestCommitDislike(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice", Likes: []string{"carl"}},
		&models.UserProfile{UserID: "bob"},
	)
	svc := NewMatchService(store)

	result, err := svc.Commit(context.Background(), "alice", "bob", DecisionDislike)
	require.NoError(t, err)

	assert.False(t, result.Matched)
	assert.Nil(t, result.Match)
	assert.Contains(t, store.profiles["alice"].Dislikes, "bob")
	assert.Equal(t, []string{"carl"}, store.profiles["alice"].Likes)
	assert.Empty(t, store.profiles["alice"].Matches)
	assert.Empty(t, store.matches)
}

func TestCommitLikeWithoutMutualLike(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice"},
		&models.UserProfile{UserID: "bob"},
	)
	svc := NewMatchService(store)

	result, err := svc.Commit(context.Background(), "alice", "bob", DecisionLike)
	require.NoError(t, err)

	assert.False(t, result.Matched)
	assert.Contains(t, store.profiles["alice"].Likes, "bob")
	assert.Empty(t, store.matches)
}

func TestCommitLikeWithMutualLikeFormsMatch(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice", Name: "Alice"},
		&models.UserProfile{UserID: "bob", Name: "Bob", Likes: []string{"alice"}},
	)
	svc := NewMatchService(store)

	var notified []MatchNotification
	svc.OnMatch = func(n MatchNotification) { notified = append(notified, n) }

	result, err := svc.Commit(context.Background(), "alice", "bob", DecisionLike)
	require.NoError(t, err)

	require.True(t, result.Matched)
	require.NotNil(t, result.Match)
	assert.ElementsMatch(t, []string{"alice", "bob"}, result.Match.Users)
	assert.Len(t, store.matches, 1)

	// Both sides moved to matched; the like entries are gone so the three
	// sets stay disjoint.
	assert.Contains(t, store.profiles["alice"].Matches, "bob")
	assert.Contains(t, store.profiles["bob"].Matches, "alice")
	assert.NotContains(t, store.profiles["alice"].Likes, "bob")
	assert.NotContains(t, store.profiles["bob"].Likes, "alice")

	// The notification carries both display profiles so each side's match
	// prompt can show its counterpart.
	require.Len(t, notified, 1)
	assert.Equal(t, "alice", notified[0].Requester.UserID)
	assert.Equal(t, "Alice", notified[0].Requester.Name)
	assert.Equal(t, "Bob", notified[0].Candidate.Name)
	assert.Equal(t, result.Match.MatchID, notified[0].Match.MatchID)
}

func TestDislikeAfterLikeMovesBetweenSets(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice"},
		&models.UserProfile{UserID: "bob"},
	)
	svc := NewMatchService(store)

	_, err := svc.Commit(context.Background(), "alice", "bob", DecisionLike)
	require.NoError(t, err)
	require.Contains(t, store.profiles["alice"].Likes, "bob")

	_, err = svc.Commit(context.Background(), "alice", "bob", DecisionDislike)
	require.NoError(t, err)

	// The id moved between sets instead of occupying both.
	assert.NotContains(t, store.profiles["alice"].Likes, "bob")
	assert.Contains(t, store.profiles["alice"].Dislikes, "bob")
}

func TestConcurrentCommitsShareOneMatch(t *testing.T) {
	existing := models.NewMatch("m-existing", "alice", "bob", time.Now())
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice"},
		&models.UserProfile{UserID: "bob", Likes: []string{"alice"}},
	)
	// The counterpart's commit already created the pair record.
	store.matches[existing.PairKey] = &existing
	svc := NewMatchService(store)

	result, err := svc.Commit(context.Background(), "alice", "bob", DecisionLike)
	require.NoError(t, err)

	require.True(t, result.Matched)
	assert.Equal(t, "m-existing", result.Match.MatchID)
	assert.Len(t, store.matches, 1)
}

func TestCommitLikeCandidateMissing(t *testing.T) {
	store := newMatchStoreStub(&models.UserProfile{UserID: "alice"})
	svc := NewMatchService(store)

	_, err := svc.Commit(context.Background(), "alice", "ghost", DecisionLike)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.matches)
}

func TestCommitValidation(t *testing.T) {
	svc := NewMatchService(newMatchStoreStub(&models.UserProfile{UserID: "alice"}))

	_, err := svc.Commit(context.Background(), "alice", "alice", DecisionLike)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Commit(context.Background(), "", "bob", DecisionLike)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Commit(context.Background(), "alice", "bob", Decision("superliked"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCommitRetriesTransientWriteFailures(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice"},
		&models.UserProfile{UserID: "bob"},
	)
	store.failDislikes = maxWriteAttempts - 1
	svc := NewMatchService(store)

	_, err := svc.Commit(context.Background(), "alice", "bob", DecisionDislike)
	require.NoError(t, err)
	assert.Contains(t, store.profiles["alice"].Dislikes, "bob")
}

func TestCommitSurfacesExhaustedRetries(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice"},
		&models.UserProfile{UserID: "bob"},
	)
	store.failDislikes = maxWriteAttempts
	svc := NewMatchService(store)

	_, err := svc.Commit(context.Background(), "alice", "bob", DecisionDislike)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.NotContains(t, store.profiles["alice"].Dislikes, "bob")
}

func TestGetCurrentMatchesSkipsDeletedProfiles(t *testing.T) {
	store := newMatchStoreStub(
		&models.UserProfile{UserID: "alice", Matches: []string{"bob", "gone"}},
		&models.UserProfile{UserID: "bob", Name: "Bob"},
	)
	svc := NewMatchService(store)

	matched, err := svc.GetCurrentMatches(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Bob", matched[0].Name)
}
