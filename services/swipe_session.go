package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"icebreaker_server/models"
)

// CandidateProvider supplies the ordered candidate list for a session.
type CandidateProvider interface {
	FetchCandidates(ctx context.Context, userID string, includeDisliked bool) ([]models.UserProfile, error)
}

// DecisionCommitter settles a swipe decision against the store.
type DecisionCommitter interface {
	Commit(ctx context.Context, requesterID, candidateID string, decision Decision) (CommitResult, error)
}

const sessionOpTimeout = 10 * time.Second

// SwipeSessionController orchestrates one user's swipe run: it owns the
// candidate list and cursor, commits decisions in order, and never runs two
// decisions concurrently. The acting user id is an explicit constructor
// argument; nothing here reads ambient session state.
type SwipeSessionController struct {
	mu         sync.Mutex
	userID     string
	candidates CandidateProvider
	engine     DecisionCommitter
	timeout    time.Duration

	session    models.SwipeSession
	generation uint64
}

func NewSwipeSessionController(userID string, candidates CandidateProvider, engine DecisionCommitter) *SwipeSessionController {
	return &SwipeSessionController{
		userID:     userID,
		candidates: candidates,
		engine:     engine,
		timeout:    sessionOpTimeout,
	}
}

// Start loads a fresh session excluding everything the user has already
// decided on. Call on screen focus.
func (sc *SwipeSessionController) Start(ctx context.Context) error {
	return sc.load(ctx, false)
}

// Refresh rebuilds the session re-surfacing previously disliked candidates.
// Liked and matched profiles stay excluded; this is the "check back later"
// recovery path for an exhausted pool.
func (sc *SwipeSessionController) Refresh(ctx context.Context) error {
	return sc.load(ctx, true)
}

func (sc *SwipeSessionController) load(ctx context.Context, includeDisliked bool) error {
	sc.mu.Lock()
	sc.generation++
	fetchGeneration := sc.generation
	sc.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, sc.timeout)
	defer cancel()

	fetched, err := sc.candidates.FetchCandidates(fetchCtx, sc.userID, includeDisliked)
	if err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if fetchGeneration != sc.generation {
		// A newer fetch was issued while this one was in flight; stale
		// results must not overwrite it.
		return nil
	}
	sc.session = models.SwipeSession{Candidates: fetched}
	return nil
}

// CurrentCandidate returns the front card, or false when the session is
// exhausted or empty.
func (sc *SwipeSessionController) CurrentCandidate() (models.UserProfile, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.session.Current()
}

// Exhausted reports whether the cursor has consumed every candidate.
// Distinguish an empty pool with Size.
func (sc *SwipeSessionController) Exhausted() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.session.Exhausted()
}

// Size returns the length of the candidate list fixed at fetch time.
func (sc *SwipeSessionController) Size() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.session.Candidates)
}

// Cursor returns the current position in the candidate list.
func (sc *SwipeSessionController) Cursor() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.session.Cursor
}

// OnDecision commits the resolved gesture for the front card. The cursor
// advances on success and when the candidate's profile no longer exists;
// a retryable commit failure leaves it in place so the same candidate can
// be retried.
func (sc *SwipeSessionController) OnDecision(ctx context.Context, decision Decision) (CommitResult, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	candidate, ok := sc.session.Current()
	if !ok {
		return CommitResult{}, ErrNoCandidate
	}

	commitCtx, cancel := context.WithTimeout(ctx, sc.timeout)
	defer cancel()

	result, err := sc.engine.Commit(commitCtx, sc.userID, candidate.UserID, decision)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// The candidate is gone; retrying the same card cannot succeed.
			sc.session.Advance()
		}
		return CommitResult{}, err
	}

	sc.session.Advance()
	return result, nil
}
