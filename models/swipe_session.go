package models

// SwipeSession is the transient per-screen-visit state of a swipe run: the
// candidate list fixed at fetch time and a cursor that only moves forward.
// It is never persisted.
type SwipeSession struct {
	Candidates []UserProfile `json:"candidates"`
	Cursor     int           `json:"cursor"`
}

// Current returns the candidate under the cursor, or false when the session
// is exhausted or empty.
func (s *SwipeSession) Current() (UserProfile, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Candidates) {
		return UserProfile{}, false
	}
	return s.Candidates[s.Cursor], true
}

// Exhausted reports whether the cursor has run past the last candidate.
// An empty session is exhausted from the start.
func (s *SwipeSession) Exhausted() bool {
	return s.Cursor >= len(s.Candidates)
}

// Advance moves the cursor one candidate forward, clamped to the session
// length.
func (s *SwipeSession) Advance() {
	if s.Cursor < len(s.Candidates) {
		s.Cursor++
	}
}
