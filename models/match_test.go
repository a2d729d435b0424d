package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("alice", "bob"), PairKey("bob", "alice"))
	assert.Equal(t, "alice#bob", PairKey("bob", "alice"))
}

func TestNewMatch(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	match := NewMatch("m-1", "bob", "alice", createdAt)

	require.Equal(t, "alice#bob", match.PairKey)
	assert.Equal(t, "m-1", match.MatchID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, match.Users)
	assert.Equal(t, "2026-03-14T09:30:00Z", match.CreatedAt)
	assert.Empty(t, match.LastMessage)
}

func TestMatchCounterpart(t *testing.T) {
	match := NewMatch("m-1", "alice", "bob", time.Now())

	assert.Equal(t, "bob", match.Counterpart("alice"))
	assert.Equal(t, "alice", match.Counterpart("bob"))
}

func TestSwipeSessionCursor(t *testing.T) {
	session := SwipeSession{Candidates: []UserProfile{{UserID: "a"}, {UserID: "b"}}}

	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "a", current.UserID)
	assert.False(t, session.Exhausted())

	session.Advance()
	session.Advance()
	assert.True(t, session.Exhausted())
	assert.Equal(t, 2, session.Cursor)

	// Advancing past the end stays clamped.
	session.Advance()
	assert.Equal(t, 2, session.Cursor)

	_, ok = session.Current()
	assert.False(t, ok)
}

func TestEmptySessionIsExhausted(t *testing.T) {
	var session SwipeSession
	assert.True(t, session.Exhausted())

	_, ok := session.Current()
	assert.False(t, ok)
}
