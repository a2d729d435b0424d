package models

import "time"

// Match records a confirmed mutual like between exactly two users. PairKey
// is the table's partition key, so the store enforces at most one match per
// unordered user pair.
type Match struct {
	PairKey     string   `dynamodbav:"pairKey" json:"-"` // Partition Key: "min#max" of the two user ids
	MatchID     string   `dynamodbav:"matchId" json:"matchId"`
	Users       []string `dynamodbav:"users" json:"users"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`
	LastMessage string   `dynamodbav:"lastMessage" json:"lastMessage"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// PairKey builds the uniqueness key for an unordered pair of user ids.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "#" + b
}

// NewMatch builds a match record for the given pair with an empty last message.
func NewMatch(matchID, userA, userB string, createdAt time.Time) Match {
	return Match{
		PairKey:   PairKey(userA, userB),
		MatchID:   matchID,
		Users:     []string{userA, userB},
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
}

// Counterpart returns the other side of the match for the given user id.
func (m *Match) Counterpart(userID string) string {
	for _, u := range m.Users {
		if u != userID {
			return u
		}
	}
	return ""
}
