package socket

import (
	"log"

	"icebreaker_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Clients join a room
// keyed by their user id right after connecting and receive matchFound
// events there.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("Invalid userId in join request")
			return
		}
		log.Printf("Socket %s joined room for user %s", c.ID(), userID)
		c.Join(roomForUser(userID))
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return server
}

// BroadcastMatch pushes a matchFound event to both sides of a fresh match.
// Each side receives the counterpart's display fields for the match prompt.
func BroadcastMatch(server *socketio.Server, n services.MatchNotification) {
	for _, userID := range n.Match.Users {
		server.BroadcastToRoom("/", roomForUser(userID), "matchFound", matchPayload(n, userID))
	}
}

// matchPayload builds the matchFound event body for one user's room. The
// requester's room carries the candidate's profile and vice versa.
func matchPayload(n services.MatchNotification, userID string) map[string]interface{} {
	counterpart := n.Candidate
	if userID == n.Candidate.UserID {
		counterpart = n.Requester
	}
	return map[string]interface{}{
		"matchId":   n.Match.MatchID,
		"users":     n.Match.Users,
		"createdAt": n.Match.CreatedAt,
		"profile":   counterpart,
	}
}

func roomForUser(userID string) string {
	return "user:" + userID
}
