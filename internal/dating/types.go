package dating

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Collection names used by the event source.
const (
	CollectionSwipes   = "swipes"
	CollectionMessages = "messages"
	CollectionUsers    = "users"
	CollectionMatches  = "matches"
)

// Action is the direction-less verdict of a swipe.
type Action string

const (
	ActionLike Action = "like"
	ActionPass Action = "pass"
)

// Swipe is a user's directional expression of interest in another user.
type Swipe struct {
	SwiperID  string    `json:"swiperId" msgpack:"swiperId"`
	TargetID  string    `json:"targetId" msgpack:"targetId"`
	Action    Action    `json:"action" msgpack:"action"`
	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
}

// UserProfile is the read-only view of a user that scoring and push delivery need.
type UserProfile struct {
	UserID      string   `json:"userId" msgpack:"userId"`
	ZodiacSign  string   `json:"zodiacSign,omitempty" msgpack:"zodiacSign,omitempty"`
	Interests   []string `json:"interests,omitempty" msgpack:"interests,omitempty"`
	PushAddress string   `json:"pushAddress,omitempty" msgpack:"pushAddress,omitempty"`
}

// Match is the materialised record of a reciprocal like.
type Match struct {
	MatchID            string    `json:"matchId" msgpack:"matchId"`
	UserLow            string    `json:"userLow" msgpack:"userLow"`
	UserHigh           string    `json:"userHigh" msgpack:"userHigh"`
	CompatibilityScore int       `json:"compatibilityScore" msgpack:"compatibilityScore"`
	MatchedAt          time.Time `json:"matchedAt" msgpack:"matchedAt"`
}

// Message is a chat message between two users.
type Message struct {
	SenderID   string    `json:"senderId" msgpack:"senderId"`
	ReceiverID string    `json:"receiverId" msgpack:"receiverId"`
	Text       string    `json:"text,omitempty" msgpack:"text,omitempty"`
	CreatedAt  time.Time `json:"createdAt" msgpack:"createdAt"`
}

// CreationEvent is emitted by the event source once per created document.
// Fields holds the msgpack encoding of the created document.
type CreationEvent struct {
	Collection string             `json:"collection" msgpack:"collection"`
	DocumentID string             `json:"documentId" msgpack:"documentId"`
	Fields     msgpack.RawMessage `json:"fields" msgpack:"fields"`
}

// store handles all database operations for swipes, messages, users and matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
