package entity

import (
	"github.com/google/uuid"
)

// Conversation pairs two users. Each side has its own anonymity flag, controlling
// whether that side sees the other as anonymous.
type Conversation struct {
	ID              uuid.UUID
	UserAID         uuid.UUID
	UserBID         uuid.UUID
	IsAnonymousForA bool
	IsAnonymousForB bool
}

// AnonymityMatches reports whether both flags already equal target.
func (c *Conversation) AnonymityMatches(target bool) bool {
	return c.IsAnonymousForA == target && c.IsAnonymousForB == target
}

// Involves reports whether userID is one of the two participants.
func (c *Conversation) Involves(userID uuid.UUID) bool {
	return c.UserAID == userID || c.UserBID == userID
}
