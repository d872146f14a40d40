package service

import (
	"context"
)

// EventTypeAnonymityChanged is the event_type attribute of AnonymityChangedEvent messages.
const EventTypeAnonymityChanged = "conversation.anonymity_changed"

// AnonymityChangedEvent is emitted when a conversation's anonymity flags are rewritten,
// so chat clients can refresh how they render the other participant.
type AnonymityChangedEvent struct {
	RequestID       string `json:"request_id,omitempty"` // For distributed tracing
	ConversationID  string `json:"conversation_id"`
	UserAID         string `json:"user_a_id"`
	UserBID         string `json:"user_b_id"`
	IsAnonymousForA bool   `json:"is_anonymous_for_a"`
	IsAnonymousForB bool   `json:"is_anonymous_for_b"`
	ChangedAt       string `json:"changed_at"` // RFC3339
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAnonymityChanged publishes a conversation anonymity change
	PublishAnonymityChanged(ctx context.Context, event *AnonymityChangedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
