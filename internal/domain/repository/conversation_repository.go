// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"zenlit/internal/domain/entity"
	"zenlit/internal/errors"

	"github.com/google/uuid"
)

// ErrConversationNotFound is returned when a conversation is not found.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository defines the interface for conversation-related database operations.
// Conversations are created elsewhere; this service only reads them and rewrites the anonymity flags.
type ConversationRepository interface {
	// FindAllConversations retrieves every conversation.
	FindAllConversations(ctx context.Context) ([]*entity.Conversation, error)

	// FindConversationsByParticipant retrieves the conversations where userID is either side.
	FindConversationsByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)

	// FindConversationByIDForUpdate retrieves a conversation and locks its row until the
	// surrounding transaction ends. Only meaningful inside TransactionManager.Execute.
	FindConversationByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)

	// UpdateAnonymity sets both anonymity flags to target, but only while the row still holds
	// expectedA/expectedB. It reports false when no row matched, i.e. the conversation changed
	// or disappeared since it was read.
	UpdateAnonymity(ctx context.Context, id uuid.UUID, expectedA, expectedB, target bool) (bool, error)
}
