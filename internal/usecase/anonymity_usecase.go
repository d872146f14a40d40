package usecase

import (
	"context"

	"github.com/google/uuid"
)

// RecalculationResult summarises one anonymity recalculation pass
type RecalculationResult struct {
	Scanned    int `json:"scanned"`    // Conversations examined
	Updated    int `json:"updated"`    // Conversations whose flags were rewritten
	Skipped    int `json:"skipped"`    // Conversations skipped after a lookup or write failure
	Conflicted int `json:"conflicted"` // Conversations changed by another writer between read and write
}

// AnonymityUsecase recomputes the per-conversation anonymity flags from participant proximity
type AnonymityUsecase interface {
	// RecalculateAll processes every conversation. Only a failure to load the conversation
	// set is returned as an error; per-conversation failures are skipped.
	RecalculateAll(ctx context.Context) (*RecalculationResult, error)

	// RecalculateForUser processes the conversations userID participates in.
	RecalculateForUser(ctx context.Context, userID uuid.UUID) (*RecalculationResult, error)
}
