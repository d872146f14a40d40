package model

import (
	"github.com/google/uuid"
)

// ConversationModel is the GORM-specific struct for the 'conversations' table.
// The table is owned by the chat service; only the anonymity flags are written here.
type ConversationModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	UserAID         uuid.UUID `gorm:"column:user_a_id;type:uuid;not null;index"`
	UserBID         uuid.UUID `gorm:"column:user_b_id;type:uuid;not null;index"`
	IsAnonymousForA bool      `gorm:"column:is_anonymous_for_a;not null;default:true"`
	IsAnonymousForB bool      `gorm:"column:is_anonymous_for_b;not null;default:true"`
}

// TableName explicitly sets the table name for GORM.
func (ConversationModel) TableName() string {
	return "conversations"
}
