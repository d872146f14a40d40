// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"zenlit/internal/domain/entity"
	"zenlit/internal/domain/repository"
	"zenlit/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conversationRepository implements the repository.ConversationRepository interface.
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository is the constructor for conversationRepository.
func NewConversationRepository(db *gorm.DB) repository.ConversationRepository {
	return &conversationRepository{
		db: db,
	}
}

// FindAllConversations retrieves every conversation ordered by id.
func (repo *conversationRepository) FindAllConversations(ctx context.Context) ([]*entity.Conversation, error) {
	var conversationModels []*model.ConversationModel

	if err := findAllConversations(repo.db.WithContext(ctx), &conversationModels).Error; err != nil {
		return nil, wrapQueryError(err, "failed to find conversations")
	}

	return toConversationDomains(conversationModels), nil
}

// FindConversationsByParticipant retrieves the conversations where userID is either side.
func (repo *conversationRepository) FindConversationsByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var conversationModels []*model.ConversationModel

	if err := repo.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("id ASC").
		Find(&conversationModels).Error; err != nil {
		return nil, wrapQueryError(err, "failed to find conversations by participant")
	}

	return toConversationDomains(conversationModels), nil
}

// FindConversationByIDForUpdate retrieves a conversation with SELECT ... FOR UPDATE.
func (repo *conversationRepository) FindConversationByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var conversationM model.ConversationModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&conversationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConversationNotFound
		}

		return nil, wrapQueryError(err, "failed to lock conversation")
	}

	return toConversationDomain(&conversationM), nil
}

// UpdateAnonymity writes both flags with a compare-and-set on their previous values.
func (repo *conversationRepository) UpdateAnonymity(ctx context.Context, id uuid.UUID, expectedA, expectedB, target bool) (bool, error) {
	result := updateAnonymity(repo.db.WithContext(ctx), id, expectedA, expectedB, target)

	if result.Error != nil {
		return false, wrapQueryError(result.Error, "failed to update conversation anonymity")
	}

	return result.RowsAffected > 0, nil
}

func findAllConversations(db *gorm.DB, dest *[]*model.ConversationModel) *gorm.DB {
	return db.Order("id ASC").Find(dest)
}

// updateAnonymity touches only the two flag columns; the table carries no timestamps.
func updateAnonymity(db *gorm.DB, id uuid.UUID, expectedA, expectedB, target bool) *gorm.DB {
	return db.Model(&model.ConversationModel{}).
		Where("id = ? AND is_anonymous_for_a = ? AND is_anonymous_for_b = ?", id, expectedA, expectedB).
		UpdateColumns(map[string]any{
			"is_anonymous_for_a": target,
			"is_anonymous_for_b": target,
		})
}

func toConversationDomain(data *model.ConversationModel) *entity.Conversation {
	if data == nil {
		return nil
	}

	return &entity.Conversation{
		ID:              data.ID,
		UserAID:         data.UserAID,
		UserBID:         data.UserBID,
		IsAnonymousForA: data.IsAnonymousForA,
		IsAnonymousForB: data.IsAnonymousForB,
	}
}

func toConversationDomains(data []*model.ConversationModel) []*entity.Conversation {
	conversations := make([]*entity.Conversation, 0, len(data))
	for _, conversationM := range data {
		conversations = append(conversations, toConversationDomain(conversationM))
	}

	return conversations
}
