package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"zenlit/config"
	"zenlit/internal/domain/entity"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/domain/repository"
	"zenlit/internal/domain/service"
	mockRepo "zenlit/internal/mocks/repository"
	mockSvc "zenlit/internal/mocks/service"
	"zenlit/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type anonymityTestDeps struct {
	conversationRepo *mockRepo.MockConversationRepository
	locationRepo     *mockRepo.MockLocationRepository
	txManager        *mockRepo.MockTransactionManager
	publisher        *mockSvc.MockEventPublisher
	runLock          *mockSvc.MockRunLock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func createTestAnonymityService(t *testing.T, anonymityCfg *config.AnonymityConfig) (usecase.AnonymityUsecase, *anonymityTestDeps) {
	deps := &anonymityTestDeps{
		conversationRepo: mockRepo.NewMockConversationRepository(t),
		locationRepo:     mockRepo.NewMockLocationRepository(t),
		txManager:        mockRepo.NewMockTransactionManager(t),
		publisher:        mockSvc.NewMockEventPublisher(t),
		runLock:          mockSvc.NewMockRunLock(t),
	}

	svc := NewAnonymityService(
		discardLogger(),
		&config.Config{Anonymity: anonymityCfg},
		deps.conversationRepo,
		deps.locationRepo,
		deps.txManager,
		deps.publisher,
		deps.runLock,
	)

	return svc, deps
}

func expectLock(deps *anonymityTestDeps) *bool {
	released := false
	deps.runLock.EXPECT().Acquire(mock.Anything).Return(func(context.Context) error {
		released = true

		return nil
	}, nil)

	return &released
}

func coarse(lat, long float64) *entity.Location {
	return &entity.Location{UserID: uuid.New(), LatShort: &lat, LongShort: &long}
}

func newConversation(anonymous bool) *entity.Conversation {
	return &entity.Conversation{
		ID:              uuid.New(),
		UserAID:         uuid.New(),
		UserBID:         uuid.New(),
		IsAnonymousForA: anonymous,
		IsAnonymousForB: anonymous,
	}
}

func TestAnonymityService_RecalculateAll_NearbyPairBecomesVisible(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	released := expectLock(deps)

	ctx := context.Background()
	c1 := newConversation(true)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{c1}, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, c1.UserAID).Return(coarse(12.90, 77.50), nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, c1.UserBID).Return(coarse(12.905, 77.505), nil)
	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, c1.ID, true, true, false).Return(true, nil)
	deps.publisher.EXPECT().
		PublishAnonymityChanged(mock.Anything, mock.MatchedBy(func(event *service.AnonymityChangedEvent) bool {
			return event.ConversationID == c1.ID.String() && !event.IsAnonymousForA && !event.IsAnonymousForB
		})).
		Return(nil)

	result, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Updated)
	assert.True(t, *released)
}

func TestAnonymityService_RecalculateAll_MissingLocationForcesAnonymous(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	expectLock(deps)

	ctx := context.Background()
	visible := newConversation(false)
	alreadyAnonymous := newConversation(true)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{visible, alreadyAnonymous}, nil)

	// No row at all for user_a of the first conversation.
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, visible.UserAID).Return(nil, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, visible.UserBID).Return(coarse(12.90, 77.50), nil)

	// A row with a null coordinate for user_b of the second one.
	lat := 12.90
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, alreadyAnonymous.UserAID).Return(coarse(12.90, 77.50), nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, alreadyAnonymous.UserBID).Return(&entity.Location{LatShort: &lat}, nil)

	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, visible.ID, false, false, true).Return(true, nil)
	deps.publisher.EXPECT().PublishAnonymityChanged(mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Updated, "only the conversation whose flags differed is counted")
}

func TestAnonymityService_RecalculateAll_NoSpuriousWrites(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	expectLock(deps)

	ctx := context.Background()
	farApart := newConversation(true)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{farApart}, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, farApart.UserAID).Return(coarse(12.90, 77.50), nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, farApart.UserBID).Return(coarse(13.50, 77.50), nil)

	result, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	deps.conversationRepo.AssertNotCalled(t, "UpdateAnonymity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnonymityService_RecalculateAll_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		userA         *entity.Location
		userB         *entity.Location
		wantAnonymous bool
	}{
		{name: "both diffs exactly at threshold", userA: coarse(0, 0), userB: coarse(0.01, 0.01), wantAnonymous: false},
		{name: "latitude just past threshold", userA: coarse(0, 0), userB: coarse(0.0101, 0), wantAnonymous: true},
		{name: "longitude just past threshold", userA: coarse(0, 0), userB: coarse(0, -0.0101), wantAnonymous: true},
		{name: "exactly at threshold on real coordinates", userA: coarse(12.971, 77.594), userB: coarse(12.981, 77.604), wantAnonymous: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := createTestAnonymityService(t, nil)
			expectLock(deps)

			// Start from the opposite state so a write is always expected.
			conversation := newConversation(!tt.wantAnonymous)

			deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{conversation}, nil)
			deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, conversation.UserAID).Return(tt.userA, nil)
			deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, conversation.UserBID).Return(tt.userB, nil)
			deps.conversationRepo.EXPECT().
				UpdateAnonymity(mock.Anything, conversation.ID, !tt.wantAnonymous, !tt.wantAnonymous, tt.wantAnonymous).
				Return(true, nil)
			deps.publisher.EXPECT().PublishAnonymityChanged(mock.Anything, mock.Anything).Return(nil)

			result, err := svc.RecalculateAll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, result.Updated)
		})
	}
}

func TestAnonymityService_RecalculateAll_LoadFailureIsFatal(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	released := expectLock(deps)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return(nil, errors.New("connection refused"))

	result, err := svc.RecalculateAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONVERSATIONS_LOAD_FAILED", appErr.ErrorCode())
	assert.Equal(t, "connection refused", appErr.Details())
	assert.True(t, *released, "lock is released on fatal errors too")
}

func TestAnonymityService_RecalculateAll_LocationLookupFailureSkipsConversation(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	expectLock(deps)

	broken := newConversation(true)
	healthy := newConversation(true)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{broken, healthy}, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, broken.UserAID).Return(nil, errors.New("timeout"))
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, healthy.UserAID).Return(coarse(12.90, 77.50), nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, healthy.UserBID).Return(coarse(12.90, 77.50), nil)
	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, healthy.ID, true, true, false).Return(true, nil)
	deps.publisher.EXPECT().PublishAnonymityChanged(mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
}

func TestAnonymityService_RecalculateAll_WriteFailureAndConflictAreNotCounted(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	expectLock(deps)

	failing := newConversation(true)
	raced := newConversation(true)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{failing, raced}, nil)
	for _, c := range []*entity.Conversation{failing, raced} {
		deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, c.UserAID).Return(coarse(1, 1), nil)
		deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, c.UserBID).Return(coarse(1, 1), nil)
	}
	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, failing.ID, true, true, false).Return(false, errors.New("deadlock detected"))
	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, raced.ID, true, true, false).Return(false, nil)

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Conflicted)
	deps.publisher.AssertNotCalled(t, "PublishAnonymityChanged", mock.Anything, mock.Anything)
}

func TestAnonymityService_RecalculateAll_PublishFailureStillCounts(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	expectLock(deps)

	conversation := newConversation(true)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{conversation}, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, conversation.UserAID).Return(coarse(1, 1), nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, conversation.UserBID).Return(coarse(1, 1), nil)
	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, conversation.ID, true, true, false).Return(true, nil)
	deps.publisher.EXPECT().PublishAnonymityChanged(mock.Anything, mock.Anything).Return(errors.New("topic not found"))

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
}

func TestAnonymityService_RecalculateAll_LockHeld(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)

	deps.runLock.EXPECT().Acquire(mock.Anything).Return(nil, service.ErrLockHeld)

	result, err := svc.RecalculateAll(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrRecalculationInProgress)
}

func TestAnonymityService_RecalculateAll_CanceledContextStopsLoop(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)
	expectLock(deps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{newConversation(true)}, nil)

	result, err := svc.RecalculateAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Scanned)
}

func TestAnonymityService_RecalculateForUser_SkipsRunLock(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)

	userID := uuid.New()
	conversation := newConversation(false)
	conversation.UserAID = userID

	deps.conversationRepo.EXPECT().FindConversationsByParticipant(mock.Anything, userID).Return([]*entity.Conversation{conversation}, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, userID).Return(&entity.Location{UserID: userID}, nil)
	deps.locationRepo.EXPECT().FindLocationByUserID(mock.Anything, conversation.UserBID).Return(coarse(1, 1), nil)
	deps.conversationRepo.EXPECT().UpdateAnonymity(mock.Anything, conversation.ID, false, false, true).Return(true, nil)
	deps.publisher.EXPECT().PublishAnonymityChanged(mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecalculateForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	deps.runLock.AssertNotCalled(t, "Acquire", mock.Anything)
}

func TestAnonymityService_RecalculateForUser_IgnoresForeignConversations(t *testing.T) {
	svc, deps := createTestAnonymityService(t, nil)

	userID := uuid.New()
	foreign := newConversation(true)

	deps.conversationRepo.EXPECT().FindConversationsByParticipant(mock.Anything, userID).Return([]*entity.Conversation{foreign}, nil)

	result, err := svc.RecalculateForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scanned)
	deps.locationRepo.AssertNotCalled(t, "FindLocationByUserID", mock.Anything, mock.Anything)
}

func TestAnonymityService_LockRows_UsesTransaction(t *testing.T) {
	svc, deps := createTestAnonymityService(t, &config.AnonymityConfig{LockRows: true})
	expectLock(deps)

	stale := newConversation(false)
	current := *stale
	current.IsAnonymousForA = true
	current.IsAnonymousForB = false

	txConversationRepo := mockRepo.NewMockConversationRepository(t)
	txLocationRepo := mockRepo.NewMockLocationRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewConversationRepository().Return(txConversationRepo)
	factory.EXPECT().NewLocationRepository().Return(txLocationRepo)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{stale}, nil)
	deps.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
	txConversationRepo.EXPECT().FindConversationByIDForUpdate(mock.Anything, stale.ID).Return(&current, nil)
	txLocationRepo.EXPECT().FindLocationByUserID(mock.Anything, stale.UserAID).Return(nil, nil)
	txLocationRepo.EXPECT().FindLocationByUserID(mock.Anything, stale.UserBID).Return(nil, nil)
	// The locked row, not the stale listing, drives the compare-and-set.
	txConversationRepo.EXPECT().UpdateAnonymity(mock.Anything, stale.ID, true, false, true).Return(true, nil)
	deps.publisher.EXPECT().PublishAnonymityChanged(mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
}

func TestAnonymityService_LockRows_VanishedConversationIsConflict(t *testing.T) {
	svc, deps := createTestAnonymityService(t, &config.AnonymityConfig{LockRows: true})
	expectLock(deps)

	conversation := newConversation(true)
	txConversationRepo := mockRepo.NewMockConversationRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewConversationRepository().Return(txConversationRepo)

	deps.conversationRepo.EXPECT().FindAllConversations(mock.Anything).Return([]*entity.Conversation{conversation}, nil)
	deps.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
	txConversationRepo.EXPECT().FindConversationByIDForUpdate(mock.Anything, conversation.ID).Return(nil, repository.ErrConversationNotFound)

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conflicted)
	assert.Equal(t, 0, result.Updated)
}

// memoryStore is a stateful stand-in for both repositories, used to check properties
// across consecutive runs.
type memoryStore struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*entity.Conversation
	locations     map[uuid.UUID]*entity.Location
	writes        int
}

func (m *memoryStore) FindAllConversations(_ context.Context) ([]*entity.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entity.Conversation, 0, len(m.conversations))
	for _, c := range m.conversations {
		copied := *c
		out = append(out, &copied)
	}

	return out, nil
}

func (m *memoryStore) FindConversationsByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	all, _ := m.FindAllConversations(ctx)
	out := make([]*entity.Conversation, 0, len(all))
	for _, c := range all {
		if c.Involves(userID) {
			out = append(out, c)
		}
	}

	return out, nil
}

func (m *memoryStore) FindConversationByIDForUpdate(_ context.Context, id uuid.UUID) (*entity.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conversations[id]
	if !ok {
		return nil, repository.ErrConversationNotFound
	}
	copied := *c

	return &copied, nil
}

func (m *memoryStore) UpdateAnonymity(_ context.Context, id uuid.UUID, expectedA, expectedB, target bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conversations[id]
	if !ok || c.IsAnonymousForA != expectedA || c.IsAnonymousForB != expectedB {
		return false, nil
	}
	c.IsAnonymousForA = target
	c.IsAnonymousForB = target
	m.writes++

	return true, nil
}

func (m *memoryStore) FindLocationByUserID(_ context.Context, userID uuid.UUID) (*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.locations[userID], nil
}

func (m *memoryStore) UpsertLocation(_ context.Context, location *entity.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.locations[location.UserID] = location

	return nil
}

func (m *memoryStore) ClearLocation(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	location, ok := m.locations[userID]
	if !ok {
		return repository.ErrLocationNotFound
	}
	location.LatShort = nil
	location.LongShort = nil

	return nil
}

type unlockedRunLock struct{}

func (unlockedRunLock) Acquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

type discardPublisher struct{}

func (discardPublisher) PublishAnonymityChanged(context.Context, *service.AnonymityChangedEvent) error {
	return nil
}

func (discardPublisher) Close() error { return nil }

func TestAnonymityService_RecalculateAll_IsIdempotent(t *testing.T) {
	near := newConversation(true)
	far := newConversation(false)
	unlocated := newConversation(false)

	store := &memoryStore{
		conversations: map[uuid.UUID]*entity.Conversation{
			near.ID:      near,
			far.ID:       far,
			unlocated.ID: unlocated,
		},
		locations: map[uuid.UUID]*entity.Location{
			near.UserAID:      coarse(12.90, 77.50),
			near.UserBID:      coarse(12.905, 77.505),
			far.UserAID:       coarse(12.90, 77.50),
			far.UserBID:       coarse(40.71, -74.00),
			unlocated.UserAID: coarse(12.90, 77.50),
		},
	}

	svc := NewAnonymityService(discardLogger(), &config.Config{}, store, store, nil, discardPublisher{}, unlockedRunLock{})

	first, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Updated)

	second, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 3, store.writes)

	assert.False(t, store.conversations[near.ID].IsAnonymousForA)
	assert.False(t, store.conversations[near.ID].IsAnonymousForB)
	assert.True(t, store.conversations[far.ID].IsAnonymousForA)
	assert.True(t, store.conversations[unlocated.ID].IsAnonymousForB)
}
