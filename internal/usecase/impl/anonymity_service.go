package impl

import (
	"context"
	"log/slog"
	"time"

	"zenlit/config"
	deliverycontext "zenlit/internal/delivery/context"
	"zenlit/internal/domain/entity"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/domain/repository"
	"zenlit/internal/domain/service"
	"zenlit/internal/errors"
	"zenlit/internal/usecase"

	"github.com/google/uuid"
)

// errLocationLookup marks a failed participant location read inside a transaction.
var errLocationLookup = errors.New("location lookup failed")

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeUpdated
	outcomeSkipped
	outcomeConflicted
)

type conversationLoader func(ctx context.Context) ([]*entity.Conversation, error)

type anonymityService struct {
	logger           *slog.Logger
	cfg              *config.AnonymityConfig
	policy           entity.AnonymityPolicy
	conversationRepo repository.ConversationRepository
	locationRepo     repository.LocationRepository
	txManager        repository.TransactionManager
	publisher        service.EventPublisher
	runLock          service.RunLock
}

// NewAnonymityService creates the anonymity recalculator
func NewAnonymityService(
	logger *slog.Logger,
	cfg *config.Config,
	conversationRepo repository.ConversationRepository,
	locationRepo repository.LocationRepository,
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	runLock service.RunLock,
) usecase.AnonymityUsecase {
	anonymityCfg := cfg.Anonymity
	if anonymityCfg == nil {
		anonymityCfg = &config.AnonymityConfig{}
	}

	return &anonymityService{
		logger:           logger,
		cfg:              anonymityCfg,
		policy:           entity.NewAnonymityPolicy(anonymityCfg.NearbyThreshold),
		conversationRepo: conversationRepo,
		locationRepo:     locationRepo,
		txManager:        txManager,
		publisher:        publisher,
		runLock:          runLock,
	}
}

func (s *anonymityService) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// RecalculateAll processes every conversation under the run lock
func (s *anonymityService) RecalculateAll(ctx context.Context) (*usecase.RecalculationResult, error) {
	logger := s.getLogger(ctx).With(slog.String("scope", "all"))

	release, err := s.runLock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, service.ErrLockHeld) {
			return nil, domainerrors.ErrRecalculationInProgress
		}

		return nil, errors.Wrap(err, "failed to acquire recalculation lock")
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			logger.Warn("Failed to release recalculation lock", slog.Any("error", releaseErr))
		}
	}()

	return s.run(ctx, logger, s.conversationRepo.FindAllConversations)
}

// RecalculateForUser processes the conversations of a single participant.
// It does not take the run lock; the conditional write already guards against racing runs.
func (s *anonymityService) RecalculateForUser(ctx context.Context, userID uuid.UUID) (*usecase.RecalculationResult, error) {
	logger := s.getLogger(ctx).With(slog.String("scope", "user"), slog.String("user_id", userID.String()))

	return s.run(ctx, logger, func(ctx context.Context) ([]*entity.Conversation, error) {
		conversations, err := s.conversationRepo.FindConversationsByParticipant(ctx, userID)
		if err != nil {
			return nil, err
		}

		involved := conversations[:0]
		for _, conversation := range conversations {
			if conversation.Involves(userID) {
				involved = append(involved, conversation)
			}
		}

		return involved, nil
	})
}

func (s *anonymityService) run(ctx context.Context, logger *slog.Logger, load conversationLoader) (*usecase.RecalculationResult, error) {
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	start := time.Now()

	conversations, err := load(ctx)
	if err != nil {
		logger.Error("Failed to load conversations", slog.Any("error", err))

		return nil, domainerrors.ErrConversationsLoadFailed.WithDetails(err.Error())
	}

	result := &usecase.RecalculationResult{}
	for _, conversation := range conversations {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("Recalculation interrupted",
				slog.Int("scanned", result.Scanned),
				slog.Int("updated", result.Updated),
				slog.Any("error", ctxErr),
			)

			return result, errors.Wrap(ctxErr, "recalculation interrupted")
		}

		result.Scanned++

		switch s.processConversation(ctx, logger, conversation) {
		case outcomeUpdated:
			result.Updated++
		case outcomeSkipped:
			result.Skipped++
		case outcomeConflicted:
			result.Conflicted++
		case outcomeUnchanged:
		}
	}

	logger.Info("Anonymity recalculation finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("conflicted", result.Conflicted),
		slog.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (s *anonymityService) processConversation(ctx context.Context, logger *slog.Logger, conversation *entity.Conversation) outcome {
	logger = logger.With(slog.String("conversation_id", conversation.ID.String()))

	if s.cfg.LockRows {
		return s.processLocked(ctx, logger, conversation.ID)
	}

	target, err := s.targetFor(ctx, logger, s.locationRepo, conversation)
	if err != nil {
		logger.Debug("Skipping conversation, location lookup failed", slog.Any("error", err))

		return outcomeSkipped
	}

	if conversation.AnonymityMatches(target) {
		return outcomeUnchanged
	}

	updated, err := s.conversationRepo.UpdateAnonymity(ctx, conversation.ID, conversation.IsAnonymousForA, conversation.IsAnonymousForB, target)
	if err != nil {
		logger.Warn("Skipping conversation, anonymity write failed", slog.Any("error", err))

		return outcomeSkipped
	}
	if !updated {
		logger.Info("Conversation changed concurrently, leaving it for the next run")

		return outcomeConflicted
	}

	s.publishChange(ctx, logger, conversation, target)

	return outcomeUpdated
}

// processLocked re-reads the conversation under a row lock so the compare and the write
// see the same state.
func (s *anonymityService) processLocked(ctx context.Context, logger *slog.Logger, id uuid.UUID) outcome {
	var (
		changed *entity.Conversation
		target  bool
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		conversationRepo := factory.NewConversationRepository()

		current, err := conversationRepo.FindConversationByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		target, err = s.targetFor(ctx, logger, factory.NewLocationRepository(), current)
		if err != nil {
			return errors.Join(errLocationLookup, err)
		}

		if current.AnonymityMatches(target) {
			return nil
		}

		updated, err := conversationRepo.UpdateAnonymity(ctx, current.ID, current.IsAnonymousForA, current.IsAnonymousForB, target)
		if err != nil {
			return err
		}
		if !updated {
			return repository.ErrConversationNotFound
		}

		changed = current

		return nil
	})

	switch {
	case err == nil && changed == nil:
		return outcomeUnchanged
	case err == nil:
		s.publishChange(ctx, logger, changed, target)

		return outcomeUpdated
	case errors.Is(err, repository.ErrConversationNotFound):
		logger.Info("Conversation disappeared before it could be locked")

		return outcomeConflicted
	case errors.Is(err, errLocationLookup):
		logger.Debug("Skipping conversation, location lookup failed", slog.Any("error", err))

		return outcomeSkipped
	default:
		logger.Warn("Skipping conversation, locked update failed", slog.Any("error", err))

		return outcomeSkipped
	}
}

// targetFor fetches both participants' locations and applies the policy.
func (s *anonymityService) targetFor(
	ctx context.Context,
	logger *slog.Logger,
	locationRepo repository.LocationRepository,
	conversation *entity.Conversation,
) (bool, error) {
	locationA, err := locationRepo.FindLocationByUserID(ctx, conversation.UserAID)
	if err != nil {
		return true, errors.Wrapf(err, "failed to find location of user_a %s", conversation.UserAID)
	}

	locationB, err := locationRepo.FindLocationByUserID(ctx, conversation.UserBID)
	if err != nil {
		return true, errors.Wrapf(err, "failed to find location of user_b %s", conversation.UserBID)
	}

	if locationA.Usable() && locationB.Usable() {
		logger.Debug("Participants located",
			slog.Float64("approx_distance_m", entity.ApproxDistanceMeters(locationA, locationB)),
			slog.Bool("nearby", s.policy.IsNearby(locationA, locationB)),
		)
	}

	return s.policy.Target(locationA, locationB), nil
}

func (s *anonymityService) publishChange(ctx context.Context, logger *slog.Logger, conversation *entity.Conversation, target bool) {
	event := &service.AnonymityChangedEvent{
		RequestID:       deliverycontext.GetRequestIDFromContext(ctx),
		ConversationID:  conversation.ID.String(),
		UserAID:         conversation.UserAID.String(),
		UserBID:         conversation.UserBID.String(),
		IsAnonymousForA: target,
		IsAnonymousForB: target,
		ChangedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.publisher.PublishAnonymityChanged(ctx, event); err != nil {
		logger.Warn("Failed to publish anonymity change", slog.Any("error", err))
	}
}
