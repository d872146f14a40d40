// Command recalculate runs one anonymity recalculation and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"zenlit/config"
	deliverycontext "zenlit/internal/delivery/context"
	"zenlit/internal/domain/lifecycle"
	"zenlit/internal/infra/lock"
	logs "zenlit/internal/infra/log"
	"zenlit/internal/infra/persistence/postgres"
	"zenlit/internal/infra/pubsub"
	"zenlit/internal/usecase"
	"zenlit/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func main() {
	userFlag := flag.String("user", "", "Only recalculate conversations of this user ID")
	flag.Parse()

	if err := run(*userFlag); err != nil {
		fmt.Fprintf(os.Stderr, "recalculate: %+v\n", err)
		os.Exit(1)
	}
}

func run(userFlag string) error {
	var userID uuid.UUID
	if userFlag != "" {
		parsed, err := uuid.Parse(userFlag)
		if err != nil {
			return errors.Wrap(err, "invalid -user")
		}
		userID = parsed
	}

	var (
		anonymityUC usecase.AnonymityUsecase
		logger      *slog.Logger
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewConversationRepository,
			postgres.NewLocationRepository,
			postgres.NewTransactionManager,
			impl.NewAnonymityService,
		),
		pubsub.Module,
		lock.Module,
		fx.Populate(&anonymityUC, &logger),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start")
	}
	defer func() {
		stopCtx, cancelStop := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancelStop()
		if err := app.Stop(stopCtx); err != nil {
			logger.Warn("Failed to stop cleanly", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	requestID := uuid.NewString()
	runLogger := logger.With(slog.String("request_id", requestID), slog.String("trigger", "cli"))
	ctx = deliverycontext.WithLogger(deliverycontext.WithRequestID(ctx, requestID), runLogger)

	var (
		result *usecase.RecalculationResult
		err    error
	)
	if userID != uuid.Nil {
		result, err = anonymityUC.RecalculateForUser(ctx, userID)
	} else {
		result, err = anonymityUC.RecalculateAll(ctx)
	}
	if err != nil {
		return err
	}

	runLogger.Info("Recalculation complete",
		slog.Int("scanned", result.Scanned),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("conflicted", result.Conflicted),
	)

	return nil
}
