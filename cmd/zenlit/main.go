package main

import (
	"context"
	"log/slog"
	"os"

	"zenlit/config"
	"zenlit/internal/delivery"
	"zenlit/internal/delivery/api"
	"zenlit/internal/delivery/api/middleware"
	"zenlit/internal/delivery/api/router/handler"
	"zenlit/internal/delivery/scheduler"
	"zenlit/internal/infra/auth"
	"zenlit/internal/infra/lock"
	logs "zenlit/internal/infra/log"
	"zenlit/internal/infra/persistence/postgres"
	"zenlit/internal/infra/pubsub"
	"zenlit/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		fx.Annotate(
			newDatabaseHealthChecker,
			fx.ResultTags(`name:"database"`),
		),
	)
}

func newDatabaseHealthChecker(db *gorm.DB) handler.HealthChecker {
	return func(ctx context.Context) error {
		return postgres.Ping(ctx, db)
	}
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewConversationRepository,
			postgres.NewLocationRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
		),
		pubsub.Module,
		lock.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAnonymityService,
			impl.NewLocationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAnonymityHandler,
			handler.NewLocationHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
