package components

import (
	"log/slog"

	"printmarket/internal/infra/notifier"
	"printmarket/internal/infra/objectstore"
	"printmarket/internal/infra/repository"
	"printmarket/internal/pkg/config"
	"printmarket/internal/usecase/commands"
	"printmarket/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// Request (write side and read side share one pgx repository)
		fx.Annotate(
			repository.NewPostgresRequestRepository,
			fx.As(new(commands.RequestRepository)),
			fx.As(new(queries.RequestReadStore)),
		),
		// User
		fx.Annotate(
			repository.NewPostgresUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReadStore)),
		),
		// Notification
		fx.Annotate(
			NewNotifier,
			fx.As(new(commands.NotificationHook)),
		),
		// Object store URL resolution
		fx.Annotate(
			NewURLResolver,
			fx.As(new(queries.FileURLResolver)),
		),
	),
)

func NewNotifier(logger *slog.Logger) *notifier.SlogNotifier {
	return notifier.NewSlogNotifier(logger)
}

func NewURLResolver(cfg config.Config) *objectstore.URLResolver {
	return objectstore.NewURLResolver(cfg.Storage)
}
