package components

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
	"hotel-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(seedAdmin),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewDefaultCalculator,
		fx.As(new(pricing.Calculator)),
	),
	reservation.NewFactory,
	availability.NewChecker,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		func(uow shared.UnitOfWork, c clock.Clock, cfg config.Config) commands.RoomCommands {
			return commands.NewRoomCommands(uow, c, cfg.Pricing.Currency)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
		queries.NewRoomQueries,
		func(
			uow shared.UnitOfWork,
			checker *availability.Checker,
			calc pricing.Calculator,
			c clock.Clock,
			cfg config.Config,
		) queries.AvailabilityQueries {
			return queries.NewAvailabilityQueries(uow, checker, calc, c, cfg.Pricing.TaxPercent)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func seedAdmin(lc fx.Lifecycle, cfg config.Config, cmds commands.AuthCommands, logger *slog.Logger) {
	if !cfg.Admin.Enabled() {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cmds.EnsureUser(ctx, cfg.Admin.Email, cfg.Admin.Password, user.RoleAdmin); err != nil {
				logger.Error("failed to seed admin account", "error", err.Error())
				return err
			}
			return nil
		},
	})
}
