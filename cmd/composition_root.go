package cmd

import (
	"log/slog"
	"time"

	"orderflow/internal/adapters/out/identity"
	"orderflow/internal/adapters/out/notifier"
	"orderflow/internal/adapters/out/payments"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"
	"orderflow/internal/notifications"
	"orderflow/internal/pkg/ratelimit"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use cases together.
// All shared state (database, dispatcher, rate limiter) lives here; handler
// factories hand out cheap per-request values on top of it.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	validator  services.TransitionValidator
	dispatcher *notifications.Dispatcher
	limiter    *ratelimit.ActorLimiter
	identity   *identity.JWTIdentityProvider
	payments   *payments.ManualProvider
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	sender := notifier.NewLogNotifier(logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		validator:  services.NewTransitionValidator(),
		dispatcher: notifications.NewDispatcher(sender, logger, config.NotifyTimeout),
		limiter:    ratelimit.NewActorLimiter(config.RateLimit, config.RateWindow, time.Now),
		identity:   identity.NewJWTIdentityProvider(config.JWTSecret),
		payments:   payments.NewManualProvider(),
		logger:     logger,
	}
}

// TransitionValidator returns the shared transition validator.
func (c *CompositionRoot) TransitionValidator() services.TransitionValidator {
	return c.validator
}

// IdentityProvider returns the shared token verifier.
func (c *CompositionRoot) IdentityProvider() *identity.JWTIdentityProvider {
	return c.identity
}

// RateLimiter returns the shared per-actor request limiter.
func (c *CompositionRoot) RateLimiter() *ratelimit.ActorLimiter {
	return c.limiter
}

// Dispatcher returns the shared side-effect dispatcher.
func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(
		c.createUoWFactory(),
		c.validator,
		c.dispatcher,
		time.Now,
		c.config.LockTimeout,
	)
}

func (c *CompositionRoot) CreateConfirmPaidOrdersCommandHandler() commands.ConfirmPaidOrdersCommandHandler {
	return commands.NewConfirmPaidOrdersCommandHandler(
		c.createUoWFactory(),
		c.payments,
		c.CreateRequestTransitionCommandHandler(),
	)
}

func (c *CompositionRoot) CreateExpireStalePaymentsCommandHandler() commands.ExpireStalePaymentsCommandHandler {
	return commands.NewExpireStalePaymentsCommandHandler(
		c.createUoWFactory(),
		c.CreateRequestTransitionCommandHandler(),
		time.Now,
	)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

// CreateJobManager wires the background sweeps with their schedules.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateConfirmPaidOrdersCommandHandler(),
		c.CreateExpireStalePaymentsCommandHandler(),
		c.limiter,
		jobs.Schedules{
			PaymentConfirmation: c.config.PaymentConfirmationSchedule,
			PaymentExpiry:       c.config.PaymentExpirySchedule,
			PaymentTTL:          c.config.PaymentTTL,
			LimiterPrune:        c.config.LimiterPruneSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
