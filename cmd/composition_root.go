package cmd

import (
	"log/slog"

	httpin "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/metrics"
	"tracker/internal/adapters/out/ntfy"
	"tracker/internal/adapters/out/postgres"
	"tracker/internal/adapters/out/redislock"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.ComponentLocker
	metrics    *metrics.TransitionMetrics
	clock      kernel.Clock
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which case
// status changes run without the distributed lock.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *slog.Logger) (CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var locker ports.ComponentLocker
	if redisClient != nil {
		l, err := redislock.NewLocker(redisClient, cfg.LockTTL)
		if err != nil {
			return CompositionRoot{}, err
		}
		locker = l
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		metrics:    metrics.NewTransitionMetrics(),
		clock:      kernel.NewSystemClock(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateLifecycleEngine() services.LifecycleEngine {
	return services.NewLifecycleEngine(c.clock, services.NewNotificationRules(c.cfg.LinkBaseURL, nil))
}

func (c *CompositionRoot) CreateNotificationDispatcher() ports.NotificationDispatcher {
	return ntfy.NewDispatcher(ntfy.Config{
		BaseURL:     c.cfg.NtfyURL,
		TopicPrefix: c.cfg.NtfyTopicPrefix,
		Token:       c.cfg.NtfyToken,
	})
}

func (c *CompositionRoot) CreateCreateComponentCommandHandler() commands.CreateComponentCommandHandler {
	var f commands.ComponentUoWFactory = FuncComponentUoWFactory(func() commands.ComponentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateComponentCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeComponentStatusCommandHandler() commands.ChangeComponentStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeComponentStatusCommandHandler(f, c.CreateLifecycleEngine(), c.locker, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateAssignTreatmentsCommandHandler() commands.AssignTreatmentsCommandHandler {
	var f commands.ComponentUoWFactory = FuncComponentUoWFactory(func() commands.ComponentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignTreatmentsCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.CreateNotificationDispatcher(), c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateGetComponentQueryHandler() queries.GetComponentQueryHandler {
	return queries.NewGetComponentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkOrderComponentsQueryHandler() queries.GetWorkOrderComponentsQueryHandler {
	return queries.NewGetWorkOrderComponentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpin.NewServer(
		c.CreateCreateComponentCommandHandler(),
		c.CreateChangeComponentStatusCommandHandler(),
		c.CreateAssignTreatmentsCommandHandler(),
		c.CreateGetComponentQueryHandler(),
		c.CreateGetWorkOrderComponentsQueryHandler(),
		c.logger,
	)
	return httpin.NewRouter(server, c.metrics.Handler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchNotificationsCommandHandler(),
		c.cfg.DispatchSchedule,
		c.cfg.DispatchBatchSize,
		c.logger,
	)
}

type FuncComponentUoWFactory func() commands.ComponentUoW

func (f FuncComponentUoWFactory) Create() commands.ComponentUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
