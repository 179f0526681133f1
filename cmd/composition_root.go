package cmd

import (
	"context"
	"log/slog"

	"tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/jwtidentity"
	"tracker/internal/adapters/out/metrics"
	"tracker/internal/adapters/out/postgres"
	"tracker/internal/adapters/out/postgres/packagerepo"
	"tracker/internal/adapters/out/postgres/statusrecordrepo"
	trackingredis "tracker/internal/adapters/out/redis"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	packages   *packagerepo.GormPackageRepository
	records    *statusrecordrepo.GormStatusRecordRepository
	policy     services.AuthorizationPolicy
	cache      ports.TrackingCache
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which
// case tracking lookups always read from the database.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	packages, records := postgres.NewReadRepositories(gormDB)
	registry := prometheus.NewRegistry()

	var cache ports.TrackingCache = noTrackingCache{}
	if redisClient != nil {
		var opts []trackingredis.Option
		if configs.TrackingCacheTTL > 0 {
			opts = append(opts, trackingredis.WithTTL(configs.TrackingCacheTTL))
		}
		cache = trackingredis.NewTrackingCache(redisClient, logger, opts...)
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		packages:   packages,
		records:    records,
		policy:     services.NewAuthorizationPolicy(),
		cache:      cache,
		registry:   registry,
		metrics:    metrics.New(registry),
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	return commands.NewCreatePackageCommandHandler(c.uow(), c.policy, c.metrics)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.uow(), c.policy, c.cache, c.metrics)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.uow(), c.policy, c.cache, c.metrics)
}

func (c *CompositionRoot) CreateSoftDeletePackageCommandHandler() commands.SoftDeletePackageCommandHandler {
	return commands.NewSoftDeletePackageCommandHandler(c.uow(), c.policy, c.cache, c.metrics)
}

func (c *CompositionRoot) CreateRestorePackageCommandHandler() commands.RestorePackageCommandHandler {
	return commands.NewRestorePackageCommandHandler(c.uow(), c.policy, c.cache, c.metrics)
}

func (c *CompositionRoot) CreateGetPackageQueryHandler() queries.GetPackageQueryHandler {
	return queries.NewGetPackageQueryHandler(c.packages, c.records, c.policy)
}

func (c *CompositionRoot) CreateListPackagesQueryHandler() queries.ListPackagesQueryHandler {
	return queries.NewListPackagesQueryHandler(c.packages, c.policy)
}

func (c *CompositionRoot) CreateListDeletedPackagesQueryHandler() queries.ListDeletedPackagesQueryHandler {
	return queries.NewListDeletedPackagesQueryHandler(c.packages, c.policy)
}

func (c *CompositionRoot) CreateTrackPackageQueryHandler() queries.TrackPackageQueryHandler {
	return queries.NewTrackPackageQueryHandler(c.packages, c.records, c.policy, c.cache)
}

func (c *CompositionRoot) CreateGetStatusRecordsQueryHandler() queries.GetStatusRecordsQueryHandler {
	return queries.NewGetStatusRecordsQueryHandler(c.packages, c.records, c.policy)
}

func (c *CompositionRoot) CreateCountPackagesByStatusQueryHandler() queries.CountPackagesByStatusQueryHandler {
	return queries.NewCountPackagesByStatusQueryHandler(c.packages)
}

func (c *CompositionRoot) CreateIdentityProvider() ports.IdentityProvider {
	return jwtidentity.NewProvider(c.configs.JWTSecret, c.configs.JWTIssuer)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreatePackage: c.CreateCreatePackageCommandHandler(),
		UpdateStatus:  c.CreateUpdateStatusCommandHandler(),
		AssignCourier: c.CreateAssignCourierCommandHandler(),
		SoftDelete:    c.CreateSoftDeletePackageCommandHandler(),
		Restore:       c.CreateRestorePackageCommandHandler(),
		GetPackage:    c.CreateGetPackageQueryHandler(),
		ListPackages:  c.CreateListPackagesQueryHandler(),
		ListDeleted:   c.CreateListDeletedPackagesQueryHandler(),
		TrackPackage:  c.CreateTrackPackageQueryHandler(),
		StatusRecords: c.CreateGetStatusRecordsQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return http.NewRouter(c.CreateHTTPServer(), http.RouterConfig{
		Identity: c.CreateIdentityProvider(),
		Observer: c.metrics,
		Gatherer: c.registry,
		Logger:   c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCountPackagesByStatusQueryHandler(),
		c.metrics,
		c.configs.StatusGaugeSchedule,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type noTrackingCache struct{}

func (noTrackingCache) Get(context.Context, kernel.TrackingCode) (ports.TrackingSnapshot, bool) {
	return ports.TrackingSnapshot{}, false
}

func (noTrackingCache) Set(context.Context, ports.TrackingSnapshot) {}

func (noTrackingCache) Invalidate(context.Context, kernel.TrackingCode) {}
