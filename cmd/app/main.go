package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airadmin/api"
	"github.com/Domenick1991/airadmin/config"
	"github.com/Domenick1991/airadmin/internal/bootstrap"
	"github.com/Domenick1991/airadmin/internal/cache"
	"github.com/Domenick1991/airadmin/internal/kafka"
	"github.com/Domenick1991/airadmin/internal/logger"
	"github.com/Domenick1991/airadmin/internal/repository"
	"github.com/Domenick1991/airadmin/internal/service/booking"
	"github.com/Domenick1991/airadmin/internal/service/dashboard"
	"github.com/Domenick1991/airadmin/internal/service/events"
	"github.com/Domenick1991/airadmin/internal/service/flights"
	"github.com/Domenick1991/airadmin/internal/service/health"
	"github.com/Domenick1991/airadmin/internal/service/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, syncLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer syncLog()

	if err := run(cfg, logg); err != nil {
		logg.Error("server error", zap.Error(err))
		syncLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}
	if cfg.Database.Seed {
		seeded, err := db.Seed(ctx)
		if err != nil {
			return err
		}
		if seeded {
			logg.Info("seeded default data")
		}
	}

	var emitterOpts []events.Option
	var dashboardOpts []dashboard.Option
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logg.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			emitterOpts = append(emitterOpts, events.WithCache(redisCache))
			dashboardOpts = append(dashboardOpts, dashboard.WithCache(redisCache))
		}
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logg.Named("kafka"))
		defer producer.Close()
		emitterOpts = append(emitterOpts, events.WithProducer(producer, cfg.Kafka.AuditTopic))
	}
	emitter := events.NewEmitter(logg.Named("events"), emitterOpts...)

	flightRepo := repository.NewFlightRepository(db)
	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	pageSize := cfg.Pagination.PageSize
	flightService := flights.NewFlightService(flightRepo,
		flights.WithEvents(emitter), flights.WithPageSize(pageSize))
	userService := users.NewUserService(userRepo,
		users.WithEvents(emitter), users.WithPageSize(pageSize))
	bookingService := booking.NewBookingService(bookingRepo, userRepo, flightRepo,
		booking.WithEvents(emitter), booking.WithPageSize(pageSize))
	dashboardService := dashboard.NewDashboardService(db, bookingRepo, logg.Named("dashboard"), dashboardOpts...)
	checker := health.NewChecker(db)

	actor, err := userService.ResolveActor(ctx, cfg.Admin.Email)
	if err != nil {
		return err
	}
	logg.Info("acting as", zap.Int64("user_id", actor.UserID), zap.String("name", actor.Name))

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(logg.Named("http"), actor,
		api.NewDashboardHandler(dashboardService, checker),
		api.NewFlightHandler(flightService),
		api.NewUserHandler(userService),
		api.NewBookingHandler(bookingService),
	)

	return bootstrap.Run(ctx, cfg, router, checker, logg)
}
