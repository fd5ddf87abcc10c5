package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-record-manager/config"
	"user-record-manager/internal/application/ports"
	"user-record-manager/internal/application/services"
	domain "user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/db/mongodb"
	mongouser "user-record-manager/internal/infrastructure/db/mongodb/user"
	"user-record-manager/internal/infrastructure/db/postgres"
	pguser "user-record-manager/internal/infrastructure/db/postgres/user"
	"user-record-manager/internal/infrastructure/hasher"
	"user-record-manager/internal/infrastructure/jwt"
	"user-record-manager/internal/infrastructure/metrics"
	"user-record-manager/internal/infrastructure/mq"
	"user-record-manager/internal/interface/api/rest"
	"user-record-manager/internal/interface/api/rest/middleware"
	"user-record-manager/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	mongo      *mongo.Client
	userRepo   domain.Repository
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mHash      prometheus.Histogram
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config; a missing .env is fine when the environment is already set
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}
	if cfg.Token.Secret == "" {
		logger.Warn("ACCESS_TOKEN_SECRET is empty, login will fail until it is set")
	}

	// metrics
	mCounter := metrics.NewCounter()
	mHash := metrics.NewHashDuration()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a := &App{
		logger:   logger,
		cfg:      cfg,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
		mHash:    mHash,
	}

	// storage
	switch cfg.App.StorageDriver {
	case config.StorageMongo:
		uri, err := cfg.MongoURI()
		if err != nil {
			logger.Fatal("Mongo config error", zap.Error(err))
		}
		a.mongo, err = mongodb.New(ctx, logger, uri)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
		db := a.mongo.Database(cfg.Mongo.Database)
		if err = mongodb.EnsureIndexes(ctx, logger, db); err != nil {
			logger.Fatal("failed to prepare mongo", zap.Error(err))
		}
		a.userRepo = mongouser.NewRepository(db)
	default:
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			logger.Fatal("DB config error", zap.Error(err))
		}
		a.db, err = postgres.New(ctx, logger, dbDsn)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err = postgres.Migrate(ctx, logger, a.db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		a.userRepo = pguser.NewRepository(a.db)
	}

	// rabbitMQ is optional: without it user events are simply not published
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Warn("RabbitMQ disabled", zap.Error(err))
		return a, nil
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	//rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}
	a.mq = rbMQ
	a.mqConsumer = rmqConsumer

	return a, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.mongo.Disconnect(ctx)
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run launches the http server and the mq workers under one context and
// shuts them down together.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name,
			zap.String("addr", a.httpSrv.Addr),
			zap.String("storage", a.cfg.App.StorageDriver),
		)
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// record manager
	records := services.NewRecordManager(hasher.NewBcrypt(hasher.DefaultCost, a.mHash), jwt.NewSigner())

	// services
	jwtService := jwt.New(a.cfg.Token.Secret)
	authService := services.NewAuthService(records, a.cfg.Token)
	userService := services.NewUserService(a.userRepo, records, a.mq, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService)
	rest.NewUserController(a.router, userService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
