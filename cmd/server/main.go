package main

import (
	"context"
	"errors"
	"fmt"
	"go-gin-ticket-inventory/config"
	"go-gin-ticket-inventory/internal/cache"
	"go-gin-ticket-inventory/internal/database"
	"go-gin-ticket-inventory/internal/handler"
	"go-gin-ticket-inventory/internal/ledger"
	"go-gin-ticket-inventory/internal/queue"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/internal/resolver"
	"go-gin-ticket-inventory/internal/service"
	"go-gin-ticket-inventory/internal/worker"
	"go-gin-ticket-inventory/pkg/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to a .env file loaded before reading the environment")
	createSchema := pflag.Bool("create-schema", false, "create tables and indexes if they do not exist")
	pflag.Parse()

	cfg := config.LoadConfig(*envFile)
	logger.SetLevel(cfg.LogLevel)
	defer logger.Sync()

	log := logger.WithComponent("server")
	if err := run(cfg, *createSchema); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, createSchema bool) error {
	log := logger.WithComponent("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	db := database.NewBunDB(pool)
	defer db.Close()

	if createSchema {
		if err := database.CreateSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		log.Info("schema ready")
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer rdb.Close()

	auditQueue, err := newAuditQueue(cfg.Audit, rdb)
	if err != nil {
		return fmt.Errorf("failed to initialize audit queue: %w", err)
	}
	defer auditQueue.Close()

	// Repositories
	performanceRepo := repository.NewPerformanceRepository()
	kindRepo := repository.NewVoucherKindRepository()
	offerRepo := repository.NewOfferRepository()
	customerRepo := repository.NewCustomerRepository()
	unitRepo := repository.NewInventoryUnitRepository()
	txnRepo := repository.NewTxnRepository()

	// Inventory core
	holds := cache.NewRedisHoldCounter(rdb, cfg.Lock.TTL)
	locker := cache.NewRedisPerformanceLocker(rdb, cfg.Lock)
	capacityLedger := ledger.NewCapacityLedger(unitRepo, holds)
	offerResolver := resolver.NewResolver(kindRepo, performanceRepo, capacityLedger, time.Now)

	allocationService := service.NewAllocationService(db, offerRepo, kindRepo, customerRepo, performanceRepo, unitRepo, offerResolver, capacityLedger, locker, auditQueue)
	transferService := service.NewTransferService(db, unitRepo, offerRepo, kindRepo, customerRepo, performanceRepo, offerResolver, capacityLedger, locker, auditQueue)
	boxOffice := service.NewBoxOfficeService(db, offerRepo, customerRepo, performanceRepo, offerResolver, capacityLedger, allocationService, transferService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	handler.NewOfferHandler(boxOffice).RegisterRoutes(router)
	handler.NewPurchaseHandler(boxOffice).RegisterRoutes(router)
	handler.NewUnitHandler(boxOffice).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.NewAuditWorker(db, txnRepo, auditQueue).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newAuditQueue(cfg config.AuditConfig, rdb *redis.Client) (queue.AuditQueue, error) {
	switch cfg.Backend {
	case config.AuditBackendKafka:
		return queue.NewKafkaAuditQueue(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
	case config.AuditBackendRedis, "":
		return queue.NewRedisStreamAuditQueue(rdb, cfg.StreamKey, "", nil)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Backend)
	}
}
