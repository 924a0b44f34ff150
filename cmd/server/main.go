package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"beezen/internal/client/zendesk"
	"beezen/internal/config"
	cronrunner "beezen/internal/cron"
	"beezen/internal/db"
	"beezen/internal/handler"
	"beezen/internal/logger"
	gormrepository "beezen/internal/repository/gorm"
	"beezen/internal/service"

	_ "beezen/docs"
)

func main() {
	cfgPath := os.Getenv("BZ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BZ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	zendeskHTTP := &http.Client{Timeout: cfg.Zendesk.Timeout}
	zendeskClient := zendesk.NewClient(zendeskHTTP)
	store := gormrepository.New(dbConn.Gorm)

	syncCache := service.NewResultCache(cfg.DeltaSync.CacheTTL, nil)
	deltaService := &service.DeltaSyncService{
		Store:          store,
		Zendesk:        zendeskClient,
		Logger:         logger,
		PageSize:       cfg.Zendesk.PageSize,
		MaxPages:       cfg.DeltaSync.MaxPages,
		FallbackWindow: cfg.DeltaSync.FallbackWindow,
		Cache:          syncCache,
	}
	staffService := &service.StaffSyncService{
		Store:   store,
		Zendesk: zendeskClient,
		Logger:  logger,
		Cache:   syncCache,
	}
	queryService := &service.TicketQueryService{Repo: store, RowCap: cfg.DeltaSync.TicketRowCap}
	statsService := &service.StatsService{Repo: store, RowCap: cfg.DeltaSync.TicketRowCap}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	syncHandler := &handler.SyncHandler{
		Delta:  deltaService,
		Staff:  staffService,
		Repo:   store,
		Logger: logger,
	}
	syncHandler.Register(engine)
	ticketHandler := &handler.TicketHandler{
		Query:  queryService,
		Stats:  statsService,
		Logger: logger,
	}
	ticketHandler.Register(engine)
	agentHandler := &handler.AgentHandler{Zendesk: zendeskClient, Logger: logger}
	agentHandler.Register(engine)
	proxyHandler := &handler.ProxyHandler{HTTPClient: zendeskHTTP, Logger: logger}
	proxyHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && len(cfg.Instances) > 0 {
		registerSyncJobs(cronRunner, cfg, deltaService, staffService, logger)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func registerSyncJobs(runner *cronrunner.Runner, cfg config.Config, delta *service.DeltaSyncService, staff *service.StaffSyncService, logger *zap.Logger) {
	instances := cfg.Instances
	_, err := runner.Add("delta-sync", cfg.Cron.DeltaSync, func(ctx context.Context) {
		for _, instance := range instances {
			result, err := delta.Sync(ctx, service.SyncOptions{
				InstanceID:  instance.ID,
				Domain:      instance.Domain,
				Credentials: zendesk.Credentials{Email: instance.Email, Token: instance.Token},
			})
			if err != nil {
				logger.Warn("cron delta sync failed", zap.String("instance", instance.ID), zap.Error(err))
				continue
			}
			logger.Info("cron delta sync ok",
				zap.String("instance", instance.ID),
				zap.Int("pages", result.Pages),
				zap.Int("synced", result.Synced),
				zap.Bool("has_more", result.HasMore),
				zap.Int64("watermark", result.LastTimestamp),
			)
		}
	})
	if err != nil {
		logger.Warn("cron register delta sync failed", zap.Error(err))
	}

	_, err = runner.Add("staff-sync", cfg.Cron.StaffSync, func(ctx context.Context) {
		for _, instance := range instances {
			result, err := staff.Sync(ctx, instance.ID, instance.Domain,
				zendesk.Credentials{Email: instance.Email, Token: instance.Token})
			if err != nil {
				logger.Warn("cron staff sync failed", zap.String("instance", instance.ID), zap.Error(err))
				continue
			}
			logger.Info("cron staff sync ok",
				zap.String("instance", instance.ID),
				zap.Int("count", result.Count),
			)
		}
	})
	if err != nil {
		logger.Warn("cron register staff sync failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Zendesk-Email,X-Zendesk-Token,X-OpenAI-Key")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
