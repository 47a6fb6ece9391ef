package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/laujml/la-cuponera/internal/pkg/config"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/internal/pkg/registry"
	"github.com/laujml/la-cuponera/pkg/cache"
	"github.com/laujml/la-cuponera/pkg/database"
	"github.com/laujml/la-cuponera/pkg/logger"
	"github.com/laujml/la-cuponera/pkg/metrics"

	// Modules register themselves on import.
	_ "github.com/laujml/la-cuponera/internal/domain/category"
	_ "github.com/laujml/la-cuponera/internal/domain/common"
	_ "github.com/laujml/la-cuponera/internal/domain/coupon"
	_ "github.com/laujml/la-cuponera/internal/domain/offer"
	_ "github.com/laujml/la-cuponera/internal/domain/purchase"
	_ "github.com/laujml/la-cuponera/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()
	cacheService := cache.NewRedisCache(rdb)
	collector := metrics.GetGlobalCollector()

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	poolMonitorStop := make(chan struct{})
	collector.StartPoolMonitor(sqlDB, 15*time.Second, poolMonitorStop)

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	if origins := config.GlobalConfig.App.CORSOrigins; len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	moduleCtx := &registry.ModuleContext{
		DB:      db,
		Redis:   rdb,
		Cache:   cacheService,
		Metrics: collector,
		Router:  router,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to initialize modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")
	close(poolMonitorStop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}
