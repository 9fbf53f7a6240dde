package api

import (
	"time"

	"cargo-service/internal/api/handlers"
	"cargo-service/internal/api/middleware"
	"cargo-service/internal/config"
	"cargo-service/internal/db/queries"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter собирает маршруты сервиса поверх переданного хранилища
func SetupRouter(cfg *config.Config, cargoQueries queries.CargoQueriesInterface, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Создаем экземпляр Gin
	// Recovery стоит последним: ответ 500 после паники тоже логируется,
	// попадает в метрики и получает заголовки CORS
	router := gin.New()
	router.Use(
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.CORS)),
		middleware.Recovery(logger, cfg.IsProduction()),
	)
	router.NoRoute(middleware.NotFound)

	// Создаем обработчики
	cargoHandler := handlers.NewCargoHandler(cargoQueries, logger, cfg.IsProduction())
	healthHandler := handlers.NewHealthHandler(cfg.Environment)

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cargoRoutes := router.Group("/api/cargo")
	{
		cargoRoutes.GET("", cargoHandler.GetAllCargo)
		cargoRoutes.GET("/awaiting", cargoHandler.GetAwaitingCargo)
		cargoRoutes.GET("/history", cargoHandler.GetCargoHistory)
		cargoRoutes.GET("/search", cargoHandler.SearchCargo)
		cargoRoutes.GET("/awb/:awbNumber", cargoHandler.GetCargoByAWB)
		cargoRoutes.GET("/status/:status", cargoHandler.GetCargoByStatus)

		cargoRoutes.POST("", cargoHandler.CreateCargo)
		cargoRoutes.POST("/bulk", cargoHandler.BulkCreateCargo)
		cargoRoutes.PUT("/:awbNumber", cargoHandler.UpdateCargo)
	}

	return router
}

// corsConfig разрешает запросы только перечисленным источникам; "*" разрешает всем
func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}

	corsCfg.AllowOrigins = cfg.AllowedOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}

	return corsCfg
}
