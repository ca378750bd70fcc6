package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/config"
	"github.com/yeremiapane/parlor-billing/database"
	"github.com/yeremiapane/parlor-billing/hub"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/router"
	"github.com/yeremiapane/parlor-billing/services"
	"github.com/yeremiapane/parlor-billing/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if _, err := database.EnsureTenant(db, cfg.DefaultTenantID, cfg.DefaultTenantName); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed default tenant: %v", err)
	}

	dashboard := hub.New()
	dashboard.Start()
	defer dashboard.Stop()

	sessions := services.NewSessionService(db, dashboard)
	sessions.TxTimeout = cfg.TxTimeout
	catalogue := services.NewCatalogueService(db, dashboard)
	catalogue.TxTimeout = cfg.TxTimeout

	r := router.SetupRouter(router.Deps{
		Sessions:      sessions,
		Catalogue:     catalogue,
		Hub:           dashboard,
		RateLimiter:   middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		DefaultTenant: cfg.DefaultTenantID,
		CORSOrigin:    cfg.CORSOrigin,
	})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
