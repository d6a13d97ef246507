package router

import (
	"github.com/sayajuli/money-management/internal/config"
	"github.com/sayajuli/money-management/internal/handler"
	"github.com/sayajuli/money-management/internal/middleware"
	"github.com/sayajuli/money-management/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the services and the Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// service graph: assets never call the ledger; the ledger calls assets;
	// debts call the ledger
	assets := service.NewAssetService(db)
	transactions := service.NewTransactionService(db, assets)
	debts := service.NewDebtService(db, transactions)
	budgets := service.NewBudgetService(db, transactions)
	health := service.NewHealthService(db, transactions, assets, debts)
	users := service.NewUserService(db, cfg.Security.BcryptCost)
	reports := service.NewReportService(transactions, cfg.App.Currency)

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(users, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)

	profileHandler := handler.NewProfileHandler(users)
	protected.GET("/me", profileHandler.Me)
	protected.POST("/profile", profileHandler.Update)
	protected.POST("/profile/password", profileHandler.ChangePassword)

	transactionHandler := handler.NewTransactionHandler(transactions, cfg.App.PageSize)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)
	protected.GET("/transactions/categories", transactionHandler.Categories)

	assetHandler := handler.NewAssetHandler(assets, transactions)
	protected.GET("/assets", assetHandler.List)
	protected.POST("/assets", assetHandler.Create)
	protected.GET("/assets/:id", assetHandler.Get)
	protected.PUT("/assets/:id", assetHandler.Update)
	protected.DELETE("/assets/:id", assetHandler.Delete)

	debtHandler := handler.NewDebtHandler(debts, cfg.App.PageSize)
	protected.GET("/debts", debtHandler.List)
	protected.POST("/debts", debtHandler.Create)
	protected.GET("/debts/:id", debtHandler.Get)
	protected.PUT("/debts/:id", debtHandler.Update)
	protected.DELETE("/debts/:id", debtHandler.Delete)
	protected.POST("/debts/:id/pay", debtHandler.Pay)

	budgetHandler := handler.NewBudgetHandler(budgets)
	protected.POST("/budgets", budgetHandler.CreateOrUpdate)
	protected.GET("/budgets", budgetHandler.List)
	protected.GET("/budgets/tracking", budgetHandler.Tracking)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)

	dashboardHandler := handler.NewDashboardHandler(transactions, assets, debts, budgets, health)
	protected.GET("/dashboard", dashboardHandler.Summary)
	protected.GET("/health", dashboardHandler.HealthMetrics)

	reportHandler := handler.NewReportHandler(reports)
	protected.GET("/reports/monthly/xlsx", reportHandler.DownloadXLSX)
	protected.GET("/reports/monthly/csv", reportHandler.DownloadCSV)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/logs", auditHandler.List)

	return r
}
