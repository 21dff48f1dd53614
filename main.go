package main

import (
	"log"
	"net/http"
	"os"

	"investment-service/internal/database"
	"investment-service/internal/handlers"
	"investment-service/internal/middleware"
	"investment-service/internal/services"
	"investment-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	authService := services.NewAuthService(db, []byte(jwtSecret))
	walletService := services.NewWalletService(db)
	planService := services.NewPlanService(db)
	investmentService := services.NewInvestmentService(db)
	balanceService := services.NewBalanceService(db)
	settler := worker.NewSettler(asynqClient)
	withdrawalService := services.NewWithdrawalService(db, authService, balanceService, settler)
	dashboardService := services.NewDashboardService(db, balanceService, investmentService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	planHandler := handlers.NewPlanHandler(planService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(walletService, planService, investmentService, withdrawalService, authService)

	// Initialize Gin
	handlers.RegisterValidators()
	r := gin.Default()

	// Static site config for the presentation layer
	siteTitle := os.Getenv("SITE_TITLE")
	if siteTitle == "" {
		siteTitle = "Investment Platform"
	}
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to " + siteTitle, "site_title": siteTitle})
	})

	// Public routes
	r.POST("/api/auth/signup", authHandler.Signup)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/plans", planHandler.List)

	// Authenticated user routes
	user := r.Group("/api", middleware.RequireAuth([]byte(jwtSecret)))
	{
		user.POST("/auth/password", authHandler.ChangePassword)
		user.GET("/profile", authHandler.Profile)
		user.PUT("/profile", authHandler.UpdateProfile)
		user.GET("/dashboard", dashboardHandler.Summary)
		user.POST("/investments", investmentHandler.Create)
		user.GET("/investments", investmentHandler.List)
		user.POST("/withdrawals", withdrawalHandler.Create)
		user.GET("/withdrawals", withdrawalHandler.List)
		user.POST("/withdrawals/:id/cancel", withdrawalHandler.Cancel)
	}

	// Admin routes
	admin := r.Group("/api/admin", middleware.RequireAuth([]byte(jwtSecret)), middleware.RequireAdmin())
	{
		admin.GET("/wallets", adminHandler.ListWallets)
		admin.POST("/wallets", adminHandler.CreateWallet)
		admin.PUT("/wallets/:id", adminHandler.UpdateWallet)

		admin.GET("/plans", adminHandler.ListPlans)
		admin.POST("/plans", adminHandler.CreatePlan)
		admin.PUT("/plans/:id", adminHandler.UpdatePlan)

		admin.GET("/investments", adminHandler.ListInvestments)
		admin.POST("/investments/status", adminHandler.BulkInvestmentStatus)

		admin.GET("/withdrawals", adminHandler.ListWithdrawals)
		admin.POST("/withdrawals/:id/processing", adminHandler.MarkWithdrawalProcessing)
		admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
		admin.POST("/withdrawals/approve", adminHandler.BulkApproveWithdrawals)
		admin.POST("/withdrawals/reject", adminHandler.BulkRejectWithdrawals)
		admin.POST("/withdrawals/disable-users", adminHandler.DisableUserWithdrawals)

		admin.GET("/profiles/:id", adminHandler.GetProfile)
		admin.PUT("/profiles/:id/withdrawal-gate", adminHandler.UpdateWithdrawalGate)
	}

	// Start Cron Scheduler for the daily accrual sweep
	worker.StartAccrualScheduler(asynqClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
