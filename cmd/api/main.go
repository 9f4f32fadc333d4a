package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crazypaisa-backend/internal/config"
	"crazypaisa-backend/internal/handlers"
	"crazypaisa-backend/internal/middleware"
	"crazypaisa-backend/internal/monitoring"
	"crazypaisa-backend/internal/services"
	"crazypaisa-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	monitoring.Init()

	sessionService, err := services.NewSessionService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer sessionService.Close()

	jwtService := services.NewJWTService(cfg)

	st := store.NewGitHubStore(cfg.StoreToken, cfg.UsersFileURL, cfg.TransactionsURL)

	balanceService := services.NewBalanceService(st)
	accountService := services.NewAccountService(st, services.PlaintextVerifier{})
	referralService := services.NewReferralService(st)
	depositService := services.NewDepositService(st)
	notifier := services.NewDiscordNotifier(cfg.DiscordWebhookURL)

	gameEngine := services.NewGameService(balanceService, notifier)

	wsHandler := handlers.NewWebSocketHandler(gameEngine, balanceService)
	gameEngine.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(accountService, sessionService, jwtService)
	userHandler := handlers.NewUserHandler(balanceService, accountService, referralService, depositService, sessionService, gameEngine)
	gameHandler := handlers.NewGameHandler(gameEngine)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(sessionService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", userHandler.Logout)
		protected.PUT("/winning-chances", userHandler.UpdateWinningChances)
		protected.GET("/referrals", userHandler.GetReferralStats)
		protected.POST("/deposits", userHandler.CreateDeposit)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		games := protected.Group("/games")
		{
			blackjack := games.Group("/blackjack")
			{
				blackjack.POST("/start", gameHandler.StartBlackjack)
				blackjack.POST("/hit", gameHandler.HitBlackjack)
				blackjack.POST("/stand", gameHandler.StandBlackjack)
			}

			limbo := games.Group("/limbo")
			{
				limbo.POST("/play", gameHandler.PlayLimbo)
				limbo.POST("/stop", gameHandler.StopLimbo)
			}

			mines := games.Group("/mines")
			{
				mines.POST("/start", gameHandler.StartMines)
				mines.POST("/reveal", gameHandler.RevealMines)
				mines.POST("/withdraw", gameHandler.WithdrawMines)
			}
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
