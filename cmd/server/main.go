package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/killua200817/Bhopal-Bazaar/internal/config"
	"github.com/killua200817/Bhopal-Bazaar/internal/controller"
	"github.com/killua200817/Bhopal-Bazaar/internal/live"
	"github.com/killua200817/Bhopal-Bazaar/internal/middleware"
	"github.com/killua200817/Bhopal-Bazaar/internal/rabbit"
	"github.com/killua200817/Bhopal-Bazaar/internal/repository"
	"github.com/killua200817/Bhopal-Bazaar/internal/service"
	"github.com/killua200817/Bhopal-Bazaar/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	db := client.Database(cfg.MongoDBName)

	// Live order plumbing
	repo := repository.NewMongoOrderRepository(db)
	hub := live.NewHub()

	pollInterval := time.Duration(0)
	if cfg.UsePolling {
		pollInterval = cfg.PollInterval
	}
	panels := live.NewRegistry(repo, hub, logger, pollInterval)

	authService := service.NewAuthService(cfg.AuthURL)

	// The route renderer is an external collaborator (a maps provider);
	// deployments that have one inject it here. Without it the route block
	// still carries distance and ETA text.
	views := view.NewBuilder(nil, logger)

	ctrl := controller.NewOrderController(repo, panels, hub, views, logger)
	ctrl.IngestToken = cfg.IngestToken

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// Public routes
	r.POST("/orders/ingest", ctrl.IngestOrder)

	// Token-protected routes
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(authService))

	auth.GET("/orders/mine", ctrl.GetMyOrders)
	auth.GET("/orders/:orderId", ctrl.GetOrder)
	auth.POST("/orders/:orderId/panel", ctrl.OpenPanel)
	auth.DELETE("/orders/:orderId/panel", ctrl.ClosePanel)
	auth.POST("/orders/:orderId/refresh", ctrl.RefreshOrder)
	auth.GET("/orders/:orderId/contact/:role", ctrl.GetContact)

	// Staff routes
	support := auth.Group("/support")
	support.Use(middleware.SupportOnly())
	support.GET("/orders/:customerId", ctrl.GetCustomerOrders)

	// RabbitMQ push subscription
	if !cfg.UsePolling {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			logger.Fatal("failed to open rabbitmq channel", zap.Error(err))
		}
		rabbit.SetupConsumers(ch, rabbit.NewOrderUpdateConsumer(repo, hub, logger), logger)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("order tracking service listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	panels.CloseAll()
}
