// File: tripplanner/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripplanner/config"
	"tripplanner/cron"
	"tripplanner/database"
	"tripplanner/handlers"
	"tripplanner/middleware"
	"tripplanner/routes"
	"tripplanner/services/planner"
	"tripplanner/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Backend state.
	requestStore := database.NewRequestStore()
	userStore := database.NewUserStore()

	// Planning pipeline. The real generation algorithm plugs in behind
	// planner.Planner; the fixture keeps the system runnable without it.
	processor := &cron.Processor{
		Planner:  planner.FixturePlanner{},
		Requests: requestStore,
		Users:    userStore,
	}

	var dispatcher cron.Dispatcher
	if config.AppConfig.QueueDriver == "asynq" {
		dispatcher = cron.NewAsynqDispatcher()
		cron.InitPlanWorker(processor)
	} else {
		dispatcher = &cron.DirectDispatcher{Processor: processor}
	}

	tripHandler := handlers.NewTripHandler(requestStore, userStore, dispatcher)
	authHandler := handlers.NewAuthHandler(userStore)

	routes.RegisterRoutes(router, authHandler, tripHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
