package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catering-api/cache"
	"catering-api/config"
	_ "catering-api/docs"
	"catering-api/events"
	"catering-api/logger"
	"catering-api/middleware"
	"catering-api/routes"

	"github.com/gin-gonic/gin"
)

// @title Catering Marketplace API
// @version 1.0
// @description Caterers publish daily menus; customers place time-limited orders against them.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Default = logger.New("catering-api", os.Stdout, slog.LevelDebug)
	}

	config.InitDB()
	cache.Init(cfg.RedisURL, cfg.RedisAddr)
	events.Init(cfg.AMQPURL)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger.Default), middleware.CORS())

	routes.SetupRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Default.Info("server_start", "", "server running",
			slog.String("addr", "http://localhost:"+cfg.Port),
			slog.String("swagger", "http://localhost:"+cfg.Port+"/swagger/index.html"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Default.Error("server_start", "", "failed to start server", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Default.Info("server_shutdown", "", "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Default.Error("server_shutdown", "", "forced shutdown", err)
	}

	if err := events.Bus.Close(); err != nil {
		logger.Default.Warn("server_shutdown", "", "closing event publisher", slog.String("error", err.Error()))
	}
	cache.Close()
	config.CloseDB()
}
