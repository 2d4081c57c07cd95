package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/delivery/http/v1"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	cfg := config.Global()

	jwtCfg := cfg.JWT
	authService, err := services.NewAuthService(
		globalLogger,
		jwtCfg.Issuer,
		jwtCfg.Audience,
		[]byte(jwtCfg.SigningKey),
		[]byte(jwtCfg.PublicKeyPEM),
	)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create auth service")
		panic(err)
	}

	st := newStorage()
	metrics := v1.NewMetrics()
	v1Handler := v1.New(
		globalLogger,
		authService,
		newUserService(st),
		newTaskService(st),
		st.store,
		metrics,
	)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	router.Use(v1Handler.HandleRequestID, v1Handler.HandleRequestLogger, v1Handler.HandleMetrics)

	router.GET("/actuator/health", v1Handler.HandleHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1.RegisterTaskRoutes(router.Group("/api/v1"), v1Handler)
}
