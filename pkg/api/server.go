package api

import (
	"context"
	"errors"
	"net/http"

	ledgerhandler "github.com/Roll-Play/votechain/pkg/api/handlers/ledger"
	statushandler "github.com/Roll-Play/votechain/pkg/api/handlers/status"
	"github.com/Roll-Play/votechain/pkg/api/middlewares"
	"github.com/Roll-Play/votechain/pkg/config"
	"github.com/Roll-Play/votechain/pkg/ledger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const StatusPath = "/status"

type Server struct {
	app    *echo.Echo
	port   string
	logger *zap.Logger
}

func (s *Server) Listen() error {
	s.logger.Info("Starting server", zap.String("address", s.port))
	if err := s.app.Start(s.port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) Address() string {
	return s.port
}

func normalizePort(port string) string {
	if port == "" {
		port = config.DefaultPort
	}

	if port[0] != ':' {
		return ":" + port
	}

	return port
}

func NewServer(cfg *config.Config, chain *ledger.Chain, logger *zap.Logger) *Server {
	app := echo.New()
	app.HideBanner = true
	app.HidePort = true

	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middlewares.ZapLogger(logger, StatusPath))
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	server := &Server{
		app:    app,
		port:   normalizePort(cfg.Port),
		logger: logger,
	}

	registerRoutes(server, cfg, chain)
	return server
}

func registerRoutes(server *Server, cfg *config.Config, chain *ledger.Chain) {
	server.app.GET(StatusPath, statushandler.StatusHandler)

	h := ledgerhandler.New(chain, server.logger)
	server.app.GET("/blockchain", h.GetBlockchain)
	server.app.GET("/validate", h.GetValidate)
	server.app.GET("/stats", h.GetStats)

	var voteMiddleware []echo.MiddlewareFunc
	if cfg.JWTSecret != "" {
		voteMiddleware = append(voteMiddleware, middlewares.VoterAuth(cfg.JWTSecret, server.logger))
	}
	server.app.POST("/vote", h.PostVote, voteMiddleware...)
}
