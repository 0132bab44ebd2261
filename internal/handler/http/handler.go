package http

import (
	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/ratelimit"
	"github.com/notulensi/notulensi-pro/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  *ratelimit.Limiter

	app     config.App
	session config.Session

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *ratelimit.Limiter, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		app:      cfg.App,
		session:  cfg.Session,
		logger:   logger,
	}
}
