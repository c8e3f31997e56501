package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/parking-dashboard/internal/config"
	"github.com/parking-dashboard/internal/delivery/http/handler"
	"github.com/parking-dashboard/internal/delivery/http/middleware"
	"github.com/parking-dashboard/internal/pkg/errors"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"github.com/parking-dashboard/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker - проверка доступности данных для /health
type HealthChecker interface {
	Loaded() bool
	LoadedAt() time.Time
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	health   HealthChecker

	// Handlers
	dashboardHandler  *handler.DashboardHandler
	lotHandler        *handler.LotHandler
	congestionHandler *handler.CongestionHandler
	statsHandler      *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	health HealthChecker,
	dashboardHandler *handler.DashboardHandler,
	lotHandler *handler.LotHandler,
	congestionHandler *handler.CongestionHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Parking Dashboard",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		UnescapePath: true,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		metrics:           m,
		gatherer:          gatherer,
		health:            health,
		dashboardHandler:  dashboardHandler,
		lotHandler:        lotHandler,
		congestionHandler: congestionHandler,
		statsHandler:      statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger, s.metrics))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	// Дашборд; без шаблонов остается только JSON API
	if s.dashboardHandler != nil {
		s.app.Get("/", s.dashboardHandler.RenderDashboard)
	} else {
		s.app.Get("/", func(c *fiber.Ctx) error {
			return c.Redirect("/swagger/index.html")
		})
	}

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.healthCheck)

	// Lots
	api.Get("/options", s.lotHandler.GetOptions)
	api.Get("/lots", s.lotHandler.ListLots)

	// Congestion
	api.Get("/lots/:id/congestion/:weekday/chart.png", s.congestionHandler.GetChart)
	api.Get("/lots/:id/congestion/:weekday", s.congestionHandler.GetSeries)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// healthCheck godoc
// @Summary Health check
// @Description Состояние сервиса и время загрузки данных
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) healthCheck(c *fiber.Ctx) error {
	if !s.health.Loaded() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "loading",
			"time":   time.Now(),
		})
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"time":      time.Now(),
		"loaded_at": s.health.LoadedAt(),
	})
}

// App - доступ к fiber приложению (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    httpErrorCode(code),
				"message": err.Error(),
			},
		})
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
