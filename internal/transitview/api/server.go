package api

import (
	"context"
	"errors"
	"time"

	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview"
	"github.com/citytransit-view/pkg/transit/models"
	"github.com/gofiber/fiber/v2"
)

// TransitView is the read and write surface the API exposes
type TransitView interface {
	State() transitview.State
	Status() transitview.Status
	Vehicles(query string) []models.Vehicle
	Vehicle(id string) (models.Vehicle, bool)
	Stops() []models.Stop
	Stop(id string) (models.Stop, bool)
	StopArrivals(id string) ([]models.ArrivalPrediction, error)
	Board() (models.Stop, []models.ArrivalPrediction, bool)
	SetQuery(query string)
	SetMode(mode string) error
	SelectStop(id string) error
	ClearSelection()
}

type Server struct {
	app    *fiber.App
	view   TransitView
	logger logger.Logger
	now    func() time.Time
}

func NewServer(view TransitView, log logger.Logger) *Server {
	s := &Server{
		view:   view,
		logger: log,
		now:    time.Now,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.app.Use(requestLogger(log))

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	group := s.app.Group("/api")
	s.viewRouter(group.Group("/view"))
	s.vehiclesRouter(group.Group("/vehicles"))
	s.stopsRouter(group.Group("/stops"))
	group.Get("/status", s.getStatus)
	group.Get("/board", s.getBoard)

	return s
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP API listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
