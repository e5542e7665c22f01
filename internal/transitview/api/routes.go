package api

import (
	"errors"
	"strings"

	"github.com/citytransit-view/internal/transitview/store"
	"github.com/gofiber/fiber/v2"
)

type queryRequest struct {
	Query string `json:"query"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type selectStopRequest struct {
	StopID string `json:"stopId"`
}

func (s *Server) viewRouter(router fiber.Router) {
	router.Get("/", s.getView)
	router.Put("/query", s.putQuery)
	router.Put("/mode", s.putMode)
	router.Put("/selected-stop", s.putSelectedStop)
	router.Delete("/selected-stop", s.deleteSelectedStop)
}

func (s *Server) vehiclesRouter(router fiber.Router) {
	router.Get("/", s.listVehicles)
	router.Get("/:id", s.getVehicle)
}

func (s *Server) stopsRouter(router fiber.Router) {
	router.Get("/", s.listStops)
	router.Get("/:id", s.getStop)
	router.Get("/:id/arrivals", s.getStopArrivals)
}

func (s *Server) getView(c *fiber.Ctx) error {
	return c.JSON(presentState(s.view.State(), s.now()))
}

func (s *Server) putQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	s.view.SetQuery(req.Query)
	return c.JSON(presentState(s.view.State(), s.now()))
}

func (s *Server) putMode(c *fiber.Ctx) error {
	var req modeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.view.SetMode(req.Mode); err != nil {
		if errors.Is(err, store.ErrUnknownMode) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(presentState(s.view.State(), s.now()))
}

func (s *Server) putSelectedStop(c *fiber.Ctx) error {
	var req selectStopRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.StopID) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "stopId is required")
	}
	if err := s.view.SelectStop(req.StopID); err != nil {
		if errors.Is(err, store.ErrUnknownStop) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(presentState(s.view.State(), s.now()))
}

func (s *Server) deleteSelectedStop(c *fiber.Ctx) error {
	s.view.ClearSelection()
	return c.JSON(presentState(s.view.State(), s.now()))
}

func (s *Server) listVehicles(c *fiber.Ctx) error {
	vehicles := s.view.Vehicles(c.Query("q"))
	return c.JSON(fiber.Map{
		"vehicles": presentVehicles(vehicles),
		"count":    len(vehicles),
	})
}

func (s *Server) getVehicle(c *fiber.Ctx) error {
	v, ok := s.view.Vehicle(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Could not find vehicle matching identifier")
	}
	return c.JSON(presentVehicle(v))
}

func (s *Server) listStops(c *fiber.Ctx) error {
	stops := s.view.Stops()
	out := make([]stopDTO, 0, len(stops))
	for _, stop := range stops {
		out = append(out, presentStop(stop))
	}
	return c.JSON(out)
}

func (s *Server) getStop(c *fiber.Ctx) error {
	stop, ok := s.view.Stop(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Could not find stop matching identifier")
	}
	return c.JSON(presentStop(stop))
}

func (s *Server) getStopArrivals(c *fiber.Ctx) error {
	arrivals, err := s.view.StopArrivals(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrUnknownStop) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(presentArrivals(arrivals))
}

func (s *Server) getStatus(c *fiber.Ctx) error {
	return c.JSON(presentStatus(s.view.Status(), s.now()))
}

func (s *Server) getBoard(c *fiber.Ctx) error {
	stop, arrivals, ok := s.view.Board()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "No stops available")
	}
	return c.JSON(boardDTO{
		Stop:     presentStop(stop),
		Arrivals: presentArrivals(arrivals),
	})
}
