package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eventshuffle/backend/internal/dates"
	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type EventController interface {
	ListEvents(c echo.Context) error
	GetEvent(c echo.Context) error
	GetEventResults(c echo.Context) error
	CreateEvent(c echo.Context) error
	SubmitVote(c echo.Context) error
}

type eventController struct {
	eventService service.EventService
	codec        dates.Codec
}

func newEventController(eventService service.EventService, codec dates.Codec) EventController {
	return &eventController{
		eventService: eventService,
		codec:        codec,
	}
}

func (e *eventController) ListEvents(c echo.Context) error {
	result, err := e.eventService.ListEvents()
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (e *eventController) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := e.eventService.GetEvent(id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (e *eventController) GetEventResults(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := e.eventService.GetEventResults(id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (e *eventController) CreateEvent(c echo.Context) error {
	var input dto.CreateEventInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
	}

	// Malformed dates are a parse failure of the request, rejected before
	// the service sees the input.
	eventDates, err := e.parseDates(input.Dates)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	id, err := e.eventService.CreateEvent(input.Name, eventDates)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CreateEventOutput{ID: id})
}

func (e *eventController) SubmitVote(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	var input dto.CreateVoteInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
	}

	votes, err := e.parseDates(input.Votes)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := e.eventService.SubmitVote(id, input.Name, votes)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (e *eventController) parseDates(values []string) ([]time.Time, error) {
	parsed := make([]time.Time, 0, len(values))
	for _, value := range values {
		date, err := e.codec.Parse(value)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, date)
	}
	return parsed, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.New("Event ID should be a positive number")
	}
	return uint(id), nil
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, dto.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, dto.ErrValidation):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		logrus.Errorf("Request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
