package controller

import (
	"github.com/eventshuffle/backend/internal/dates"
	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type Controllers interface {
	Event() EventController
	Info() InfoController

	Route(e *echo.Echo)
}

type controllers struct {
	eventController EventController
	infoController  InfoController
}

func NewControllers(services service.Services, config dto.Config) Controllers {
	codec := dates.NewCodec(config.DateFormat)
	return &controllers{
		eventController: newEventController(services.Event(), codec),
		infoController:  newInfoController(),
	}
}

func (c controllers) Event() EventController {
	return c.eventController
}

func (c controllers) Info() InfoController {
	return c.infoController
}

func (c controllers) Route(e *echo.Echo) {
	e.GET("/", c.infoController.Info)

	v1 := e.Group("/api/v1")
	v1.GET("/event/list", c.eventController.ListEvents)
	v1.GET("/event/:id", c.eventController.GetEvent)
	v1.GET("/event/:id/results", c.eventController.GetEventResults)
	v1.POST("/event", c.eventController.CreateEvent)
	v1.POST("/event/:id/vote", c.eventController.SubmitVote)
}
