package service

import (
	"github.com/eventshuffle/backend/internal/dates"
	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/repository"
)

type Services interface {
	Event() EventService
}

type services struct {
	eventService EventService
}

func NewServices(repositories repository.Repositories, config dto.Config) Services {
	codec := dates.NewCodec(config.DateFormat)
	return &services{
		eventService: newEventService(repositories, codec),
	}
}

func (s services) Event() EventService {
	return s.eventService
}
