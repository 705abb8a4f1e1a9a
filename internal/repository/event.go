package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/model"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event model.Event, eventDates []model.EventDate) (model.Event, error)
	GetByID(id uint) (model.Event, []model.EventDate, error)
	GetByName(name string) (model.Event, error)
	List() ([]model.Event, error)
}

type event struct {
	db *gorm.DB
}

func newEventRepository(db *gorm.DB) EventRepository {
	return &event{
		db: db,
	}
}

// Create inserts the event and its candidate dates as one unit. A
// commit-time collision on the unique lowered name surfaces as ErrDuplicate.
func (e *event) Create(event model.Event, eventDates []model.EventDate) (model.Event, error) {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&event); result.Error != nil {
			return result.Error
		}
		for i := range eventDates {
			eventDates[i].EventID = event.ID
		}
		if result := tx.Create(&eventDates); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Event{}, fmt.Errorf("%w: %v", dto.ErrDuplicate, err)
		}
		return model.Event{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	return event, nil
}

func (e *event) GetByID(id uint) (model.Event, []model.EventDate, error) {
	var event model.Event
	result := e.db.First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Event{}, nil, fmt.Errorf("%w: event %d", dto.ErrNotFound, id)
		}
		return model.Event{}, nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	var eventDates []model.EventDate
	result = e.db.Where("event_id = ?", id).Order("date ASC").Find(&eventDates)
	if result.Error != nil {
		return model.Event{}, nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return event, eventDates, nil
}

func (e *event) GetByName(name string) (model.Event, error) {
	var event model.Event
	result := e.db.Where("name_lower = ?", strings.ToLower(name)).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Event{}, fmt.Errorf("%w: event '%s'", dto.ErrNotFound, name)
		}
		return model.Event{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return event, nil
}

func (e *event) List() ([]model.Event, error) {
	var events []model.Event
	result := e.db.Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return events, nil
}
