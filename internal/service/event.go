package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/eventshuffle/backend/internal/dates"
	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/model"
	"github.com/eventshuffle/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type EventService interface {
	ListEvents() (dto.GetEventsDTO, error)
	GetEvent(id uint) (dto.GetEventDTO, error)
	GetEventResults(id uint) (dto.GetEventResultsDTO, error)
	CreateEvent(name string, rawDates []time.Time) (uint, error)
	SubmitVote(eventID uint, userName string, rawVotes []time.Time) (dto.GetEventDTO, error)
}

type eventService struct {
	repositories repository.Repositories
	codec        dates.Codec
}

func newEventService(repositories repository.Repositories, codec dates.Codec) EventService {
	return &eventService{
		repositories: repositories,
		codec:        codec,
	}
}

func (e *eventService) ListEvents() (dto.GetEventsDTO, error) {
	events, err := e.repositories.Event().List()
	if err != nil {
		return dto.GetEventsDTO{}, err
	}

	return dto.NewGetEventsDTO(events), nil
}

func (e *eventService) GetEvent(id uint) (dto.GetEventDTO, error) {
	event, eventDates, err := e.repositories.Event().GetByID(id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return dto.GetEventDTO{}, dto.NotFoundf("Event with ID '%d' not found", id)
		}
		return dto.GetEventDTO{}, err
	}

	votes, err := e.repositories.Vote().ListByEvent(id)
	if err != nil {
		return dto.GetEventDTO{}, err
	}

	return dto.NewGetEventDTO(event, eventDates, votes, e.codec), nil
}

func (e *eventService) GetEventResults(id uint) (dto.GetEventResultsDTO, error) {
	event, _, err := e.repositories.Event().GetByID(id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return dto.GetEventResultsDTO{}, dto.NotFoundf("Event with ID '%d' not found", id)
		}
		return dto.GetEventResultsDTO{}, err
	}

	votes, err := e.repositories.Vote().ListByEvent(id)
	if err != nil {
		return dto.GetEventResultsDTO{}, err
	}

	return dto.NewGetEventResultsDTO(event, votes, e.codec), nil
}

// CreateEvent validates and persists a new event. The rule order is fixed:
// blank name, empty dates, duplicate dates, name taken.
func (e *eventService) CreateEvent(name string, rawDates []time.Time) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, dto.Validationf("Event name should not be blank")
	}
	if len(rawDates) == 0 {
		return 0, dto.Validationf("Event should have at least one date specified")
	}

	normalized, err := normalizeUnique(rawDates)
	if err != nil {
		return 0, dto.Validationf("Event dates should not duplicate")
	}

	existing, err := e.repositories.Event().GetByName(name)
	if err == nil {
		return 0, dto.Validationf("Event named '%s' already exists", existing.Name)
	}
	if !errors.Is(err, dto.ErrNotFound) {
		return 0, err
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Before(normalized[j])
	})
	eventDates := make([]model.EventDate, 0, len(normalized))
	for _, date := range normalized {
		eventDates = append(eventDates, model.EventDate{Date: date})
	}

	created, err := e.repositories.Event().Create(model.Event{
		Name:      name,
		NameLower: strings.ToLower(name),
	}, eventDates)
	if err != nil {
		// Lost a name race after the lookup passed.
		if errors.Is(err, dto.ErrDuplicate) {
			return 0, dto.Validationf("Event named '%s' already exists", name)
		}
		return 0, err
	}

	logrus.Infof("Created event %d '%s' with %d dates", created.ID, created.Name, len(eventDates))
	return created.ID, nil
}

// SubmitVote validates a submission against the pre-submission state, then
// records the user and all requested votes atomically and returns the
// refreshed event view.
func (e *eventService) SubmitVote(eventID uint, userName string, rawVotes []time.Time) (dto.GetEventDTO, error) {
	event, eventDates, err := e.repositories.Event().GetByID(eventID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return dto.GetEventDTO{}, dto.NotFoundf("Event with ID '%d' not found", eventID)
		}
		return dto.GetEventDTO{}, err
	}

	if strings.TrimSpace(userName) == "" {
		return dto.GetEventDTO{}, dto.Validationf("User name should not be blank")
	}
	if len(rawVotes) == 0 {
		return dto.GetEventDTO{}, dto.Validationf("Vote should have at least one date specified")
	}

	normalized, err := normalizeUnique(rawVotes)
	if err != nil {
		return dto.GetEventDTO{}, dto.Validationf("Voting for the same date twice is not allowed")
	}

	// Stored dates are UTC midnights; pin the location before normalizing
	// so driver locale cannot shift the calendar day.
	offered := make(map[time.Time]model.EventDate, len(eventDates))
	for _, eventDate := range eventDates {
		offered[dates.Normalize(eventDate.Date.UTC())] = eventDate
	}

	// Resolve every requested date first, in input order, then check all
	// existing votes before inserting anything.
	requested := make([]model.EventDate, 0, len(normalized))
	for _, date := range normalized {
		eventDate, ok := offered[date]
		if !ok {
			return dto.GetEventDTO{}, dto.Validationf("Event '%s' does not have date '%s' suggested",
				event.Name, e.codec.Format(date))
		}
		requested = append(requested, eventDate)
	}

	for _, eventDate := range requested {
		_, err := e.repositories.Vote().Find(eventID, eventDate.ID, userName)
		if err == nil {
			return dto.GetEventDTO{}, dto.Validationf("User '%s' has already voted for event '%s' and date '%s'",
				userName, event.Name, e.codec.Format(dates.Normalize(eventDate.Date.UTC())))
		}
		if !errors.Is(err, dto.ErrNotFound) {
			return dto.GetEventDTO{}, err
		}
	}

	sort.Slice(requested, func(i, j int) bool {
		return requested[i].Date.Before(requested[j].Date)
	})

	err = e.repositories.Transaction(func(tx repository.Repositories) error {
		user, err := tx.User().Upsert(userName)
		if err != nil {
			return err
		}

		votes := make([]model.Vote, 0, len(requested))
		for _, eventDate := range requested {
			votes = append(votes, model.Vote{
				EventID:     eventID,
				EventDateID: eventDate.ID,
				UserID:      user.ID,
			})
		}
		return tx.Vote().CreateAll(votes)
	})
	if err != nil {
		// A concurrent submission by the same user slipped in between the
		// checks above and the commit; the composite vote key caught it.
		if errors.Is(err, dto.ErrDuplicate) {
			return dto.GetEventDTO{}, dto.Validationf("User '%s' has already voted for event '%s'",
				userName, event.Name)
		}
		return dto.GetEventDTO{}, err
	}

	logrus.Infof("User '%s' voted for %d dates of event %d", userName, len(requested), eventID)

	votes, err := e.repositories.Vote().ListByEvent(eventID)
	if err != nil {
		return dto.GetEventDTO{}, err
	}

	return dto.NewGetEventDTO(event, eventDates, votes, e.codec), nil
}

var errDuplicateDates = errors.New("duplicate dates")

// normalizeUnique normalizes the raw dates and rejects the list when two of
// them land on the same calendar day.
func normalizeUnique(raw []time.Time) ([]time.Time, error) {
	normalized := make([]time.Time, 0, len(raw))
	seen := make(map[time.Time]struct{}, len(raw))
	for _, t := range raw {
		date := dates.Normalize(t)
		if _, ok := seen[date]; ok {
			return nil, errDuplicateDates
		}
		seen[date] = struct{}{}
		normalized = append(normalized, date)
	}
	return normalized, nil
}
