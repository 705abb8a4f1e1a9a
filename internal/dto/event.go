package dto

import (
	"sort"

	"github.com/eventshuffle/backend/internal/dates"
	"github.com/eventshuffle/backend/internal/model"
)

type CreateEventInput struct {
	Name  string   `json:"name"`
	Dates []string `json:"dates"`
}

type CreateEventOutput struct {
	ID uint `json:"id"`
}

type CreateVoteInput struct {
	Name  string   `json:"name"`
	Votes []string `json:"votes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type GetEventsDTO struct {
	Events []EventListItemDTO `json:"events"`
}

type EventListItemDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type GetEventDTO struct {
	ID    uint          `json:"id"`
	Name  string        `json:"name"`
	Dates []string      `json:"dates"`
	Votes []DateVoteDTO `json:"votes"`
}

// DateVoteDTO lists the people who voted for one candidate date.
type DateVoteDTO struct {
	Date   string   `json:"date"`
	People []string `json:"people"`
}

type GetEventResultsDTO struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	SuitableDates []DateVoteDTO `json:"suitableDates"`
}

// NewGetEventsDTO keeps the store's natural order.
func NewGetEventsDTO(events []model.Event) GetEventsDTO {
	items := make([]EventListItemDTO, 0, len(events))
	for _, event := range events {
		items = append(items, EventListItemDTO{ID: event.ID, Name: event.Name})
	}
	return GetEventsDTO{Events: items}
}

// NewGetEventDTO projects an event with its recorded votes. Candidate dates
// are sorted ascending; only dates someone voted for appear under votes.
func NewGetEventDTO(event model.Event, eventDates []model.EventDate, votes []model.VoteRecord, codec dates.Codec) GetEventDTO {
	sorted := make([]model.EventDate, len(eventDates))
	copy(sorted, eventDates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// Stored dates are UTC midnights; pin the location before stripping so
	// a driver handing back local times cannot shift the calendar day.
	formatted := make([]string, 0, len(sorted))
	for _, date := range sorted {
		formatted = append(formatted, codec.Format(dates.Normalize(date.Date.UTC())))
	}

	return GetEventDTO{
		ID:    event.ID,
		Name:  event.Name,
		Dates: formatted,
		Votes: groupVotesByDate(votes, codec),
	}
}

// NewGetEventResultsDTO keeps only the dates voted for by every participant
// who voted at all. With zero voters no date qualifies.
func NewGetEventResultsDTO(event model.Event, votes []model.VoteRecord, codec dates.Codec) GetEventResultsDTO {
	voters := map[uint]struct{}{}
	for _, vote := range votes {
		voters[vote.UserID] = struct{}{}
	}

	suitable := make([]DateVoteDTO, 0)
	for _, group := range groupVotesByDate(votes, codec) {
		if len(group.People) == len(voters) {
			suitable = append(suitable, group)
		}
	}

	return GetEventResultsDTO{
		ID:            event.ID,
		Name:          event.Name,
		SuitableDates: suitable,
	}
}

// groupVotesByDate folds vote records into per-date groups. Records arrive
// ordered by date then insertion order, and that order is preserved.
func groupVotesByDate(votes []model.VoteRecord, codec dates.Codec) []DateVoteDTO {
	groups := make([]DateVoteDTO, 0)
	index := map[string]int{}
	for _, vote := range votes {
		date := codec.Format(dates.Normalize(vote.Date.UTC()))
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DateVoteDTO{Date: date, People: []string{}})
		}
		groups[i].People = append(groups[i].People, vote.UserName)
	}
	return groups
}
