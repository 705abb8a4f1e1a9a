package dto

import (
	"testing"
	"time"

	"github.com/eventshuffle/backend/internal/dates"
	"github.com/eventshuffle/backend/internal/model"
	"github.com/stretchr/testify/assert"
)

var codec = dates.NewCodec("2006-01-02")

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := codec.Parse(value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestNewGetEventDTO(t *testing.T) {
	event := model.Event{ID: 1, Name: "Jake's secret party"}
	eventDates := []model.EventDate{
		{ID: 12, EventID: 1, Date: day(t, "2014-01-12")},
		{ID: 10, EventID: 1, Date: day(t, "2014-01-01")},
		{ID: 11, EventID: 1, Date: day(t, "2014-01-05")},
	}
	votes := []model.VoteRecord{
		{EventDateID: 10, Date: day(t, "2014-01-01"), UserID: 1, UserName: "John"},
		{EventDateID: 10, Date: day(t, "2014-01-01"), UserID: 2, UserName: "Julia"},
		{EventDateID: 11, Date: day(t, "2014-01-05"), UserID: 1, UserName: "John"},
	}

	result := NewGetEventDTO(event, eventDates, votes, codec)

	assert.Equal(t, uint(1), result.ID)
	assert.Equal(t, "Jake's secret party", result.Name)
	// Candidate dates sorted ascending regardless of storage order.
	assert.Equal(t, []string{"2014-01-01", "2014-01-05", "2014-01-12"}, result.Dates)
	// Only voted dates appear, people in vote order.
	assert.Equal(t, []DateVoteDTO{
		{Date: "2014-01-01", People: []string{"John", "Julia"}},
		{Date: "2014-01-05", People: []string{"John"}},
	}, result.Votes)
}

func TestNewGetEventDTOWithoutVotes(t *testing.T) {
	event := model.Event{ID: 3, Name: "Standup"}
	eventDates := []model.EventDate{{ID: 7, EventID: 3, Date: day(t, "2021-09-01")}}

	result := NewGetEventDTO(event, eventDates, nil, codec)

	assert.Equal(t, []string{"2021-09-01"}, result.Dates)
	assert.Empty(t, result.Votes)
}

func TestNewGetEventResultsDTO(t *testing.T) {
	event := model.Event{ID: 1, Name: "TestEvent"}

	t.Run("only unanimous dates qualify", func(t *testing.T) {
		votes := []model.VoteRecord{
			{EventDateID: 1, Date: day(t, "2021-09-01"), UserID: 1, UserName: "User1"},
			{EventDateID: 1, Date: day(t, "2021-09-01"), UserID: 2, UserName: "User2"},
			{EventDateID: 2, Date: day(t, "2021-09-02"), UserID: 1, UserName: "User1"},
		}

		result := NewGetEventResultsDTO(event, votes, codec)

		assert.Equal(t, []DateVoteDTO{
			{Date: "2021-09-01", People: []string{"User1", "User2"}},
		}, result.SuitableDates)
	})

	t.Run("no votes means no suitable dates", func(t *testing.T) {
		result := NewGetEventResultsDTO(event, nil, codec)

		assert.Equal(t, uint(1), result.ID)
		assert.Equal(t, "TestEvent", result.Name)
		assert.Empty(t, result.SuitableDates)
	})
}

func TestNewGetEventsDTOKeepsStoreOrder(t *testing.T) {
	events := []model.Event{
		{ID: 2, Name: "Beta"},
		{ID: 1, Name: "Alpha"},
	}

	result := NewGetEventsDTO(events)

	assert.Equal(t, []EventListItemDTO{
		{ID: 2, Name: "Beta"},
		{ID: 1, Name: "Alpha"},
	}, result.Events)
}
