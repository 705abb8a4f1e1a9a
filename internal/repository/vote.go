package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/model"
	"gorm.io/gorm"
)

type VoteRepository interface {
	Find(eventID, eventDateID uint, userName string) (model.Vote, error)
	ListByEvent(eventID uint) ([]model.VoteRecord, error)
	CreateAll(votes []model.Vote) error
}

type vote struct {
	db *gorm.DB
}

func newVoteRepository(db *gorm.DB) VoteRepository {
	return &vote{
		db: db,
	}
}

func (v *vote) Find(eventID, eventDateID uint, userName string) (model.Vote, error) {
	var vote model.Vote
	result := v.db.
		Joins("JOIN users ON users.id = votes.user_id").
		Where("votes.event_id = ? AND votes.event_date_id = ? AND users.name_lower = ?",
			eventID, eventDateID, strings.ToLower(userName)).
		First(&vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Vote{}, fmt.Errorf("%w: vote", dto.ErrNotFound)
		}
		return model.Vote{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return vote, nil
}

// ListByEvent returns every vote of the event joined with its date and user,
// ordered by date ascending and insertion order within a date.
func (v *vote) ListByEvent(eventID uint) ([]model.VoteRecord, error) {
	var records []model.VoteRecord
	result := v.db.
		Table("votes").
		Select("votes.event_date_id, event_dates.date AS date, votes.user_id, users.name AS user_name").
		Joins("JOIN event_dates ON event_dates.id = votes.event_date_id").
		Joins("JOIN users ON users.id = votes.user_id").
		Where("votes.event_id = ?", eventID).
		Order("event_dates.date ASC, votes.created_at ASC, votes.user_id ASC").
		Scan(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return records, nil
}

// CreateAll inserts the votes of one submission. A collision on the
// composite (event, date, user) key surfaces as ErrDuplicate; gorm runs the
// batch in a single transaction, so none of the rows survive a failure.
func (v *vote) CreateAll(votes []model.Vote) error {
	result := v.db.Create(&votes)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", dto.ErrDuplicate, result.Error)
		}
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return nil
}
