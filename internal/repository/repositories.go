package repository

import (
	"github.com/eventshuffle/backend/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repositories interface {
	Event() EventRepository
	User() UserRepository
	Vote() VoteRepository

	// Transaction runs fn against transaction-scoped repositories; every
	// write made inside fn commits or rolls back as one unit.
	Transaction(fn func(Repositories) error) error
}

type repositories struct {
	db              *gorm.DB
	eventRepository EventRepository
	userRepository  UserRepository
	voteRepository  VoteRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	err := db.AutoMigrate(&model.Event{}, &model.EventDate{}, &model.User{}, &model.Vote{})
	if err != nil {
		logrus.Panic(err)
	}
	return newWithDB(db)
}

func newWithDB(db *gorm.DB) Repositories {
	return &repositories{
		db:              db,
		eventRepository: newEventRepository(db),
		userRepository:  newUserRepository(db),
		voteRepository:  newVoteRepository(db),
	}
}

func (r *repositories) Event() EventRepository {
	return r.eventRepository
}

func (r *repositories) User() UserRepository {
	return r.userRepository
}

func (r *repositories) Vote() VoteRepository {
	return r.voteRepository
}

func (r *repositories) Transaction(fn func(Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(newWithDB(tx))
	})
}
