package client

import (
	"github.com/eventshuffle/backend/internal/dto"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Clients interface {
	Postgres() *gorm.DB
}

type clients struct {
	db *gorm.DB
}

func (c clients) Postgres() *gorm.DB {
	return c.db
}

func NewClients(cfg dto.Config) Clients {
	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey, which the repositories rely on to detect
	// name and vote collisions at commit time.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logrus.Panic(err)
	}

	return &clients{
		db: db,
	}
}
