package model

import "time"

// Vote records that one user voted for one candidate date of one event. The
// composite primary key is the double-voting guard: the store rejects a
// second row for the same (event, date, user) even when two submissions
// race.
type Vote struct {
	EventID     uint `gorm:"primaryKey;autoIncrement:false"`
	EventDateID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID      uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt   time.Time
}

// VoteRecord is the read model of a vote joined with its candidate date and
// user, as returned by the vote listing query: ordered by date ascending,
// then insertion order within a date.
type VoteRecord struct {
	EventDateID uint
	Date        time.Time
	UserID      uint
	UserName    string
}
