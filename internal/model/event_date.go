package model

import "time"

// EventDate is one candidate day of an event, stored as UTC midnight. The
// candidate set is fixed at event creation.
type EventDate struct {
	ID      uint      `gorm:"primarykey"`
	EventID uint      `gorm:"not null;uniqueIndex:idx_event_dates_event_id_date"`
	Date    time.Time `gorm:"not null;uniqueIndex:idx_event_dates_event_id_date"`
}
