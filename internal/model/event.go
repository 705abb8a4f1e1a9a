package model

import (
	"time"
)

type Event struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Name      string `gorm:"not null"`
	NameLower string `gorm:"not null;uniqueIndex"`
}
