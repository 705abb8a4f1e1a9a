package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Upsert(name string) (model.User, error)
}

type user struct {
	db *gorm.DB
}

func newUserRepository(db *gorm.DB) UserRepository {
	return &user{
		db: db,
	}
}

// Upsert finds the user by case-insensitive name or creates one with the
// name as given. Users are created lazily on first vote and never deleted.
func (u *user) Upsert(name string) (model.User, error) {
	var existing model.User
	result := u.db.Where("name_lower = ?", strings.ToLower(name)).First(&existing)
	if result.Error == nil {
		return existing, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	created := model.User{Name: name, NameLower: strings.ToLower(name)}
	result = u.db.Create(&created)
	if result.Error != nil {
		// A concurrent submission may have created the user between the
		// lookup and the insert; the unique lowered name makes the re-read
		// authoritative.
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			result = u.db.Where("name_lower = ?", strings.ToLower(name)).First(&existing)
			if result.Error != nil {
				return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
			}
			return existing, nil
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return created, nil
}
