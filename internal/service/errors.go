package service

import (
	"errors"

	"rps_game/internal/domain"
)

var (
	// conflict
	ErrUserExists = errors.New("a user with that name already exists")

	// not found
	ErrUserNotFound = errors.New("a user with that name does not exist")
	ErrGameNotFound = errors.New("game not found")

	// validation
	ErrInvalidUserName = errors.New("user_name is required")
	ErrInvalidEmail    = errors.New("email is not a valid address")
	ErrInvalidBestOf   = domain.ErrInvalidBestOf
)

// IsNotFound reports whether err is one of the not found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrGameNotFound)
}

// IsValidation reports whether err is caused by bad caller input
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidUserName) || errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrInvalidBestOf)
}
