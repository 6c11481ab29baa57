package impl

import (
	"FocusLock/repositories"
	"errors"

	"gorm.io/gorm"
)

// translate maps gorm's not-found error onto the repository sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
