package persistence

import (
	"errors"

	"github.com/shopfeed/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps storage errors to domain errors so raw driver errors never
// reach callers that branch on them
func translate(err error, duplicateMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.CodeDuplicateEntity, duplicateMessage)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError(shared.CodeValidation, "Referenced resource does not exist")
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
