package service

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/repository"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated caller, taken from the JWT.
type Principal struct {
	UserID primitive.ObjectID
	Role   domain.Role
}

func (p Principal) Is(role domain.Role) bool {
	return p.Role == role
}

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// notFoundOr maps repository.ErrNotFound to notFound and wraps anything else
// as an internal error.
func notFoundOr(op string, err error, notFound *apperr.Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return internal(op, err)
}

func internal(op string, err error) error {
	return apperr.ErrInternal.Wrap(fmt.Errorf("%s: %w", op, err))
}
