package repository

import (
	"alcyxob/gym-system/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]domain.User, error) // empty role lists everyone
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OfferRepository stores gym pass offers.
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.GymPassOffer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GymPassOffer, error)
	GetByTitle(ctx context.Context, title string) (*domain.GymPassOffer, error)
	List(ctx context.Context) ([]domain.GymPassOffer, error)
	Update(ctx context.Context, offer *domain.GymPassOffer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PurchaseRepository stores purchased gym passes.
type PurchaseRepository interface {
	Create(ctx context.Context, pass *domain.PurchasedGymPass) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PurchasedGymPass, error)
	Update(ctx context.Context, pass *domain.PurchasedGymPass) error
	// UseEntry atomically takes one entry from an entry-based pass with
	// entries left and returns the updated pass. ErrNotFound otherwise.
	UseEntry(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error)
}

// TaskRepository stores manager-assigned tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error)
	GetByManagerID(ctx context.Context, managerID primitive.ObjectID) ([]domain.Task, error)
	GetByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingFilter narrows individual training listings. Zero values match all.
type TrainingFilter struct {
	TrainerID     primitive.ObjectID
	ParticipantID primitive.ObjectID
	From          *time.Time
	To            *time.Time
	ActiveOnly    bool
}

// TrainingRepository stores individual trainings.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.IndividualTraining) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.IndividualTraining, error)
	Find(ctx context.Context, filter TrainingFilter) ([]domain.IndividualTraining, error)
	Update(ctx context.Context, training *domain.IndividualTraining) error
}
