package service

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user.notFound")
	ErrInvalidRole  = apperr.New(apperr.KindBadRequest, "user.invalidRole")
	ErrRoleReserved = apperr.New(apperr.KindForbidden, "user.roleReserved")
)

// UpdateUserInput holds the optional profile changes. Nil fields are kept.
type UpdateUserInput struct {
	Name     *string
	Surname  *string
	Email    *string
	Phone    *string
	Password *string
	Role     *domain.Role
}

type UserService interface {
	GetByID(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, caller Principal, id primitive.ObjectID, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetByID returns a user. Admins and managers see everyone, others only themselves.
func (s *userService) GetByID(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.User, error) {
	if caller.UserID != id && !caller.Is(domain.RoleAdmin) && !caller.Is(domain.RoleManager) {
		return nil, apperr.ErrAccessDenied
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("userService.GetByID", err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if role != "" && !role.Valid() {
		return nil, ErrInvalidRole.With(role)
	}
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, internal("userService.List", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, caller Principal, id primitive.ObjectID, in UpdateUserInput) (*domain.User, error) {
	const op = "userService.Update"
	isAdmin := caller.Is(domain.RoleAdmin)
	if caller.UserID != id && !isAdmin {
		return nil, apperr.ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrUserNotFound)
	}

	if in.Role != nil && *in.Role != user.Role {
		if !isAdmin {
			return nil, ErrRoleReserved
		}
		if !in.Role.Valid() {
			return nil, ErrInvalidRole.With(*in.Role)
		}
		user.Role = *in.Role
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Surname != nil {
		user.Surname = strings.TrimSpace(*in.Surname)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Email != nil {
		user.Email = strings.ToLower(*in.Email)
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internal(op, err)
		}
		user.PasswordHash = string(hash)
	}

	if err = s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, internal(op, err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return notFoundOr("userService.Delete", err, ErrUserNotFound)
	}
	return nil
}
