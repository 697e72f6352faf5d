package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetPrincipal(ctx context.Context, userID string) (*domain.Principal, error) {
	if userID == "" {
		return nil, domain.NewBadRequestError("user id is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("user with id " + userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
