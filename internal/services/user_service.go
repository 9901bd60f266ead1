package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"livepoll/internal/domain/user"
	"livepoll/internal/repository"
	livepoll_errors "livepoll/pkg/errors"
)

// UserService is the identity registry. Registration always succeeds for a
// non-empty name and a recognized role; names are not deduplicated.
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Register(ctx context.Context, name string, role user.Role) (user.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || !role.Valid() {
		return user.User{}, livepoll_errors.ErrInvalidInput
	}

	newUser := user.User{
		ID:          uuid.New(),
		DisplayName: name,
		Role:        role,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, &newUser); err != nil {
		return user.User{}, err
	}
	return newUser, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}
