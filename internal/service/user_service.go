package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Tomlord1122/todolist/internal/domain"
	"github.com/Tomlord1122/todolist/internal/repository"
)

// Profile is the identity provider's view of a user.
type Profile struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type UserResponse struct {
	ID              string  `json:"id"`
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type UserService interface {
	// SyncProfile upserts the mirrored user record from a fresh profile.
	SyncProfile(ctx context.Context, p Profile) (*UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
	now  Clock
}

func NewUserService(repo repository.UserRepository, clock Clock) UserService {
	if clock == nil {
		clock = SystemClock
	}
	return &userService{repo: repo, now: clock}
}

func (s *userService) SyncProfile(ctx context.Context, p Profile) (*UserResponse, error) {
	now := s.now().UTC().Truncate(time.Microsecond)
	user := &domain.User{
		ID:              p.UserID,
		Email:           nonEmpty(p.Email),
		FirstName:       nonEmpty(p.FirstName),
		LastName:        nonEmpty(p.LastName),
		ProfileImageURL: nonEmpty(p.ProfileImageURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("syncing user profile: %w", err)
	}

	return &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       formatTime(user.CreatedAt),
		UpdatedAt:       formatTime(user.UpdatedAt),
	}, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
