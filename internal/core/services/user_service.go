package services

import (
	"context"
	"fmt"
	"time"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/internal/infrastructure/monitoring"
	"huddle/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	users   ports.UserRepository
	metrics *monitoring.PrometheusCollector
}

func NewUserService(
	users ports.UserRepository,
	metrics *monitoring.PrometheusCollector,
) ports.UserService {
	return &userService{
		users:   users,
		metrics: metrics,
	}
}

func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:         domain.UserID(utils.GenerateUserID()),
		Email:      email,
		Name:       domain.DefaultDisplayName,
		Credential: string(hash),
		CreatedAt:  time.Now(),
	}

	// Uniqueness is enforced by the repository so two racing registrations
	// cannot both win.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.RecordRegistration()
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) UpdateProfile(ctx context.Context, id domain.UserID, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = utils.SanitizeString(*patch.Name)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, query string) ([]*domain.User, error) {
	byName, err := s.users.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	byEmail, err := s.users.SearchByEmail(ctx, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.UserID]bool, len(byName))
	merged := make([]*domain.User, 0, len(byName)+len(byEmail))
	for _, u := range byName {
		seen[u.ID] = true
		merged = append(merged, u)
	}
	for _, u := range byEmail {
		if !seen[u.ID] {
			merged = append(merged, u)
		}
	}
	return merged, nil
}

func (s *userService) SearchByName(ctx context.Context, query string) ([]*domain.User, error) {
	return s.users.SearchByName(ctx, query)
}

func (s *userService) SearchByEmail(ctx context.Context, query string) ([]*domain.User, error) {
	return s.users.SearchByEmail(ctx, query)
}
