package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

type profileService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditSink
	log    zerolog.Logger
}

// NewProfileService returns a ProfileService implementation.
func NewProfileService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.ProfileService {
	return &profileService{repo: repo, hasher: hasher, audit: audit, log: log}
}

func (s *profileService) Get(ctx context.Context, actorID, targetID string) (*domain.User, error) {
	if actorID == "" || actorID != targetID {
		return nil, domain.ErrForbidden
	}
	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// Update applies the set fields of in to the target profile.
func (s *profileService) Update(ctx context.Context, actorID, targetID string, in domain.ProfileUpdate) (*domain.User, error) {
	if actorID == "" || actorID != targetID {
		s.log.Warn().Str("actor", actorID).Str("target", targetID).Msg("cross-account profile update rejected")
		return nil, domain.ErrForbidden
	}
	if in.Empty() {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Username = name
	}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.record(user, false)
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.record(updated, true)
	s.log.Info().Str("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

func (s *profileService) record(u *domain.User, ok bool) {
	s.audit.Enqueue(domain.AuthEvent{
		Type:       domain.AuthEventProfileUpdate,
		UserID:     u.ID,
		Email:      u.Email,
		Success:    ok,
		OccurredAt: time.Now().UTC(),
	})
}
