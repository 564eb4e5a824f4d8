package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single event. Emails are normalised here as well since
// events may originate from rejected, unnormalised input.
func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	event.Email = domain.NormalizeEmail(event.Email)
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record %s event: %w", event.Type, err)
	}

	s.log.Debug().
		Str("type", string(event.Type)).
		Str("user_id", event.UserID).
		Bool("success", event.Success).
		Msg("auth event recorded")
	return nil
}
