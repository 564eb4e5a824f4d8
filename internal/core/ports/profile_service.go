package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// ProfileService reads and mutates a profile on behalf of an authenticated
// actor. Both operations fail with domain.ErrForbidden when actorID differs
// from targetID.
type ProfileService interface {
	Get(ctx context.Context, actorID, targetID string) (*domain.User, error)
	Update(ctx context.Context, actorID, targetID string, in domain.ProfileUpdate) (*domain.User, error)
}
