package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// LoginInput is the DTO passed from the transport layer to AccountService.Login.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (string, *domain.User, error)
}
