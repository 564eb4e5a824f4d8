package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// dummyPassword is hashed once at construction so that logins for unknown
// emails still pay for a full digest comparison.
const dummyPassword = "account-service-timing-equaliser"

// AccountService implements registration and login.
type AccountService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger

	dummyDigest string
}

func NewAccountService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AccountService {
	digest, err := hasher.Hash(dummyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("failed to precompute dummy digest")
	}
	return &AccountService{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		throttle:    throttle,
		audit:       audit,
		log:         log,
		dummyDigest: digest,
	}
}

// Register creates a new account. Uniqueness of the email is left entirely to
// the repository; there is no look-before-insert.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.record(domain.AuthEventRegister, "", email, "", false)
		if errors.Is(err, domain.ErrDuplicateAccount) {
			s.log.Info().Str("email", email).Msg("duplicate registration rejected")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.record(domain.AuthEventRegister, created.ID, email, "", true)
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a session token. An unknown email
// and a wrong password yield the same domain.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	locked, err := s.throttle.Locked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("throttle check failed, continuing")
	} else if locked {
		s.record(domain.AuthEventLogin, "", email, in.IP, false)
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, fmt.Errorf("login: %w", err)
		}
		s.hasher.Verify(in.Password, s.dummyDigest)
		s.loginFailed(ctx, "", email, in.IP)
		return "", nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.loginFailed(ctx, user.ID, email, in.IP)
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login throttle")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.record(domain.AuthEventLogin, user.ID, email, in.IP, true)
	s.log.Debug().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AccountService) loginFailed(ctx context.Context, userID, email, ip string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
	}
	s.record(domain.AuthEventLogin, userID, email, ip, false)
}

func (s *AccountService) record(typ domain.AuthEventType, userID, email, ip string, ok bool) {
	s.audit.Enqueue(domain.AuthEvent{
		Type:       typ,
		UserID:     userID,
		Email:      email,
		Success:    ok,
		IP:         ip,
		OccurredAt: time.Now().UTC(),
	})
}
