package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

type accountFixture struct {
	svc      *AccountService
	repo     *stubUserRepo
	hasher   *fakeHasher
	tokens   *stubTokens
	throttle *stubThrottle
	sink     *recordingSink
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		repo:     newStubUserRepo(),
		hasher:   &fakeHasher{},
		tokens:   &stubTokens{},
		throttle: newStubThrottle(),
		sink:     &recordingSink{},
	}
	f.svc = NewAccountService(f.repo, f.hasher, f.tokens, f.throttle, f.sink, zerolog.Nop())
	return f
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newAccountFixture()

	user, err := f.svc.Register(context.Background(), "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected store-generated id")
	}
	if user.PasswordHash == "password123" {
		t.Fatalf("expected password to be hashed")
	}
	if n := f.repo.countByEmail("test@example.com"); n != 1 {
		t.Fatalf("expected exactly one record, got %d", n)
	}
	if ev := f.sink.last(); ev.Type != domain.AuthEventRegister || !ev.Success {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestAccountService_Register_NormalizesEmail(t *testing.T) {
	f := newAccountFixture()

	user, err := f.svc.Register(context.Background(), "  alice ", "  Alice@Example.COM ", "pw")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" || user.Username != "alice" {
		t.Fatalf("unexpected normalisation: %+v", user)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	f := newAccountFixture()

	cases := []struct{ username, email, password string }{
		{"", "a@example.com", "pw"},
		{"a", "   ", "pw"},
		{"a", "a@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := f.svc.Register(context.Background(), tc.username, tc.email, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc, err)
		}
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	f := newAccountFixture()

	if _, err := f.svc.Register(context.Background(), "testuser2", "test@example.com", "password123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := f.svc.Register(context.Background(), "testuser3", "TEST@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	if n := f.repo.countByEmail("test@example.com"); n != 1 {
		t.Fatalf("expected exactly one record, got %d", n)
	}
	if ev := f.sink.last(); ev.Success {
		t.Fatalf("expected failed audit event, got %+v", ev)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	f := newAccountFixture()
	registered, _ := f.svc.Register(context.Background(), "testuser", "test@example.com", "password123")

	token, user, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "test@example.com", Password: "password123", IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	id, err := f.tokens.Verify(token)
	if err != nil || id != registered.ID {
		t.Fatalf("token does not resolve to user: id=%q err=%v", id, err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(f.throttle.resets) != 1 {
		t.Fatalf("expected throttle reset on success")
	}
	if ev := f.sink.last(); ev.Type != domain.AuthEventLogin || !ev.Success || ev.IP != "10.0.0.1" {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestAccountService_Login_WrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	f := newAccountFixture()
	_, _ = f.svc.Register(context.Background(), "testuser", "test@example.com", "password123")

	_, _, wrongPw := f.svc.Login(context.Background(), ports.LoginInput{Email: "test@example.com", Password: "wrongPassword"})
	_, _, unknown := f.svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "password123"})

	if wrongPw != domain.ErrInvalidCredentials || unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v / %v", wrongPw, unknown)
	}
	if f.throttle.failures["test@example.com"] != 1 || f.throttle.failures["ghost@example.com"] != 1 {
		t.Fatalf("expected one failure recorded per email, got %v", f.throttle.failures)
	}
	// The unknown-email path must still run a digest comparison.
	if len(f.hasher.verified) != 2 {
		t.Fatalf("expected two verifications, got %d", len(f.hasher.verified))
	}
}

func TestAccountService_Login_Locked(t *testing.T) {
	f := newAccountFixture()
	_, _ = f.svc.Register(context.Background(), "testuser", "test@example.com", "password123")
	f.throttle.locked = true

	_, _, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "test@example.com", Password: "password123"})
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAccountService_Login_ThrottleErrorFailsOpen(t *testing.T) {
	f := newAccountFixture()
	_, _ = f.svc.Register(context.Background(), "testuser", "test@example.com", "password123")
	f.throttle.checkErr = errStore

	if _, _, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "test@example.com", Password: "password123"}); err != nil {
		t.Fatalf("expected login to proceed, got %v", err)
	}
}

func TestAccountService_Login_StoreError(t *testing.T) {
	f := newAccountFixture()
	f.repo.findErr = errStore

	_, _, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "test@example.com", Password: "pw"})
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failures must not masquerade as bad credentials")
	}
}

func TestAccountService_Login_IssueError(t *testing.T) {
	f := newAccountFixture()
	_, _ = f.svc.Register(context.Background(), "testuser", "test@example.com", "password123")
	f.tokens.issueErr = errors.New("signing failed")

	if _, _, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "test@example.com", Password: "password123"}); err == nil {
		t.Fatalf("expected error when token issuance fails")
	}
}

func TestAccountService_Login_EmptyInput(t *testing.T) {
	f := newAccountFixture()

	if _, _, err := f.svc.Login(context.Background(), ports.LoginInput{}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
