package ports

// PasswordHasher abstracts the one-way password digest.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer creates and validates bearer session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the user id asserted by the token, or
	// domain.ErrInvalidToken.
	Verify(token string) (string, error)
}
