package ports

// PasswordHasher hashes and checks plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenClaims is the identity carried by a bearer token.
type TokenClaims struct {
	Subject string
	Extra   map[string]any
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
}

// TokenVerifier checks bearer tokens. Failures wrap domain.ErrInvalidToken or
// domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
