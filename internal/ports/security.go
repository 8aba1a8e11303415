package ports

// Identity is the authenticated principal extracted from a verified token.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries any of the given role names.
func (id *Identity) HasRole(names ...string) bool {
	for _, want := range names {
		for _, have := range id.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// TokenProvider issues and verifies signed tokens carrying identity and
// role claims.
type TokenProvider interface {
	// Issue creates a signed token for the given username and role names.
	Issue(username string, roles []string) (string, error)

	// Verify parses and validates a raw token string.
	// Returns an error wrapping domain.ErrUnauthorized for malformed,
	// tampered, or expired tokens.
	Verify(raw string) (*Identity, error)
}

// PasswordHasher provides one-way hashing and verification of credentials.
type PasswordHasher interface {
	// Hash returns the one-way hash of a plaintext password.
	Hash(plain string) (string, error)

	// Compare checks plain against the stored hash.
	// Returns an error wrapping domain.ErrUnauthorized on mismatch.
	Compare(hashed, plain string) error
}
