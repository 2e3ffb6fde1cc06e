package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"whenandwhere/internal/domain"
)

// ErrInvalidCredentials is returned when admin credentials do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher backed by bcrypt with the given cost.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type adminAuthenticator struct {
	username     string
	passwordHash string
	hasher       domain.PasswordHasher
}

// NewAdminAuthenticator checks basic-auth credentials against a single configured admin.
// An empty username or hash rejects every attempt.
func NewAdminAuthenticator(username, passwordHash string, hasher domain.PasswordHasher) domain.AdminAuthenticator {
	return &adminAuthenticator{username: username, passwordHash: passwordHash, hasher: hasher}
}

func (a *adminAuthenticator) Authenticate(username, password string) error {
	if a.username == "" || a.passwordHash == "" {
		return ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := a.hasher.Compare(a.passwordHash, password)
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
