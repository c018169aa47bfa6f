package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"todoapp/internal/models"
	"todoapp/internal/repository"
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be 8-1000 characters with an upper and lower case letter, a digit and a special character")
)

// AuthService handles signup and credential verification.
type AuthService struct {
	users repository.Users

	// dummyHash absorbs a bcrypt comparison when the email is unknown, so
	// login timing does not reveal whether an account exists.
	dummyHash []byte
}

func NewAuthService(users repository.Users) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost, which is fixed above.
		panic(fmt.Sprintf("generate dummy hash: %v", err))
	}
	return &AuthService{users: users, dummyHash: dummy}
}

// SignUp validates the password policy, hashes it and creates the user.
// The plaintext password never leaves this function.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair. Lookup is case-sensitive
// exact match. Both failure modes return ErrInvalidCredentials, and the
// unknown-email path still pays for one bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash in constant time
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

const (
	minPasswordLen = 8
	maxPasswordLen = 1000
)

// validatePassword enforces the signup policy: 8-1000 chars with at least
// one digit, one upper, one lower and one special character. Login does not
// use this; existing credentials are checked as-is.
func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrWeakPassword
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
