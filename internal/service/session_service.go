package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repository"
	"todoapp/internal/session"
)

// sessionTTL is the sliding inactivity window: each resolved request
// pushes the deadline out by this much.
const sessionTTL = 24 * time.Hour

// ErrNoSession means the token is unknown, expired or invalidated; the
// caller is anonymous.
var ErrNoSession = errors.New("no active session")

// SessionService issues, resolves and revokes opaque session tokens.
type SessionService struct {
	store session.Store
	users repository.Users
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionService(store session.Store, users repository.Users) *SessionService {
	return &SessionService{
		store: store,
		users: users,
		ttl:   sessionTTL,
		now:   time.Now,
	}
}

// Login creates a session for an already-authenticated user and returns
// the cookie token. The session carries a hash derived from the user's
// password hash, so a password change kills every outstanding session.
func (s *SessionService) Login(ctx context.Context, user *models.User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	sess := models.Session{
		Token:     token,
		UserID:    user.ID,
		AuthHash:  authHash(user.PasswordHash),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Resolve maps a cookie token back to its user. A hit slides the expiry
// forward by the full window. Unknown, expired and stale-auth-hash tokens
// all come back as ErrNoSession.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if u == nil || authHash(u.PasswordHash) != sess.AuthHash {
		// Deleted user or changed password: the session is dead.
		_ = s.store.Delete(ctx, token)
		return nil, ErrNoSession
	}

	if err := s.store.Refresh(ctx, token, s.now().Add(s.ttl)); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	return u, nil
}

// Logout drops the session. Unknown tokens are not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// newToken returns 32 bytes of crypto randomness, hex encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// authHash binds a session to the password hash it was issued against.
func authHash(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:])
}
