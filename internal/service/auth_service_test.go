package service

import (
	"context"
	"errors"
	"testing"

	"todoapp/internal/models"
	"todoapp/internal/repository"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn     func(email, hash string) (*models.User, error)
	GetByEmailFn func(email string) (*models.User, error)
	GetByIDFn    func(id string) (*models.User, error)

	createCalls []struct {
		email string
		hash  string
	}
	getByEmailCalls []string
	getByIDCalls    []string
}

func (m *mockUserRepo) Create(_ context.Context, email, hash string) (*models.User, error) {
	m.createCalls = append(m.createCalls, struct {
		email string
		hash  string
	}{email: email, hash: hash})
	return m.CreateFn(email, hash)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.getByEmailCalls = append(m.getByEmailCalls, email)
	return m.GetByEmailFn(email)
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	m.getByIDCalls = append(m.getByIDCalls, id)
	return m.GetByIDFn(id)
}

const testPassword = "Abc12345!"

// --- SignUp tests ---

func TestAuthService_SignUp_HashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(email, hash string) (*models.User, error) {
			return &models.User{ID: "u-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock)

	u, err := svc.SignUp(context.Background(), "a@x.com", testPassword)
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if u.ID != "u-1" {
		t.Fatalf("expected user u-1, got %+v", u)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.email != "a@x.com" {
		t.Errorf("expected email 'a@x.com', got %q", call.email)
	}
	if call.hash == testPassword {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, testPassword); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_SignUp_PasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "Ab1!abc"},
		{"no digit", "Abcdefgh!"},
		{"no upper", "abc12345!"},
		{"no lower", "ABC12345!"},
		{"no special", "Abc123456"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUserRepo{
				CreateFn: func(email, hash string) (*models.User, error) {
					t.Fatal("Create should not be called for a rejected password")
					return nil, nil
				},
			}
			svc := NewAuthService(mock)

			_, err := svc.SignUp(context.Background(), "a@x.com", tt.password)
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if len(mock.createCalls) != 0 {
				t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
			}
		})
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(email, hash string) (*models.User, error) {
			return nil, repository.ErrEmailTaken
		},
	}
	svc := NewAuthService(mock)

	_, err := svc.SignUp(context.Background(), "a@x.com", testPassword)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// --- Authenticate tests ---

func TestAuthService_Authenticate_RoundTrip(t *testing.T) {
	hash, err := hashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	stored := &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: hash}
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(mock)

	u, err := svc.Authenticate(context.Background(), "a@x.com", testPassword)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if u.ID != "u-1" {
		t.Fatalf("expected user u-1, got %+v", u)
	}
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	hash, err := hashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "a@x.com" {
				return &models.User{ID: "u-1", Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(mock)

	_, errWrongPassword := svc.Authenticate(context.Background(), "a@x.com", "Wrong1234!")
	_, errUnknownEmail := svc.Authenticate(context.Background(), "b@x.com", testPassword)

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Fatalf("failure modes must not be distinguishable: %q vs %q",
			errWrongPassword, errUnknownEmail)
	}
}

func TestAuthService_Authenticate_CaseSensitiveEmail(t *testing.T) {
	hash, err := hashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "a@x.com" {
				return &models.User{ID: "u-1", Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(mock)

	if _, err := svc.Authenticate(context.Background(), "A@X.COM", testPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected case-sensitive lookup to fail, got %v", err)
	}
}
