package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/models"
	"todoapp/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser *models.User
	signUpErr  error
	authUser   *models.User
	authErr    error

	lastSignUpEmail    string
	lastSignUpPassword string
	lastAuthEmail      string
	lastAuthPassword   string
}

func (m *mockAuth) SignUp(_ context.Context, email, password string) (*models.User, error) {
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	m.lastAuthEmail = email
	m.lastAuthPassword = password
	return m.authUser, m.authErr
}

type mockSessions struct {
	loginToken  string
	loginErr    error
	resolveUser *models.User
	resolveErr  error
	logoutErr   error

	loginCalls       int
	lastResolveToken string
	lastLogoutToken  string
}

func (m *mockSessions) Login(_ context.Context, user *models.User) (string, error) {
	m.loginCalls++
	return m.loginToken, m.loginErr
}

func (m *mockSessions) Resolve(_ context.Context, token string) (*models.User, error) {
	m.lastResolveToken = token
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	if m.resolveUser == nil {
		return nil, service.ErrNoSession
	}
	return m.resolveUser, nil
}

func (m *mockSessions) Logout(_ context.Context, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

type mockTodos struct {
	createTodo *models.Todo
	createErr  error
	listResp   []models.Todo
	listErr    error
	getTodo    *models.Todo
	getErr     error
	updateTodo *models.Todo
	updateErr  error
	toggleTodo *models.Todo
	toggleErr  error
	deleteErr  error

	lastOwnerID string
	lastTodoID  string
	lastContent string
	createCalls int
	toggleCalls int
	deleteCalls int
}

func (m *mockTodos) Create(_ context.Context, ownerID, content string) (*models.Todo, error) {
	m.createCalls++
	m.lastOwnerID = ownerID
	m.lastContent = content
	return m.createTodo, m.createErr
}

func (m *mockTodos) List(_ context.Context, ownerID string) ([]models.Todo, error) {
	m.lastOwnerID = ownerID
	return m.listResp, m.listErr
}

func (m *mockTodos) Get(_ context.Context, ownerID, id string) (*models.Todo, error) {
	m.lastOwnerID = ownerID
	m.lastTodoID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getTodo, nil
}

func (m *mockTodos) Update(_ context.Context, ownerID, id, content string) (*models.Todo, error) {
	m.lastOwnerID = ownerID
	m.lastTodoID = id
	m.lastContent = content
	return m.updateTodo, m.updateErr
}

func (m *mockTodos) Toggle(_ context.Context, ownerID, id string) (*models.Todo, error) {
	m.toggleCalls++
	m.lastOwnerID = ownerID
	m.lastTodoID = id
	return m.toggleTodo, m.toggleErr
}

func (m *mockTodos) Delete(_ context.Context, ownerID, id string) error {
	m.deleteCalls++
	m.lastOwnerID = ownerID
	m.lastTodoID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, false)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func loggedInSessions(user *models.User) *mockSessions {
	return &mockSessions{resolveUser: user}
}
