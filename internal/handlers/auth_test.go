package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todoapp/internal/models"
	"todoapp/internal/service"
)

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_SuccessRedirectsToLogin(t *testing.T) {
	auth := &mockAuth{signUpUser: &models.User{ID: "u-1", Email: "a@x.com"}}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postForm(r, "/signup", url.Values{
		"email":    {"a@x.com"},
		"password": {"Abc12345!"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d, body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if auth.lastSignUpEmail != "a@x.com" || auth.lastSignUpPassword != "Abc12345!" {
		t.Fatalf("signup form not passed through: %q / %q", auth.lastSignUpEmail, auth.lastSignUpPassword)
	}
}

func TestSignup_InvalidEmailRerendersForm(t *testing.T) {
	auth := &mockAuth{}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postForm(r, "/signup", url.Values{
		"email":    {"not-an-email"},
		"password": {"Abc12345!"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<form method=\"post\" action=\"/signup\"") {
		t.Fatalf("expected the signup form back, body=%s", w.Body.String())
	}
	if auth.lastSignUpEmail != "" {
		t.Fatalf("service must not be called for invalid form input")
	}
}

func TestSignup_WeakPasswordShowsPolicy(t *testing.T) {
	auth := &mockAuth{signUpErr: service.ErrWeakPassword}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postForm(r, "/signup", url.Values{
		"email":    {"a@x.com"},
		"password": {"short"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "8-1000 characters") {
		t.Fatalf("expected the policy message, body=%s", w.Body.String())
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	auth := &mockAuth{signUpErr: service.ErrEmailTaken}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postForm(r, "/signup", url.Values{
		"email":    {"a@x.com"},
		"password": {"Abc12345!"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already registered") {
		t.Fatalf("expected duplicate email message, body=%s", w.Body.String())
	}
}

func TestLogin_SuccessSetsCookieAndRedirects(t *testing.T) {
	user := &models.User{ID: "u-1", Email: "a@x.com"}
	auth := &mockAuth{authUser: user}
	sessions := &mockSessions{loginToken: "tok-abc"}
	s := &service.Service{Authorization: auth, Sessions: sessions}
	r := newTestRouter(s)

	w := postForm(r, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"Abc12345!"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d, body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if sessions.loginCalls != 1 {
		t.Fatalf("expected one session login, got %d", sessions.loginCalls)
	}

	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if found.Value != "tok-abc" {
		t.Fatalf("expected cookie value tok-abc, got %q", found.Value)
	}
	if !found.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestLogin_HonorsLocalNextTargetOnly(t *testing.T) {
	user := &models.User{ID: "u-1", Email: "a@x.com"}

	tests := []struct {
		name string
		next string
		want string
	}{
		{"local path", "/todos/t-1/edit", "/todos/t-1/edit"},
		{"external url rejected", "https://evil.example", "/"},
		{"protocol-relative rejected", "//evil.example", "/"},
		{"empty defaults to root", "", "/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{authUser: user}
			sessions := &mockSessions{loginToken: "tok-abc"}
			r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

			w := postForm(r, "/login", url.Values{
				"email":    {"a@x.com"},
				"password": {"Abc12345!"},
				"next":     {tt.next},
			})

			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.want {
				t.Fatalf("expected redirect to %q, got %q", tt.want, loc)
			}
		})
	}
}

func TestLogin_BadCredentialsAreGeneric(t *testing.T) {
	auth := &mockAuth{authErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postForm(r, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"Wrong1234!"},
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Could not log in") {
		t.Fatalf("expected generic failure message, body=%s", body)
	}
	// Neither "email" nor "password" is singled out.
	if strings.Contains(body, "unknown email") || strings.Contains(body, "wrong password") {
		t.Fatalf("failure message leaks which credential was wrong: %s", body)
	}
}

func TestLogout_ClearsCookieAndRedirects(t *testing.T) {
	sessions := &mockSessions{}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(sessionCookie("tok-abc"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if sessions.lastLogoutToken != "tok-abc" {
		t.Fatalf("expected logout of cookie token, got %q", sessions.lastLogoutToken)
	}
	var cleared bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie to be cleared")
	}
}

func TestLogout_WithoutCookieIsFine(t *testing.T) {
	sessions := &mockSessions{}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
}
