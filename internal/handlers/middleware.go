package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"todoapp/internal/models"
	"todoapp/internal/service"
)

const (
	sessionCookieName = "todo_session"
	cookieMaxAge      = 24 * 60 * 60 // seconds, matching the session window

	userCtxKey = "currentUser"
)

// sessionMiddleware gates the protected routes: it resolves the session
// cookie and either attaches the user to the context or sends the caller
// to the login page. HTMX requests get a bare 401 instead of a redirect,
// since a redirect would be swallowed by the partial swap.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)

	user, err := h.services.Sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			h.redirectToLogin(c)
			return
		}
		if h.log != nil {
			h.log.Errorw("session_resolve_failed", "err", err)
		}
		c.Abort()
		c.HTML(http.StatusInternalServerError, "error.html", nil)
		return
	}

	// Resolve slid the server-side expiry; reissue the cookie so the
	// browser's deadline slides with it.
	h.setSessionCookie(c, token)

	c.Set(userCtxKey, user)
	c.Next()
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	c.Abort()
	if isHTMX(c) {
		c.Status(http.StatusUnauthorized)
		return
	}
	target := "/login"
	if next := c.Request.URL.Path; next != "" && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// currentUser returns the identity the middleware attached. Only valid on
// protected routes.
func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(userCtxKey)
	user, _ := u.(*models.User)
	return user
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// safeNext accepts only site-local redirect targets from the login form.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cookieSecure, true)
}
