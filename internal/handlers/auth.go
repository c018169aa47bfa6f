package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/service"
)

// loginForm doubles for both views; signup gets the stricter password
// policy in the service, login only requires presence.
type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type signupForm struct {
	Email    string `form:"email" binding:"required,email,max=1000"`
	Password string `form:"password" binding:"required,max=1000"`
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Next": safeNext(c.Query("next"))})
}

func (h *Handler) signupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Enter your email address and password.",
			"Email": form.Email,
			"Next":  safeNext(form.Next),
		})
		return
	}

	user, err := h.services.Authorization.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for both unknown email and wrong password.
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Error": "Could not log in with those credentials.",
				"Email": form.Email,
				"Next":  safeNext(form.Next),
			})
			return
		}
		h.serverError(c, "login_failed", err)
		return
	}

	token, err := h.services.Sessions.Login(c.Request.Context(), user)
	if err != nil {
		h.serverError(c, "session_create_failed", err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, safeNext(form.Next))
}

func (h *Handler) signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"Error": "Enter a valid email address and a password.",
			"Email": form.Email,
		})
		return
	}

	_, err := h.services.Authorization.SignUp(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			c.HTML(http.StatusBadRequest, "signup.html", gin.H{
				"Error": err.Error(),
				"Email": form.Email,
			})
		case errors.Is(err, service.ErrEmailTaken):
			c.HTML(http.StatusBadRequest, "signup.html", gin.H{
				"Error": "That email is already registered.",
				"Email": form.Email,
			})
		default:
			h.serverError(c, "signup_failed", err)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("user_signed_up", "email", form.Email)
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// logout drops the session (idempotent) and clears the cookie.
func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)
	if err := h.services.Sessions.Logout(c.Request.Context(), token); err != nil {
		h.serverError(c, "logout_failed", err)
		return
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// serverError hides infrastructure detail from the client and keeps it in
// the log.
func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	if h.log != nil {
		h.log.Errorw(msg, "err", err)
	}
	c.Abort()
	c.HTML(http.StatusInternalServerError, "error.html", nil)
}
