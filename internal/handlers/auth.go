package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photofeed/internal/middleware"
	"photofeed/internal/security"
	"photofeed/internal/service"
)

// Home sends authenticated visitors to the feed and everyone else to the
// login page.
func (h HandlerSet) Home(c *gin.Context) {
	if middleware.SessionActive(c, h.cfg) {
		c.Redirect(http.StatusFound, "/feed")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h HandlerSet) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Flash": popFlash(c)})
}

func (h HandlerSet) RegisterSubmit(c *gin.Context) {
	_, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Role:     c.PostForm("role"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials), errors.Is(err, service.ErrUsernameTaken):
			setFlash(c, err.Error(), "danger")
			c.Redirect(http.StatusFound, "/register")
		default:
			h.internalError(c, err, "register failed")
		}
		return
	}

	setFlash(c, "Account created, please log in", "success")
	c.Redirect(http.StatusFound, "/login")
}

func (h HandlerSet) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": popFlash(c)})
}

func (h HandlerSet) LoginSubmit(c *gin.Context) {
	user, err := h.auth.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			setFlash(c, "Invalid credentials", "danger")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.internalError(c, err, "login failed")
		return
	}

	token, err := security.GenerateSessionToken(
		h.cfg.Security.SessionSecret,
		user.ID,
		user.Username,
		string(user.Role),
		h.cfg.Security.SessionTTL,
	)
	if err != nil {
		h.internalError(c, err, "session token failed")
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.cfg.Security.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/feed")
}

func (h HandlerSet) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
