package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/middleware"
	"github.com/dbrown13/home-harmony/internal/service"
)

type AuthHandler interface {
	LoginPage(c *gin.Context)
	Login(c *gin.Context)
	SignupPage(c *gin.Context)
	Signup(c *gin.Context)
	Logout(c *gin.Context)
}

type authHandler struct {
	auth    *service.AuthService
	tokens  *service.TokenService
	sweeper *service.Sweeper
	logger  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, tokens *service.TokenService, sweeper *service.Sweeper, logger *zap.Logger) AuthHandler {
	return &authHandler{auth: auth, tokens: tokens, sweeper: sweeper, logger: logger}
}

func (h *authHandler) LoginPage(c *gin.Context) {
	_, loggedIn := middleware.Principal(c)
	c.HTML(http.StatusOK, "index.html", gin.H{"login": loggedIn})
}

func (h *authHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := strings.TrimSpace(c.PostForm("password"))

	user, err := h.auth.Verify(username, password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.HTML(http.StatusOK, "index.html", gin.H{"incorrect_username": true, "username": username})
			return
		}
		if errors.Is(err, service.ErrWrongPassword) {
			c.HTML(http.StatusOK, "index.html", gin.H{"incorrect_password": true})
			return
		}
		h.logger.Error("Failed to verify credentials", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"error": true})
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"error": true})
		return
	}

	h.logger.Info("User logged in", zap.String("username", user.Username))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.CookieName, h.tokens.CookieValue(token), int(h.tokens.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/home")
}

func (h *authHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *authHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := strings.TrimSpace(c.PostForm("password"))

	if _, err := h.auth.Register(username, password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.HTML(http.StatusOK, "signup.html", gin.H{"taken": true, "username": username})
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"error": true})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"signup": true})
}

// Logout clears the session cookie and sweeps the upload staging directory.
// The token itself stays valid until expiry; the cookie is the only thing
// withdrawn here.
func (h *authHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.CookieName, "", -1, "/", "", false, true)

	h.sweeper.Sweep()

	c.Redirect(http.StatusSeeOther, "/")
}
