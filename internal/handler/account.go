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

type AccountHandler interface {
	AccountPage(c *gin.Context)
	VerifyAccount(c *gin.Context)
	UpdateAccount(c *gin.Context)
	DeleteAccount(c *gin.Context)
}

type accountHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAccountHandler(auth *service.AuthService, logger *zap.Logger) AccountHandler {
	return &accountHandler{auth: auth, logger: logger}
}

func (h *accountHandler) AccountPage(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	user, err := h.auth.GetByID(principal.UserID)
	if err != nil {
		h.logger.Error("Failed to load account", zap.Int64("user_id", principal.UserID), zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "get_account.html", gin.H{"user": user, "login": true})
}

// VerifyAccount re-checks the current password before the edit form is shown.
func (h *accountHandler) VerifyAccount(c *gin.Context) {
	principal, _ := middleware.Principal(c)
	password := c.PostForm("password")

	user, err := h.auth.GetByID(principal.UserID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if !h.auth.CheckPassword(user, password) {
		c.HTML(http.StatusOK, "get_account.html", gin.H{"user": user, "incorrect_password": true, "login": true})
		return
	}

	c.HTML(http.StatusOK, "account.html", gin.H{"user": user, "login": true})
}

func (h *accountHandler) UpdateAccount(c *gin.Context) {
	principal, _ := middleware.Principal(c)
	username := strings.TrimSpace(c.PostForm("username"))
	password := strings.TrimSpace(c.PostForm("password"))

	user, err := h.auth.Update(principal.UserID, username, password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			current, getErr := h.auth.GetByID(principal.UserID)
			if getErr != nil {
				c.Redirect(http.StatusSeeOther, "/")
				return
			}
			c.HTML(http.StatusOK, "account.html", gin.H{"taken": true, "user": current, "login": true})
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.logger.Error("Failed to update account", zap.Int64("user_id", principal.UserID), zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "account.html", gin.H{"success": true, "user": user, "login": true})
}

// DeleteAccount removes the credential record and withdraws the cookie. Rooms
// and images belonging to the account stay behind.
func (h *accountHandler) DeleteAccount(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	if err := h.auth.Delete(principal.UserID); err != nil {
		h.logger.Error("Failed to delete account", zap.Int64("user_id", principal.UserID), zap.Error(err))
	}

	h.logger.Info("Account deleted", zap.Int64("user_id", principal.UserID))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
