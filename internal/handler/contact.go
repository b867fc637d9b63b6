package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/middleware"
	"github.com/dbrown13/home-harmony/internal/service"
)

type ContactHandler interface {
	ContactPage(c *gin.Context)
	SubmitContact(c *gin.Context)
}

type contactHandler struct {
	mailer *service.Mailer
	logger *zap.Logger
}

func NewContactHandler(mailer *service.Mailer, logger *zap.Logger) ContactHandler {
	return &contactHandler{mailer: mailer, logger: logger}
}

func (h *contactHandler) ContactPage(c *gin.Context) {
	_, loggedIn := middleware.Principal(c)
	c.HTML(http.StatusOK, "contact.html", gin.H{"login": loggedIn})
}

func (h *contactHandler) SubmitContact(c *gin.Context) {
	_, loggedIn := middleware.Principal(c)
	email := c.PostForm("email")
	message := c.PostForm("message")

	if err := h.mailer.SendContact(email, message); err != nil {
		h.logger.Error("Failed to forward contact message", zap.Error(err))
	}

	c.HTML(http.StatusOK, "contact.html", gin.H{
		"submitted": true,
		"email":     email,
		"message":   message,
		"login":     loggedIn,
	})
}
