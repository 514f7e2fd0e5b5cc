package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/metrics"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
	"github.com/aliskhannn/deutsch-quiz/internal/service"
	"github.com/aliskhannn/deutsch-quiz/internal/session"
	"github.com/aliskhannn/deutsch-quiz/pkg/validator"
)

type credentialsForm struct {
	Username string `form:"username" validate:"required,max=80"`
	Password string `form:"password" validate:"required"`
}

func bindCredentials(c *gin.Context) (credentialsForm, error) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		return form, err
	}
	form.Username = strings.TrimSpace(form.Username)
	return form, validator.ValidateStruct(form)
}

func (h *Handler) registerPage(c *gin.Context) error {
	return h.render(c, http.StatusOK, "register", nil)
}

// register creates an account and sends the visitor to the login page.
func (h *Handler) register(c *gin.Context) error {
	sess := session.FromContext(c)

	form, err := bindCredentials(c)
	if err != nil {
		h.logger.Debug("invalid registration form", zap.Error(err))
		sess.AddFlash(flashDanger, msgFieldsRequired)
		return h.redirect(c, "/register")
	}

	user, err := h.accountService.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.metrics.Registration(metrics.StatusFailure)

		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			sess.AddFlash(flashDanger, msgUsernameTaken)
			return h.redirect(c, "/register")
		case errors.Is(err, service.ErrPasswordTooLong):
			sess.AddFlash(flashDanger, msgPasswordTooLong)
			return h.redirect(c, "/register")
		default:
			return err
		}
	}

	h.metrics.Registration(metrics.StatusSuccess)
	h.logger.Info("user registered", zap.Int64("user_id", user.ID))

	sess.AddFlash(flashSuccess, msgRegistered)
	return h.redirect(c, "/login")
}

func (h *Handler) loginPage(c *gin.Context) error {
	return h.render(c, http.StatusOK, "login", nil)
}

// login binds the session to the user. The session ID is rotated on success.
func (h *Handler) login(c *gin.Context) error {
	sess := session.FromContext(c)

	form, err := bindCredentials(c)
	if err != nil {
		sess.AddFlash(flashDanger, msgFieldsRequired)
		return h.render(c, http.StatusOK, "login", nil)
	}

	user, err := h.accountService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.metrics.LoginAttempt(metrics.StatusFailure)
			sess.AddFlash(flashDanger, msgInvalidCredentials)
			return h.render(c, http.StatusOK, "login", gin.H{"Username": form.Username})
		}
		return err
	}

	if err := h.sessions.Renew(c, sess); err != nil {
		return err
	}
	sess.SetUserID(user.ID)
	h.metrics.LoginAttempt(metrics.StatusSuccess)

	return h.redirect(c, "/dashboard")
}

// logout signs the user out. It is safe to repeat.
func (h *Handler) logout(c *gin.Context) error {
	sess := session.FromContext(c)
	sess.ClearUser()
	sess.AddFlash(flashInfo, msgLoggedOut)
	return h.redirect(c, "/")
}
