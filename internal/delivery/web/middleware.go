package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
	"github.com/aliskhannn/deutsch-quiz/internal/session"
)

const userKey = "user"

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		h.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if status >= http.StatusInternalServerError {
			h.logger.Warn("request served", fields...)
			return
		}
		h.logger.Debug("request served", fields...)
	}
}

func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.logger.Error("panic while serving request",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		h.renderError(c, http.StatusInternalServerError, msgInternalError)
		c.Abort()
	})
}

// withErrorHandling renders an error page for a failed handler.
// Unknown topics give 404, everything else is logged and gives 500.
func (h *Handler) withErrorHandling(fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := fn(c)
		if err == nil {
			return
		}

		if errors.Is(err, repository.ErrTopicNotFound) {
			h.renderError(c, http.StatusNotFound, msgTopicNotFound)
			return
		}

		fields := []zap.Field{zap.String("path", c.Request.URL.Path), zap.Error(err)}
		if user, ok := currentUser(c); ok {
			fields = append(fields, zap.Int64("user_id", user.ID))
		}
		h.logger.Error("handle error", fields...)
		_ = c.Error(err)
		h.renderError(c, http.StatusInternalServerError, msgInternalError)
	}
}

// sessionError renders the error page when the session store is unavailable.
func (h *Handler) sessionError(c *gin.Context, _ error) {
	h.renderError(c, http.StatusInternalServerError, msgInternalError)
}

// authenticate resolves the user bound to the session.
// A session pointing at a deleted user is signed out.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)

		userID, ok := sess.UserID()
		if !ok {
			c.Next()
			return
		}

		user, err := h.accountService.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				sess.ClearUser()
				c.Next()
				return
			}

			h.logger.Error("failed to load session user",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			_ = c.Error(err)
			h.renderError(c, http.StatusInternalServerError, msgInternalError)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// requireAuth sends anonymous visitors to the login page.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); ok {
			c.Next()
			return
		}

		sess := session.FromContext(c)
		sess.AddFlash(flashInfo, msgLoginRequired)
		if err := h.redirect(c, "/login"); err != nil {
			h.logger.Error("failed to save session", zap.Error(err))
			h.renderError(c, http.StatusInternalServerError, msgInternalError)
		}
		c.Abort()
	}
}

func currentUser(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}
