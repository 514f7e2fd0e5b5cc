package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) index(c *gin.Context) error {
	return h.render(c, http.StatusOK, "index", nil)
}

func (h *Handler) vocabulary(c *gin.Context) error {
	vocab, err := h.contentService.Vocabulary(c.Request.Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "vocabulary", gin.H{"Topics": vocab.Topics})
}

func (h *Handler) grammar(c *gin.Context) error {
	lessons, err := h.contentService.Grammar(c.Request.Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "grammar", gin.H{"Lessons": lessons})
}

func (h *Handler) exercises(c *gin.Context) error {
	topics, err := h.contentService.Topics(c.Request.Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "exercises", gin.H{"Topics": topics})
}
