package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboard lists the quiz history of the signed-in user, newest first.
func (h *Handler) dashboard(c *gin.Context) error {
	user, _ := currentUser(c)

	results, err := h.resultService.History(c.Request.Context(), user.ID)
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "dashboard", gin.H{"Results": results})
}
