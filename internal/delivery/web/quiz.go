package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/service"
	"github.com/aliskhannn/deutsch-quiz/internal/session"
)

// quiz generates a quiz for the topic and keeps its answer key in the session,
// replacing the key of any earlier quiz.
func (h *Handler) quiz(c *gin.Context) error {
	topic := c.Param("topic")

	questions, key, err := h.quizService.GenerateQuiz(c.Request.Context(), topic)
	if err != nil {
		return err
	}

	session.FromContext(c).SetAnswerKey(key)
	h.metrics.QuizGenerated(key.Topic)

	return h.render(c, http.StatusOK, "quiz", gin.H{
		"Topic":     key.Topic,
		"Questions": questions,
	})
}

// result scores the submitted form against the answer key of the session.
// The key is consumed, and the score is stored for signed-in users.
func (h *Handler) result(c *gin.Context) error {
	if err := c.Request.ParseForm(); err != nil {
		h.logger.Debug("malformed quiz form", zap.Error(err))
	}

	answers := make(map[string]string, len(c.Request.PostForm))
	for prompt, values := range c.Request.PostForm {
		if len(values) > 0 {
			answers[prompt] = values[0]
		}
	}

	sess := session.FromContext(c)
	report := service.Score(sess.AnswerKey(), answers)

	user, authenticated := currentUser(c)
	if authenticated {
		if _, err := h.resultService.Record(c.Request.Context(), user.ID, report); err != nil {
			return err
		}
	}

	sess.ClearAnswerKey()
	h.metrics.QuizSubmitted(authenticated)

	return h.render(c, http.StatusOK, "result", gin.H{"Report": report})
}
