package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "vocabulary", "grammar", "exercises", "quiz", "result",
	"register", "login", "dashboard", "error",
}

var pages = mustParsePages()

var templateFuncs = template.FuncMap{
	"isMap": func(v any) bool {
		switch v.(type) {
		case map[string]any, entities.GrammarLesson:
			return true
		}
		return false
	},
	"isList": func(v any) bool {
		_, ok := v.([]any)
		return ok
	},
	"topicName": func(topic *string) string {
		if topic == nil {
			return msgNoTopic
		}
		return *topic
	},
	"add": func(a, b int) int { return a + b },
}

func mustParsePages() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		parsed[name] = template.Must(
			template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html"),
		)
	}
	return parsed
}

// render writes a page. Pending flashes are shown and the session is saved
// before anything is written.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) error {
	sess := session.FromContext(c)

	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = sess.Flashes()
	if user, ok := currentUser(c); ok {
		data["User"] = user
	}

	if err := h.sessions.Save(c, sess); err != nil {
		return err
	}

	return h.write(c, status, page, data)
}

func (h *Handler) write(c *gin.Context, status int, page string, data gin.H) error {
	tmpl, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	return nil
}

// renderError writes the error page without touching the session.
func (h *Handler) renderError(c *gin.Context, status int, message string) {
	data := gin.H{"Status": status, "Message": message}
	if user, ok := currentUser(c); ok {
		data["User"] = user
	}

	if err := h.write(c, status, "error", data); err != nil {
		h.logger.Error("failed to render error page", zap.Error(err))
		c.String(status, message)
	}
}

// redirect saves the session and sends a 302 to location.
func (h *Handler) redirect(c *gin.Context, location string) error {
	if err := h.sessions.Save(c, session.FromContext(c)); err != nil {
		return err
	}
	c.Redirect(http.StatusFound, location)
	return nil
}
