package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/metrics"
	"github.com/aliskhannn/deutsch-quiz/internal/session"
)

// HandlerFunc is a page handler whose error is turned into an error page by withErrorHandling.
type HandlerFunc func(c *gin.Context) error

type Handler struct {
	logger   *zap.Logger
	sessions *session.Manager
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	db       Pinger

	contentService ContentService
	quizService    QuizService
	accountService AccountService
	resultService  ResultService
}

func NewHandler(
	logger *zap.Logger,
	sessions *session.Manager,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	db Pinger,
	contentService ContentService,
	quizService QuizService,
	accountService AccountService,
	resultService ResultService,
) *Handler {
	return &Handler{
		logger:         logger,
		sessions:       sessions,
		metrics:        m,
		gatherer:       gatherer,
		db:             db,
		contentService: contentService,
		quizService:    quizService,
		accountService: accountService,
		resultService:  resultService,
	}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r *gin.Engine) {
	r.Use(h.requestLogger(), h.recovery())

	r.GET("/healthz", h.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	site := r.Group("/", h.sessions.Middleware(h.sessionError), h.authenticate())
	{
		site.GET("/", h.withErrorHandling(h.index))
		site.GET("/vocabulary", h.withErrorHandling(h.vocabulary))
		site.GET("/grammar", h.withErrorHandling(h.grammar))
		site.GET("/exercises", h.withErrorHandling(h.exercises))
		site.GET("/quiz/:topic", h.withErrorHandling(h.quiz))
		site.POST("/result", h.withErrorHandling(h.result))

		site.GET("/register", h.withErrorHandling(h.registerPage))
		site.POST("/register", h.withErrorHandling(h.register))
		site.GET("/login", h.withErrorHandling(h.loginPage))
		site.POST("/login", h.withErrorHandling(h.login))

		auth := site.Group("/", h.requireAuth())
		auth.GET("/logout", h.withErrorHandling(h.logout))
		auth.GET("/dashboard", h.withErrorHandling(h.dashboard))
	}

	r.NoRoute(func(c *gin.Context) {
		h.renderError(c, http.StatusNotFound, msgPageNotFound)
	})
}
