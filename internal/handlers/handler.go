package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"people_api/internal/logger"
	"people_api/internal/metrics"
	"people_api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	_ "people_api/docs" // registers the swagger doc

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options switch between the open and the authenticated API and tune the session cookie.
type Options struct {
	AuthEnabled    bool
	// LegacyStatus answers unauthorized requests with 400 and deletes with 204.
	LegacyStatus   bool
	CookieDomain   string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.CookieDomain == "" {
		opts.CookieDomain = defaultCookieDomain
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.New(h.corsConfig()), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerSystemRoutes(router)

	router.GET("/", h.hello)

	var gate []gin.HandlerFunc
	if h.opts.AuthEnabled {
		h.registerAuthRoutes(router)
		gate = append(gate, h.authMiddleware)
	}
	h.registerPeopleRoutes(router.Group("/people", gate...))

	return router
}

func (h *Handler) registerSystemRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/ready", h.ready)
	if h.opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.opts.Metrics.Handler()))
	}
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/signup", h.signUp)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
	r.GET("/cookietest", h.cookieTest)
}

func (h *Handler) registerPeopleRoutes(people *gin.RouterGroup) {
	people.GET("", h.listPeople)
	people.POST("", h.createPerson)
	// Live list: ws://host/people/ws?interval=2s
	people.GET("/ws", h.peopleStream)
	people.GET("/:id", h.getPerson)
	people.PUT("/:id", h.updatePerson)
	people.DELETE("/:id", h.deletePerson)
}

// corsConfig allows credentialed requests so the session cookie travels cross-origin.
// "*" reflects any origin, since browsers reject a literal wildcard with credentials.
func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := h.opts.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// requestLogger records one log line and the request metrics per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	elapsed := time.Since(start)
	status := c.Writer.Status()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	if h.opts.Metrics != nil {
		h.opts.Metrics.Observe(c.Request.Method, route, strconv.Itoa(status), elapsed.Seconds())
	}
	if h.log != nil {
		h.log.Infow("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}
