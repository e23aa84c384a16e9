package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/luannguen/vrc-cms/internal/bulk"
	"github.com/luannguen/vrc-cms/internal/homepage"
	"github.com/luannguen/vrc-cms/internal/logging"
	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

// bulkDeletable lists the collections exposed for bulk deletion. Unknown
// collections get a 404 rather than an empty success.
var bulkDeletable = map[string]struct{}{
	"products": {},
	"posts":    {},
	"services": {},
	"banners":  {},
}

// Server exposes the content API over gin.
type Server struct {
	homepage *homepage.Service
	deleter  *bulk.Deleter
	logger   interfaces.Logger
	now      func() time.Time
}

// Option configures the server.
type Option func(*Server)

// WithLoggerProvider wires module-scoped logging into the HTTP layer.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Server) {
		s.logger = logging.APILogger(provider)
	}
}

// WithClock overrides the time source used for scheduling decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer wires handlers around the homepage service and the bulk deleter.
func NewServer(homepageSvc *homepage.Service, deleter *bulk.Deleter, opts ...Option) *Server {
	s := &Server{
		homepage: homepageSvc,
		deleter:  deleter,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		MaxAge:          12 * time.Hour,
	}))

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", s.handleHealth)
	apiGroup.GET("/homepage", s.handleHomepage)
	apiGroup.GET("/company-info", s.handleCompanyInfo)
	apiGroup.DELETE("/:collection", s.handleBulkDelete)
	apiGroup.OPTIONS("/:collection", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router
}
