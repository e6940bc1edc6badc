package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/richtext"
	"teakwood/storefront/internal/service"
	"teakwood/storefront/internal/view"
	"teakwood/storefront/internal/web"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Server renders the storefront pages over the service.
type Server struct {
	cfg     config.ServerConfig
	contact config.ContactConfig
	assets  view.Assets
	svc     *service.Service
	rich    *richtext.Renderer

	engine     *gin.Engine
	httpServer *http.Server
}

func New(
	cfg config.ServerConfig,
	contact config.ContactConfig,
	assets view.Assets,
	svc *service.Service,
	rich *richtext.Renderer,
) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		contact: contact,
		assets:  assets,
		svc:     svc,
		rich:    rich,
	}

	tmpl, err := web.Templates(s.funcs())
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), clientHints(), s.session())
	engine.SetHTMLTemplate(tmpl)
	s.routes(engine)

	s.engine = engine
	s.httpServer = &http.Server{
		Addr:           cfg.Addr(),
		Handler:        engine,
		ReadTimeout:    time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return s, nil
}

func (s *Server) routes(r *gin.Engine) {
	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/healthz", s.health)

	r.GET("/", s.home)
	r.GET("/categories", s.categories)
	r.GET("/products", s.products)
	r.GET("/search", s.search)

	product := r.Group("/product/:id")
	{
		product.GET("", s.product)
		product.POST("/reviews", s.submitReview)
		product.POST("/copy-link", s.copyLink)
	}

	r.GET("/faq", s.faq)
	r.GET("/contact", s.contactForm)
	r.POST("/contact", s.submitContact)

	api := r.Group("/api", corsMiddleware(s.cfg.AllowedOrigins))
	{
		api.GET("/faq", s.faqJSON)
		api.OPTIONS("/faq", func(*gin.Context) {})
	}

	r.NoRoute(s.notFound)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Storefront listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
