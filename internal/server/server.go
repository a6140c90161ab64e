// Package server serves prayer schedules over HTTP: a small HTML page, a
// JSON API, raw downloads, health and Prometheus metrics.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/metrics"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var myt = schedule.Malaysia

const shutdownTimeout = 5 * time.Second

// Options configures a Server. Only Loader is required.
type Options struct {
	Loader      *loader.Loader
	DefaultZone string
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry // serves /metrics when set
	Now         func() time.Time
	Location    *time.Location // defaults to Malaysia time
}

// Server is the HTTP front end.
type Server struct {
	engine      *gin.Engine
	loader      *loader.Loader
	defaultZone string
	log         zerolog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	loc         *time.Location
}

// New builds the router.
func New(opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, errors.New("server: loader is required")
	}

	s := &Server{
		loader:      opts.Loader,
		defaultZone: loader.NormalizeZone(opts.DefaultZone),
		log:         opts.Logger,
		metrics:     opts.Metrics,
		now:         opts.Now,
		loc:         opts.Location,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = myt
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestID(), s.accessLog(), s.countRequests())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Accept", "Content-Type", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/zones", resolve(s.listZones))
	v1.GET("/zones/:zone/schedule", resolve(s.getSchedule))
	v1.GET("/zones/:zone/next", s.getNext)

	r.GET("/download/:zone/:kind", s.download)

	s.engine = r
	return s, nil
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}
