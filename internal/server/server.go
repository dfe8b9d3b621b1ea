// Package server exposes a running frame.Driver over HTTP.
//
// Routes:
//
//	GET  /healthz         liveness
//	GET  /frame.png       last rendered frame
//	GET  /stats           eased counters, raw and formatted
//	GET  /state           driver summary
//	GET  /hubs            hub marker positions
//	POST /click           spawn extra routes (rate limited)
//	POST /hover, DELETE /hover
//	POST /resize          rebuild for a new canvas size
//	GET  /theme, POST /theme
//	GET  /carousel, POST /carousel
//	GET  /ws              stats and carousel stream
//	GET  /metrics         Prometheus exposition (when metrics are enabled)
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/chenyukang/fiber-world/carousel"
	"github.com/chenyukang/fiber-world/frame"
	"github.com/chenyukang/fiber-world/internal/metrics"
	"github.com/chenyukang/fiber-world/theme"
)

// ErrDriverNil indicates New was called without a driver.
var ErrDriverNil = errors.New("server: driver is nil")

// Options configures a Server. Zero values select the defaults below.
type Options struct {
	// ClickRate is the sustained number of /click requests per second.
	ClickRate float64
	// ClickBurst is the limiter bucket size.
	ClickBurst int
	// StreamInterval paces /ws stats messages.
	StreamInterval time.Duration
	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration

	Theme    *theme.State
	Carousel *carousel.Carousel
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

const (
	defaultClickRate       = 5
	defaultClickBurst      = 10
	defaultStreamInterval  = 1200 * time.Millisecond
	defaultShutdownTimeout = 5 * time.Second
)

// Server routes HTTP requests to a driver.
type Server struct {
	driver  *frame.Driver
	opts    Options
	log     *slog.Logger
	limiter *rate.Limiter
	engine  *gin.Engine
}

// New wires the routes. The driver is expected to be ticking elsewhere.
func New(d *frame.Driver, opts Options) (*Server, error) {
	if d == nil {
		return nil, ErrDriverNil
	}
	if opts.ClickRate <= 0 {
		opts.ClickRate = defaultClickRate
	}
	if opts.ClickBurst <= 0 {
		opts.ClickBurst = defaultClickBurst
	}
	if opts.StreamInterval <= 0 {
		opts.StreamInterval = defaultStreamInterval
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		driver:  d,
		opts:    opts,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(opts.ClickRate), opts.ClickBurst),
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLog())
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", s.health)
	r.GET("/frame.png", s.framePNG)
	r.GET("/stats", s.stats)
	r.GET("/state", s.state)
	r.GET("/hubs", s.hubs)
	r.POST("/click", s.click)
	r.POST("/hover", s.hover)
	r.DELETE("/hover", s.leave)
	r.POST("/resize", s.resize)
	r.GET("/theme", s.getTheme)
	r.POST("/theme", s.setTheme)
	r.GET("/carousel", s.getCarousel)
	r.POST("/carousel", s.moveCarousel)
	r.GET("/ws", s.stream)
	if s.opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.opts.Metrics.Handler()))
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server.Run: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Run: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Run: %w", err)
	}
	s.log.Info("http server stopped")
	return ctx.Err()
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
