package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/felixge/httpsnoop"
	"golang.org/x/sync/errgroup"

	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/orchestrator"
	"linkedin-scraper/internal/utils"
)

// SessionCookie names the cookie that carries the session id
const SessionCookie = "scraper_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Server is the HTTP front end
type Server struct {
	config   models.Config
	sessions *orchestrator.Sessions
	logger   log.Interface
	now      func() time.Time

	// fetches outlive the request that started them
	baseCtx context.Context
	mux     *http.ServeMux
}

// NewServer wires the routes. baseCtx bounds background fetches.
func NewServer(baseCtx context.Context, config models.Config, sessions *orchestrator.Sessions, logger log.Interface) *Server {
	if logger == nil {
		logger = log.Log
	}
	s := &Server{
		config:   config,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		baseCtx:  baseCtx,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /fields", s.handleFields)
	s.mux.HandleFunc("POST /scrape", s.handleScrape)
	s.mux.HandleFunc("POST /page", s.handlePage)
	s.mux.HandleFunc("POST /theme", s.handleTheme)
	s.mux.HandleFunc("GET /export/pdf", s.handleExportPDF)
	s.mux.HandleFunc("GET /export/xlsx", s.handleExportSpreadsheet)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns the routed handler with request logging
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(s.mux, w, r)
		s.logger.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": m.Code,
			"bytes":  m.Written,
			"took":   utils.FormatDuration(m.Duration),
		}).Debug("request")
	})
}

// Run serves on the configured address and evicts idle sessions until ctx is done
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.WithField("addr", s.config.ListenAddr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		interval := s.config.SessionTTL / 4
		if interval <= 0 {
			interval = time.Minute
		}
		return s.sessions.Run(gctx, interval)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
