package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/seoaudit/internal/metrics"
	"github.com/nao1215/seoaudit/internal/model"
)

const (
	// DefaultJobTimeout bounds one background audit, metrics included.
	DefaultJobTimeout = 5 * time.Minute

	// DefaultHistoryLimit is the number of reports returned by a history query.
	DefaultHistoryLimit = 20

	// maxHistoryLimit caps the limit query parameter.
	maxHistoryLimit = 500

	// shutdownTimeout bounds the graceful HTTP shutdown.
	shutdownTimeout = 10 * time.Second
)

// Store persists audit reports.
type Store interface {
	CreateReport(ctx context.Context, report *model.AuditReport) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReportStatus) error
	SaveReport(ctx context.Context, report *model.AuditReport) error
	GetReport(ctx context.Context, id int64) (*model.AuditReport, error)
	GetHistory(ctx context.Context, pageURL string, limit int) ([]*model.AuditReport, error)
	ListAuditedURLs(ctx context.Context) ([]string, error)
}

// Auditor runs one audit to completion.
type Auditor interface {
	RunAudit(ctx context.Context, rawURL, focusKeyword string, ext *metrics.External) *model.AuditReport
}

// Server is the HTTP job controller.
type Server struct {
	engine     *gin.Engine
	store      Store
	auditor    Auditor
	logger     *slog.Logger
	limiter    *ipLimiter
	jobTimeout time.Duration

	// jobCtx is cancelled by Close to abort running audits.
	jobCtx    context.Context
	cancelJob context.CancelFunc
	jobs      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRateLimit sets the per-IP request rate and burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 && burst > 0 {
			s.limiter = newIPLimiter(perSecond, burst)
		}
	}
}

// WithJobTimeout bounds each background audit.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.jobTimeout = d
		}
	}
}

// New creates a Server backed by store and auditor.
func New(store Store, auditor Auditor, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	jobCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		store:      store,
		auditor:    auditor,
		logger:     slog.Default(),
		limiter:    newIPLimiter(0.5, 5),
		jobTimeout: DefaultJobTimeout,
		jobCtx:     jobCtx,
		cancelJob:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(recovery(s.logger))
	r.Use(requestLogger(s.logger))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)

	audits := api.Group("/audits", s.limiter.middleware())
	audits.POST("", s.handleCreateAudit)
	audits.GET("", s.handleListAudits)
	audits.GET("/:id", s.handleGetAudit)

	return r
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves the API on addr until ctx is cancelled, then shuts
// down gracefully and waits for running audits.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close aborts running audits and waits for them to be saved.
func (s *Server) Close() {
	s.cancelJob()
	s.jobs.Wait()
}

// Wait blocks until every background audit has finished.
func (s *Server) Wait() {
	s.jobs.Wait()
}
