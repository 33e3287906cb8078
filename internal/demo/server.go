// Package demo is an in-memory stand-in for the support chat service. It
// speaks the same HTTP API, answers from a scripted Scenario and backs the
// demo command and integration tests.
package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zhubert/supportchat/internal/logger"
)

// DefaultListLimit matches the service's default page size.
const DefaultListLimit = 10

type chatRequest struct {
	Message   string `json:"message"`
	UserID    int    `json:"user_id"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	MessageID int    `json:"message_id"`
}

// Service answers chat requests from a scenario.
type Service struct {
	store    *Store
	scenario *Scenario
	sleep    func(context.Context, time.Duration)
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithScenario replaces the default script.
func WithScenario(s *Scenario) Option {
	return func(svc *Service) { svc.scenario = s }
}

// WithoutDelay answers immediately regardless of the scenario delay.
func WithoutDelay() Option {
	return func(svc *Service) { svc.sleep = func(context.Context, time.Duration) {} }
}

// WithStore shares a store between services.
func WithStore(st *Store) Option {
	return func(svc *Service) { svc.store = st }
}

// New creates a demo service.
func New(opts ...Option) *Service {
	svc := &Service{
		store:    NewStore(),
		scenario: DefaultScenario(),
		sleep:    sleepContext,
		log:      logger.WithComponent("demo"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Store returns the backing store.
func (s *Service) Store() *Store {
	return s.store
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes(router)
	return router
}

func (s *Service) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/chat", s.handleChat)
	api.GET("/sessions", s.handleListSessions)
	api.GET("/sessions/:id", s.handleGetSession)
	api.DELETE("/sessions/:id", s.handleDeleteSession)
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "chatbot-api"})
}

func (s *Service) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "message is required"})
		return
	}

	reply := s.scenario.Match(req.Message)
	s.sleep(c.Request.Context(), s.scenario.Delay)
	if reply.Status != 0 {
		c.JSON(reply.Status, gin.H{"detail": "Error processing chat message: " + reply.Response})
		return
	}

	sessionID := s.store.Open(req.UserID, req.SessionID)
	s.store.Append(sessionID, TypeUser, req.Message)
	messageID, ok := s.store.Append(sessionID, TypeAssistant, reply.Response)
	if !ok {
		// deleted between open and append
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "session vanished"})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Response:  reply.Response,
		SessionID: sessionID,
		MessageID: messageID,
	})
}

func (s *Service) handleListSessions(c *gin.Context) {
	userID, err := intQuery(c, "user_id", 0)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	limit, err := intQuery(c, "limit", DefaultListLimit)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.store.List(userID, limit))
}

func (s *Service) handleGetSession(c *gin.Context) {
	sess, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Service) handleDeleteSession(c *gin.Context) {
	if !s.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// requestLogger logs each request through the application logger.
func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		switch {
		case status >= 500:
			s.log.Error("request", attrs...)
		case status >= 400:
			s.log.Warn("request", attrs...)
		default:
			s.log.Debug("request", attrs...)
		}
	}
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Server is a running demo service.
type Server struct {
	ln  net.Listener
	srv *http.Server
}

// Listen binds addr. Use "127.0.0.1:0" for a free loopback port.
func Listen(addr string, svc *Service) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	return &Server{
		ln:  ln,
		srv: &http.Server{Handler: svc.Handler(), ReadHeaderTimeout: 5 * time.Second},
	}, nil
}

// URL returns the base URL clients should use.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String()
}

// Serve blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, out io.Writer) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	if out != nil {
		fmt.Fprintf(out, "Demo service running at %s\n", s.URL())
	}

	if err := s.srv.Serve(s.ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}
