// Package server hosts the page with live publication controls for local
// authoring.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/publist"
	"github.com/jajnabi/folio/internal/render"
)

// Snapshot is the immutable content the server renders. Reload replaces it
// as a whole.
type Snapshot struct {
	Site     *content.Site
	Renderer *render.Renderer
	Title    string

	gen uint64
}

// Server serves one site to many sessions.
type Server struct {
	snap     atomic.Pointer[Snapshot]
	gen      atomic.Uint64
	sessions *sessions
	hub      *Hub
	logger   *zap.Logger
	assets   string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAssets serves dir under /assets.
func WithAssets(dir string) Option {
	return func(s *Server) {
		s.assets = dir
	}
}

// New creates a server over snap.
func New(snap *Snapshot, opts ...Option) *Server {
	s := &Server{
		sessions: newSessions(MaxSessions),
		hub:      NewHub(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store(snap)
	return s
}

func (s *Server) store(snap *Snapshot) {
	next := *snap
	next.gen = s.gen.Add(1)
	s.snap.Store(&next)
}

// Reload swaps in new content. Sessions keep their filter and sort order.
// Connected pages are told to reload.
func (s *Server) Reload(snap *Snapshot) {
	s.store(snap)
	s.logger.Info("content reloaded", zap.Int("clients", s.hub.Len()))
	s.hub.Broadcast(gin.H{"action": "reload"})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes mounts every route on r.
func (s *Server) RegisterRoutes(r gin.IRouter) {
	r.GET("/", s.page)
	r.GET("/healthz", s.health)
	r.GET("/sections/:name", s.section)
	r.POST("/publications/filter/:type", s.filter)
	r.POST("/publications/sort", s.toggleSort)
	r.GET("/ws", s.ws)
	if s.assets != "" {
		r.Static("/assets", s.assets)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// withSession resolves the caller's session, bound to the current snapshot,
// and runs fn while holding its lock. Without create, a caller that has not
// used a control yet gets a throwaway session in the initial state.
func (s *Server) withSession(c *gin.Context, create bool, fn func(snap *Snapshot, sess *session)) {
	id, cookie := sessionID(c)
	if cookie != nil {
		http.SetCookie(c.Writer, cookie)
	}
	snap := s.snap.Load()
	var sess *session
	if create {
		sess = s.sessions.lookup(id)
	} else if sess = s.sessions.peek(id); sess == nil {
		sess = &session{}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.bind(snap)
	fn(snap, sess)
}

func (s *Server) page(c *gin.Context) {
	s.withSession(c, false, func(snap *Snapshot, sess *session) {
		html, err := snap.Renderer.Page(snap.Site, sess.view, render.PageOptions{Title: snap.Title})
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	})
}

func (s *Server) health(c *gin.Context) {
	snap := s.snap.Load()
	status := gin.H{}
	for _, sec := range content.Sections {
		if err := snap.Site.Errors[sec]; err != nil {
			status[string(sec)] = err.Error()
			continue
		}
		status[string(sec)] = "ok"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sections": status,
		"sessions": s.sessions.len(),
		"clients":  s.hub.Len(),
	})
}

func (s *Server) section(c *gin.Context) {
	name := content.Section(c.Param("name"))
	if !knownSection(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown section %q", name)})
		return
	}
	s.withSession(c, false, func(snap *Snapshot, sess *session) {
		html, err := snap.Renderer.Section(snap.Site, name, sess.view)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	})
}

func (s *Server) filter(c *gin.Context) {
	f, err := publist.ParseFilterType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.withSession(c, true, func(snap *Snapshot, sess *session) {
		if err := sess.ctrl.SetFilterType(f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.respondPublications(c, snap, sess)
	})
}

func (s *Server) toggleSort(c *gin.Context) {
	s.withSession(c, true, func(snap *Snapshot, sess *session) {
		sess.ctrl.ToggleSort()
		s.respondPublications(c, snap, sess)
	})
}

// respondPublications answers a control POST: the publications fragment for
// script callers, a redirect back to the page for plain form posts.
func (s *Server) respondPublications(c *gin.Context, snap *Snapshot, sess *session) {
	if c.GetHeader("X-Requested-With") == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	html, err := publicationsFragment(snap, sess)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func publicationsFragment(snap *Snapshot, sess *session) (template.HTML, error) {
	return snap.Renderer.Section(snap.Site, content.SectionPublications, sess.view)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("render failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
}

func knownSection(name content.Section) bool {
	for _, sec := range content.Sections {
		if sec == name {
			return true
		}
	}
	return false
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := httpSrv.Shutdown(shutdownCtx)
	s.hub.closeAll()
	if err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
