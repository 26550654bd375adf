package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jajnabi/folio/internal/publist"
)

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "folio_session"

// session is one visitor's publication controls. Its controller is bound to
// a snapshot generation and rebuilt, keeping its state, after a reload.
type session struct {
	mu   sync.Mutex
	gen  uint64
	ctrl *publist.Controller
	view publist.View
}

// bind points the session at the snapshot's publications, carrying the
// current filter and sort order over. Callers hold s.mu.
func (s *session) bind(snap *Snapshot) {
	if s.ctrl != nil && s.gen == snap.gen {
		return
	}
	state := publist.InitialState
	if s.ctrl != nil {
		state = s.ctrl.State()
	}

	s.ctrl = publist.NewController(snap.Site.Publications)
	s.ctrl.OnChange(func(v publist.View) { s.view = v })
	s.gen = snap.gen
	s.view = s.ctrl.View()

	if state.Filter != s.view.State.Filter {
		_ = s.ctrl.SetFilterType(state.Filter)
	}
	if state.Order != s.view.State.Order {
		s.ctrl.ToggleSort()
	}
}

// MaxSessions bounds the stored sessions; the least recently used one is
// evicted to make room.
const MaxSessions = 1024

type sessionEntry struct {
	sess *session
	used time.Time
}

type sessions struct {
	mu    sync.Mutex
	m     map[string]*sessionEntry
	limit int
}

func newSessions(limit int) *sessions {
	if limit <= 0 {
		limit = MaxSessions
	}
	return &sessions{m: make(map[string]*sessionEntry), limit: limit}
}

// peek returns the stored session for id, or nil.
func (ss *sessions) peek(id string) *session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	e, ok := ss.m[id]
	if !ok {
		return nil
	}
	e.used = time.Now()
	return e.sess
}

// lookup returns the session for id, creating it when absent.
func (ss *sessions) lookup(id string) *session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := time.Now()
	if e, ok := ss.m[id]; ok {
		e.used = now
		return e.sess
	}
	if len(ss.m) >= ss.limit {
		ss.evictOldest()
	}
	s := &session{}
	ss.m[id] = &sessionEntry{sess: s, used: now}
	return s
}

// evictOldest drops the least recently used session. Callers hold ss.mu.
func (ss *sessions) evictOldest() {
	var oldest string
	var at time.Time
	for id, e := range ss.m {
		if oldest == "" || e.used.Before(at) {
			oldest, at = id, e.used
		}
	}
	delete(ss.m, oldest)
}

func (ss *sessions) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.m)
}

// sessionID reads the session cookie, issuing a new id when it is missing
// or malformed. The returned cookie is nil when the request already had one.
func sessionID(c *gin.Context) (string, *http.Cookie) {
	if v, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(v); err == nil {
			return v, nil
		}
	}
	id := uuid.NewString()
	return id, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
