package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/publist"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local preview only
	},
}

// wsRequest is a control message from the page.
type wsRequest struct {
	Action string `json:"action"`
	Type   string `json:"type,omitempty"`
}

// wsReply carries a re-rendered section, or an error.
type wsReply struct {
	Section string `json:"section,omitempty"`
	HTML    string `json:"html,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) ws(c *gin.Context) {
	id, cookie := sessionID(c)
	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := &client{conn: conn}
	s.hub.add(cl)
	defer s.hub.remove(cl)

	sess := s.sessions.lookup(id)
	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		reply := s.handleControl(sess, req)
		if err := cl.writeJSON(reply); err != nil {
			return
		}
	}
}

func (s *Server) handleControl(sess *session, req wsRequest) wsReply {
	snap := s.snap.Load()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.bind(snap)

	switch req.Action {
	case "filter":
		if err := sess.ctrl.SetFilterType(publist.FilterType(req.Type)); err != nil {
			return wsReply{Error: err.Error()}
		}
	case "sort":
		sess.ctrl.ToggleSort()
	default:
		return wsReply{Error: "unknown action " + req.Action}
	}

	html, err := publicationsFragment(snap, sess)
	if err != nil {
		s.logger.Error("render failed", zap.Error(err))
		return wsReply{Error: "render failed"}
	}
	return wsReply{Section: string(content.SectionPublications), HTML: string(html)}
}
