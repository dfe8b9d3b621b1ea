package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// StreamMessage is one /ws frame. Type is "stats" or "carousel".
type StreamMessage struct {
	Type  string         `json:"type"`
	Stats *StatsResponse `json:"stats,omitempty"`
	Step  int            `json:"step,omitempty"`
}

// stream pushes the eased counters every StreamInterval and carousel steps
// as they change, until the client goes away or the server stops.
func (s *Server) stream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	steps := make(chan int, 4)
	if s.opts.Carousel != nil {
		stop := s.opts.Carousel.OnStep(func(n int) {
			select {
			case steps <- n:
			default:
			}
		})
		defer stop()
	}

	send := func(m StreamMessage) bool {
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(m); err != nil {
			s.log.Debug("websocket write failed", "err", err)
			return false
		}
		return true
	}
	statsMsg := func() StreamMessage {
		r := statsResponse(s.driver.Stats().Snapshot())
		return StreamMessage{Type: "stats", Stats: &r}
	}

	s.log.Debug("websocket client connected", "remote", c.Request.RemoteAddr)
	if !send(statsMsg()) {
		return
	}
	tick := time.NewTicker(s.opts.StreamInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			s.log.Debug("websocket client disconnected", "remote", c.Request.RemoteAddr)
			return
		case <-tick.C:
			if !send(statsMsg()) {
				return
			}
		case n := <-steps:
			if !send(StreamMessage{Type: "carousel", Step: n}) {
				return
			}
		}
	}
}
