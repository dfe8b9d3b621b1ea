package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenyukang/fiber-world/frame"
	"github.com/chenyukang/fiber-world/stats"
	"github.com/chenyukang/fiber-world/theme"
)

// StatsResponse carries the displayed counters and their text form.
type StatsResponse struct {
	Values stats.Values      `json:"values"`
	Text   map[string]string `json:"text"`
}

func statsResponse(v stats.Values) StatsResponse {
	return StatsResponse{
		Values: v,
		Text: map[string]string{
			"nodes":      stats.Format(v.Nodes),
			"channels":   stats.Format(v.Channels),
			"throughput": stats.Format(v.Throughput),
		},
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) framePNG(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.driver.WritePNG(&buf); err != nil {
		if errors.Is(err, frame.ErrNoFrame) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "no frame rendered yet"})
			return
		}
		s.log.Error("encode frame", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, statsResponse(s.driver.Stats().Snapshot()))
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, s.driver.State())
}

func (s *Server) hubs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hubs": s.driver.HubMarkers()})
}

func (s *Server) click(c *gin.Context) {
	if !s.limiter.Allow() {
		s.observeClick("limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many clicks"})
		return
	}
	s.observeClick("ok")
	c.JSON(http.StatusOK, gin.H{"ok": true, "spawned": s.driver.Click()})
}

func (s *Server) observeClick(outcome string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveClick(outcome)
	}
}

type pointReq struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (s *Server) hover(c *gin.Context) {
	var req pointReq
	if err := c.ShouldBindJSON(&req); err != nil || req.X == nil || req.Y == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "x and y are required"})
		return
	}
	s.driver.Hover(*req.X, *req.Y)
	if s.opts.Carousel != nil {
		s.opts.Carousel.Pause()
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) leave(c *gin.Context) {
	s.driver.Leave()
	if s.opts.Carousel != nil {
		s.opts.Carousel.Resume()
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type sizeReq struct {
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

func (s *Server) resize(c *gin.Context) {
	var req sizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "width and height must be positive"})
		return
	}
	if err := s.driver.Resize(req.Width, req.Height); err != nil {
		if errors.Is(err, frame.ErrCanvasTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.driver.State())
}

func (s *Server) getTheme(c *gin.Context) {
	if s.opts.Theme == nil {
		c.JSON(http.StatusOK, gin.H{"mode": theme.Dark})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": s.opts.Theme.Get()})
}

type themeReq struct {
	Mode string `json:"mode" form:"mode"`
}

// setTheme sets the mode from ?mode= or a JSON body, or toggles when neither is given.
func (s *Server) setTheme(c *gin.Context) {
	if s.opts.Theme == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "theme switching disabled"})
		return
	}
	var req themeReq
	_ = c.ShouldBindQuery(&req)
	if req.Mode == "" && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}
	if req.Mode == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "mode": s.opts.Theme.Toggle()})
		return
	}
	m, err := theme.ParseMode(req.Mode)
	if err == nil {
		err = s.opts.Theme.Set(m)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "mode": m})
}

func (s *Server) getCarousel(c *gin.Context) {
	if s.opts.Carousel == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "carousel disabled"})
		return
	}
	s.carouselJSON(c)
}

type carouselReq struct {
	Step int    `json:"step"`
	Key  string `json:"key"`
}

// moveCarousel selects a step or applies an arrow key.
func (s *Server) moveCarousel(c *gin.Context) {
	car := s.opts.Carousel
	if car == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "carousel disabled"})
		return
	}
	var req carouselReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	switch {
	case req.Key != "":
		if !car.Key(req.Key) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unsupported key"})
			return
		}
	default:
		if err := car.Select(req.Step); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}
	s.carouselJSON(c)
}

func (s *Server) carouselJSON(c *gin.Context) {
	car := s.opts.Carousel
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"step":    car.Current(),
		"steps":   car.Steps(),
		"running": car.Running(),
	})
}
