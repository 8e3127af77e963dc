// ABOUTME: HTTP API for the studio: profiles, generation, playback, and export
// ABOUTME: Built on gin with Prometheus metrics exposed at /metrics
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/studio"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/tts"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/version"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/encode"
)

// Server wraps the HTTP API with its dependencies
type Server struct {
	router *gin.Engine
	studio *studio.Studio
}

// New creates a new HTTP server around a studio instance. The gatherer
// backs the /metrics endpoint; pass the same registry the studio metrics
// were registered on.
func New(st *studio.Studio, gatherer prometheus.Gatherer) *Server {
	s := &Server{studio: st}
	s.setupRoutes(gatherer)
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	router := gin.Default()

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.GET("/profiles", s.handleListProfiles)
		api.POST("/profiles", s.handleCreateProfile)
		api.GET("/profiles/:id", s.handleGetProfile)
		api.PUT("/profiles/:id", s.handleUpdateProfile)
		api.DELETE("/profiles/:id", s.handleDeleteProfile)
		api.POST("/profiles/reorder", s.handleReorderProfiles)
		api.POST("/profiles/:id/activate", s.handleActivateProfile)

		api.POST("/generate", s.handleGenerate)
		api.POST("/playback/play", s.handlePlay)
		api.POST("/playback/stop", s.handleStop)
		api.GET("/export/:format", s.handleExport)
		api.GET("/events", s.handleEvents)
	}

	s.router = router
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"product": version.Product,
		"version": version.Version,
		"time":    time.Now().Unix(),
	})
}

func (s *Server) handleListProfiles(c *gin.Context) {
	var (
		profiles []*profile.Profile
		err      error
	)
	if q := c.Query("q"); q != "" {
		profiles, err = s.studio.Profiles().Search(c.Request.Context(), q)
	} else {
		profiles, err = s.studio.Profiles().List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"total":    len(profiles),
	})
}

func (s *Server) handleCreateProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.studio.Profiles().Create(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleGetProfile(c *gin.Context) {
	p, err := s.studio.Profiles().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = c.Param("id")

	if err := s.studio.Profiles().Update(c.Request.Context(), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeleteProfile(c *gin.Context) {
	if err := s.studio.Profiles().Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

type reorderRequest struct {
	Folder string   `json:"folder"`
	IDs    []string `json:"ids" binding:"required"`
}

func (s *Server) handleReorderProfiles(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.studio.Profiles().Reorder(c.Request.Context(), req.Folder, req.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profiles reordered"})
}

func (s *Server) handleActivateProfile(c *gin.Context) {
	p, err := s.studio.UseProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

type generateRequest struct {
	Script string `json:"script" binding:"required"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buf, err := s.studio.Generate(c.Request.Context(), req.Script)
	if err != nil {
		if errors.Is(err, tts.ErrSafetyBlocked) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"frames":     buf.FrameCount(),
		"sampleRate": buf.SampleRate,
		"channels":   buf.NumChannels(),
		"duration":   buf.Duration().Seconds(),
	})
}

func (s *Server) handlePlay(c *gin.Context) {
	s.studio.Play()
	c.JSON(http.StatusOK, gin.H{"state": s.studio.Controller().State().String()})
}

func (s *Server) handleStop(c *gin.Context) {
	s.studio.Stop()
	c.JSON(http.StatusOK, gin.H{"state": s.studio.Controller().State().String()})
}

func (s *Server) handleExport(c *gin.Context) {
	format, err := encode.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name, data, err := s.studio.Export(format)
	if err != nil {
		if errors.Is(err, encode.ErrUnsupportedFormat) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "audio/wav", data)
}

func (s *Server) handleEvents(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "50"))
	if err != nil || n < 1 {
		n = 50
	}

	c.JSON(http.StatusOK, gin.H{"events": s.studio.Events().Tail(n)})
}
