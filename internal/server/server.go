// Package server is the chat-widget presentation adapter: a JSON session API
// plus a static widget page, both over the same turn controller the terminal
// front ends use.
package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alkime/author/internal/config"
	"github.com/alkime/author/internal/draft"
	"github.com/alkime/author/internal/session"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

// Server represents the HTTP server.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	router   *gin.Engine
	store    *sessionStore
	creator  session.Creator
	editor   session.Editor
	markdown goldmark.Markdown
}

// New creates a new Server instance. The creator and editor are shared by
// all sessions; both are stateless request wrappers.
func New(cfg *config.Config, logger *slog.Logger, creator session.Creator, editor session.Editor) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		store:    newSessionStore(),
		creator:  creator,
		editor:   editor,
		markdown: goldmark.New(),
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the gin engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server.
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)

	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Serve the chat widget page and its assets
	s.router.Use(static.Serve("/", static.LocalFile(s.config.WebDir, true)))

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.POST("/sessions/:id/idea", s.handleIdea)
		api.POST("/sessions/:id/action", s.handleAction)
		api.GET("/sessions/:id/preview", s.handlePreview)
	}
}

// turnResponse is the JSON shape of one controller turn.
type turnResponse struct {
	ID          string `json:"id"`
	Phase       string `json:"phase"`
	Content     string `json:"content"`
	Suggestions string `json:"suggestions"`
	Rewritten   string `json:"rewritten"`
	Iteration   int    `json:"iteration"`
	Done        bool   `json:"done"`
	Note        string `json:"note,omitempty"`
	Diff        string `json:"diff,omitempty"`
	SavedPath   string `json:"saved_path,omitempty"`
}

func newTurnResponse(id string, turn session.Turn) turnResponse {
	return turnResponse{
		ID:          id,
		Phase:       string(turn.Phase),
		Content:     turn.State.Content,
		Suggestions: turn.State.Suggestions,
		Rewritten:   turn.State.Rewritten,
		Iteration:   turn.State.Iteration,
		Done:        turn.State.Done,
		Note:        turn.Note,
		Diff:        turn.Diff,
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "author",
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	cs := s.store.create(session.New(s.creator, s.editor))
	s.logger.Info("Session created", "session", cs.id)

	c.JSON(http.StatusCreated, gin.H{
		"id":    cs.id,
		"phase": string(session.PhaseAwaitingIdea),
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	cs, err := s.store.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	}

	cs.mu.Lock()
	state := cs.ctrl.State()
	phase := cs.ctrl.Phase()
	cs.mu.Unlock()

	c.JSON(http.StatusOK, turnResponse{
		ID:          cs.id,
		Phase:       string(phase),
		Content:     state.Content,
		Suggestions: state.Suggestions,
		Rewritten:   state.Rewritten,
		Iteration:   state.Iteration,
		Done:        state.Done,
	})
}

type ideaRequest struct {
	Idea string `json:"idea"`
}

func (s *Server) handleIdea(c *gin.Context) {
	cs, err := s.store.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	}

	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	cs.mu.Lock()
	turn := cs.ctrl.Submit(c.Request.Context(), session.Input{Text: strings.TrimSpace(req.Idea)})
	cs.mu.Unlock()

	// An empty idea or a failed first generation ends the session here;
	// retire it so the store does not accumulate dead entries.
	if turn.Phase == session.PhaseDone {
		s.store.remove(cs.id)
		s.logger.Info("Session ended at idea", "session", cs.id, "note", turn.Note)
	}

	c.JSON(http.StatusOK, newTurnResponse(cs.id, turn))
}

type actionRequest struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

func (s *Server) handleAction(c *gin.Context) {
	cs, err := s.store.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	cs.mu.Lock()
	turn := cs.ctrl.Submit(c.Request.Context(), session.Input{
		Action: session.Action(req.Action),
		Text:   req.Text,
	})
	cs.mu.Unlock()

	resp := newTurnResponse(cs.id, turn)

	// Finishing saves the draft and retires the session; an empty draft
	// skips the save entirely.
	if turn.Phase == session.PhaseDone {
		if content := strings.TrimSpace(turn.State.Content); content != "" {
			path, err := draft.SaveMarkdown(s.config.OutputDir, "", content)
			if err != nil {
				s.logger.Error("Failed to save draft", "session", cs.id, "error", err)
				resp.Note = "Failed to save: " + err.Error()
			} else {
				resp.SavedPath = path
			}
		}

		s.store.remove(cs.id)
		s.logger.Info("Session finished", "session", cs.id, "iterations", turn.State.Iteration)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePreview(c *gin.Context) {
	cs, err := s.store.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	}

	cs.mu.Lock()
	content := cs.ctrl.State().Content
	cs.mu.Unlock()

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
