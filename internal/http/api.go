package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soccer-coach/internal/auth"
	"soccer-coach/internal/domain"
	"soccer-coach/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	profiles service.ProfileService
	chats    service.ChatService
	coach    service.CoachService
	tokens   *auth.Manager
}

func NewHandler(
	users service.UserService,
	profiles service.ProfileService,
	chats service.ChatService,
	coach service.CoachService,
	tokens *auth.Manager,
) *Handler {
	return &Handler{
		users:    users,
		profiles: profiles,
		chats:    chats,
		coach:    coach,
		tokens:   tokens,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.root)
	router.POST("/register", h.register)
	router.POST("/token", h.login)

	v1 := router.Group("/v1")
	v1.Use(AuthRequired(h.tokens))
	{
		v1.POST("/user/profile", h.upsertProfile)
		v1.GET("/user/profile", h.getProfile)
		v1.POST("/coach", h.askCoach)
		v1.GET("/chat/history", h.getHistory)
		v1.DELETE("/chat/history", h.clearHistory)
		v1.POST("/chat/history/archive", h.archiveHistory)
		v1.GET("/chat/archives", h.listArchives)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Soccer AI API is running"})
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered"})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// ProfileBody carries the eight optional profile fields. Absent fields
// are stored as null; a write replaces all previously stored values.
type ProfileBody struct {
	Name       *string  `json:"name"`
	Age        *int     `json:"age"`
	Weight     *float64 `json:"weight"`
	Height     *float64 `json:"height"`
	Strengths  *string  `json:"strengths"`
	Weaknesses *string  `json:"weaknesses"`
	Expertise  *string  `json:"expertise"`
	Time       *int     `json:"time"`
}

func profileToBody(p *domain.Profile) ProfileBody {
	return ProfileBody{
		Name:       p.Name,
		Age:        p.Age,
		Weight:     p.Weight,
		Height:     p.Height,
		Strengths:  p.Strengths,
		Weaknesses: p.Weaknesses,
		Expertise:  p.Expertise,
		Time:       p.Time,
	}
}

func (h *Handler) upsertProfile(c *gin.Context) {
	var req ProfileBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := domain.Profile{
		Name:       req.Name,
		Age:        req.Age,
		Weight:     req.Weight,
		Height:     req.Height,
		Strengths:  req.Strengths,
		Weaknesses: req.Weaknesses,
		Expertise:  req.Expertise,
		Time:       req.Time,
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), currentUsername(c), fields)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profileToBody(profile),
	})
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), currentUsername(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, profileToBody(profile))
}

type coachRequest struct {
	Query string `json:"query" binding:"required"`
}

func (h *Handler) askCoach(c *gin.Context) {
	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.coach.Ask(c.Request.Context(), currentUsername(c), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrCompletionFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Coach is unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

type messageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (h *Handler) getHistory(c *gin.Context) {
	messages, err := h.chats.History(c.Request.Context(), currentUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]messageResponse, len(messages))
	for i, msg := range messages {
		resp[i] = messageResponse{Role: msg.Role, Content: msg.Content}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) clearHistory(c *gin.Context) {
	if err := h.chats.Clear(c.Request.Context(), currentUsername(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat history cleared."})
}

func (h *Handler) archiveHistory(c *gin.Context) {
	location, err := h.chats.Archive(c.Request.Context(), currentUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Archive storage not configured"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

type archiveResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func (h *Handler) listArchives(c *gin.Context) {
	objects, err := h.chats.ListArchives(c.Request.Context(), currentUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Archive storage not configured"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	resp := make([]archiveResponse, len(objects))
	for i, obj := range objects {
		resp[i] = archiveResponse{Key: obj.Key, Size: obj.Size}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			v := obj.LastModified.Format(time.RFC3339)
			resp[i].LastModified = &v
		}
	}
	c.JSON(http.StatusOK, resp)
}
