package http

import (
	"context"
	"net/http"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/pkg/tracing"
	"huddle/pkg/validation"

	apperrors "huddle/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves account registration, session lifecycle, profile
// updates and user search.
type UserHandler struct {
	users    ports.UserService
	sessions ports.SessionService
	logger   *zap.SugaredLogger
}

func NewUserHandler(users ports.UserService, sessions ports.SessionService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *UserHandler) SetupRoutes(router *gin.Engine) {
	router.POST("/register", h.Register)
	router.POST("/signIn", h.SignIn)
	router.POST("/signOut", h.SignOut)
	router.POST("/update", h.Update)
	router.POST("/user", h.GetUser)
	router.POST("/user/search", h.Search)
	router.POST("/search/name", h.SearchByName)
	router.POST("/search/email", h.SearchByEmail)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	h.logger.Infow("user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, user.Public())
}

// SignIn issues a fresh token when a password is supplied, and doubles as
// a session probe: a request carrying a still-valid token gets the user
// back without spending a bcrypt comparison.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return
	}

	ctx := c.Request.Context()
	tracing.AddSpanAttributes(ctx, tracing.EmailKey.String(req.Email))

	// A presented token is authoritative: it either answers the probe or
	// fails loudly, it never falls back to the password.
	if _, ok := tokenFrom(c); ok {
		user, err := authenticate(c, h.sessions, req.Email)
		if err != nil {
			c.Error(legacyError(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Public()})
		return
	}

	if req.Password == "" {
		c.Error(apperrors.NewInvalidInputError("password is required"))
		return
	}

	token, user, err := h.sessions.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loginToken": token,
		"user":       user.Public(),
	})
}

func (h *UserHandler) SignOut(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return
	}

	token, ok := tokenFrom(c)
	if !ok {
		c.Error(legacyError(domain.ErrInvalidToken))
		return
	}

	if err := h.sessions.SignOut(c.Request.Context(), req.Email, token); err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signedOut"})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		User  struct {
			Name *string `json:"name"`
		} `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return
	}

	user, err := authenticate(c, h.sessions, req.Email)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	if req.User.Name != nil {
		if err := validation.ValidateDisplayName(*req.User.Name); err != nil {
			c.Error(apperrors.NewInvalidInputError(err.Error()))
			return
		}
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, domain.UserPatch{Name: req.User.Name})
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, updated.Public())
}

// GetUser looks up another user by email or id. The caller must be
// authenticated; the target does not.
func (h *UserHandler) GetUser(c *gin.Context) {
	var req struct {
		Email        string `json:"email"`
		TargetEmail  string `json:"targetEmail"`
		TargetUserID string `json:"targetUserId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return
	}

	if _, err := authenticate(c, h.sessions, req.Email); err != nil {
		c.Error(legacyError(err))
		return
	}

	ctx := c.Request.Context()
	var (
		target *domain.User
		err    error
	)
	switch {
	case req.TargetEmail != "":
		target, err = h.users.GetByEmail(ctx, req.TargetEmail)
	case req.TargetUserID != "":
		target, err = h.users.GetByID(ctx, domain.UserID(req.TargetUserID))
	default:
		c.Error(apperrors.NewInvalidInputError("targetEmail or targetUserId is required"))
		return
	}
	if err != nil {
		c.Error(userNotFound(err))
		return
	}

	c.JSON(http.StatusOK, target.Public())
}

func (h *UserHandler) Search(c *gin.Context) {
	h.search(c, h.users.Search)
}

func (h *UserHandler) SearchByName(c *gin.Context) {
	h.search(c, h.users.SearchByName)
}

func (h *UserHandler) SearchByEmail(c *gin.Context) {
	h.search(c, h.users.SearchByEmail)
}

func (h *UserHandler) search(c *gin.Context, fn func(ctx context.Context, query string) ([]*domain.User, error)) {
	var req struct {
		Email string `json:"email"`
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return
	}

	if _, err := authenticate(c, h.sessions, req.Email); err != nil {
		c.Error(legacyError(err))
		return
	}

	if err := validation.ValidateSearchQuery(req.Query); err != nil {
		c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}

	found, err := fn(c.Request.Context(), req.Query)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": publicUsers(found)})
}
