package http

import (
	"net/http"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/pkg/tracing"

	apperrors "huddle/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FriendHandler serves the relationship endpoints. All of them operate on
// the unordered pair of the authenticated caller and a target user id.
type FriendHandler struct {
	friends  ports.FriendService
	sessions ports.SessionService
	logger   *zap.SugaredLogger
}

func NewFriendHandler(friends ports.FriendService, sessions ports.SessionService, logger *zap.SugaredLogger) *FriendHandler {
	return &FriendHandler{
		friends:  friends,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *FriendHandler) SetupRoutes(router *gin.Engine) {
	router.POST("/user/friends", h.List)
	router.POST("/user/friends/add", h.Add)
	router.POST("/user/friends/remove", h.Remove)
	router.POST("/user/friends/one", h.GetOne)
}

type friendRequest struct {
	Email        string `json:"email"`
	TargetUserID string `json:"targetUserId"`
}

func (h *FriendHandler) bindTarget(c *gin.Context) (*domain.User, domain.UserID, bool) {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request body"))
		return nil, "", false
	}

	user, err := authenticate(c, h.sessions, req.Email)
	if err != nil {
		c.Error(legacyError(err))
		return nil, "", false
	}

	if req.TargetUserID == "" {
		c.Error(apperrors.NewInvalidInputError("targetUserId is required"))
		return nil, "", false
	}

	tracing.AddSpanAttributes(c.Request.Context(),
		tracing.UserIDKey.String(string(user.ID)),
		tracing.PeerIDKey.String(req.TargetUserID),
	)
	return user, domain.UserID(req.TargetUserID), true
}

// Add drives the whole request/accept transition: the first call from one
// side creates a pending request, a call from the other side accepts it.
func (h *FriendHandler) Add(c *gin.Context) {
	user, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	friendship, err := h.friends.RequestOrAccept(c.Request.Context(), user.ID, targetID)
	if err != nil {
		c.Error(userNotFound(err))
		return
	}

	h.logger.Infow("friendship transition",
		"user_id", user.ID,
		"peer_id", targetID,
		"state", friendship.State,
	)
	c.JSON(http.StatusOK, friendship.EntryFor(user.ID))
}

func (h *FriendHandler) Remove(c *gin.Context) {
	user, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	if err := h.friends.Remove(c.Request.Context(), user.ID, targetID); err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friendRemoved"})
}

func (h *FriendHandler) List(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
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

	entries, err := h.friends.List(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(legacyError(err))
		return
	}
	if entries == nil {
		entries = []domain.RelationshipEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"friends": entries})
}

func (h *FriendHandler) GetOne(c *gin.Context) {
	user, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	entry, err := h.friends.Get(c.Request.Context(), user.ID, targetID)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, entry)
}
