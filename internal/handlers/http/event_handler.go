package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/pkg/tracing"
	"huddle/pkg/validation"

	apperrors "huddle/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler serves event creation, mutation, listing and visit crediting.
type EventHandler struct {
	events   ports.EventService
	sessions ports.SessionService
	logger   *zap.SugaredLogger
}

func NewEventHandler(events ports.EventService, sessions ports.SessionService, logger *zap.SugaredLogger) *EventHandler {
	return &EventHandler{
		events:   events,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *EventHandler) SetupRoutes(router *gin.Engine) {
	router.POST("/createEvent", h.Create)
	router.POST("/updateEvent", h.Update)
	router.POST("/deleteEvent", h.Delete)
	router.POST("/joinEvent", h.Join)
	router.GET("/events", h.ListHosted)
	router.GET("/invitedEvents", h.ListInvited)
	router.GET("/event", h.GetEvent)
}

// epochMillis accepts both JSON numbers and numeric strings; legacy clients
// send timestamps either way.
type epochMillis int64

func (m *epochMillis) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	*m = epochMillis(v)
	return nil
}

// eventPayload carries the mutable event fields. Pointers distinguish
// "absent" from zero values so updates only touch what the client sent.
type eventPayload struct {
	Title     *string      `json:"title"`
	Members   *[]string    `json:"members"`
	StartDate *epochMillis `json:"startDate"`
	EndDate   *epochMillis `json:"endDate"`
}

func (p *eventPayload) memberIDs() *[]domain.UserID {
	if p.Members == nil {
		return nil
	}
	ids := make([]domain.UserID, 0, len(*p.Members))
	for _, m := range *p.Members {
		ids = append(ids, domain.UserID(m))
	}
	return &ids
}

func (h *EventHandler) Create(c *gin.Context) {
	var req struct {
		Email string       `json:"email"`
		Event eventPayload `json:"event"`
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

	if req.Event.Title == nil {
		c.Error(apperrors.NewInvalidInputError("title is required"))
		return
	}
	if err := validation.ValidateEventTitle(*req.Event.Title); err != nil {
		c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}
	if req.Event.StartDate == nil || req.Event.EndDate == nil {
		c.Error(apperrors.NewInvalidInputError("startDate and endDate are required"))
		return
	}

	var members []domain.UserID
	if ids := req.Event.memberIDs(); ids != nil {
		members = *ids
	}

	event, err := h.events.Create(
		c.Request.Context(),
		user.ID,
		*req.Event.Title,
		members,
		int64(*req.Event.StartDate),
		int64(*req.Event.EndDate),
	)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	h.logger.Infow("event created", "event_id", event.ID, "host_id", user.ID)
	tracing.AddSpanAttributes(c.Request.Context(), tracing.EventIDKey.String(string(event.ID)))
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req struct {
		Email    string       `json:"email"`
		EventUID string       `json:"eventUid"`
		Event    eventPayload `json:"event"`
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

	if req.EventUID == "" {
		c.Error(apperrors.NewInvalidInputError("eventUid is required"))
		return
	}
	if req.Event.Title != nil {
		if err := validation.ValidateEventTitle(*req.Event.Title); err != nil {
			c.Error(apperrors.NewInvalidInputError(err.Error()))
			return
		}
	}

	patch := domain.EventPatch{
		Title:   req.Event.Title,
		Members: req.Event.memberIDs(),
	}
	if req.Event.StartDate != nil {
		start := int64(*req.Event.StartDate)
		patch.StartTime = &start
	}
	if req.Event.EndDate != nil {
		end := int64(*req.Event.EndDate)
		patch.EndTime = &end
	}

	event, err := h.events.Update(c.Request.Context(), user.ID, domain.EventID(req.EventUID), patch)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		EventUID string `json:"eventUid"`
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

	if req.EventUID == "" {
		c.Error(apperrors.NewInvalidInputError("eventUid is required"))
		return
	}

	if err := h.events.Delete(c.Request.Context(), user.ID, domain.EventID(req.EventUID)); err != nil {
		c.Error(legacyError(err))
		return
	}

	h.logger.Infow("event deleted", "event_id", req.EventUID, "host_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "eventDeleted"})
}

// Join credits a visit through a "<userUid>:<eventUid>" key, typically
// scanned at the venue. The key's user component must be the caller.
func (h *EventHandler) Join(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Key   string `json:"key"`
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

	if err := validation.ValidateJoinKey(req.Key); err != nil {
		c.Error(legacyError(domain.ErrInvalidJoinKey))
		return
	}

	event, err := h.events.RecordVisit(c.Request.Context(), user.ID, req.Key)
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	h.logger.Infow("event visit recorded", "event_id", event.ID, "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "eventVisited"})
}

func (h *EventHandler) ListHosted(c *gin.Context) {
	h.list(c, c.Query("hostId"), h.events.ListByHost)
}

func (h *EventHandler) ListInvited(c *gin.Context) {
	h.list(c, c.Query("id"), h.events.ListByMember)
}

func (h *EventHandler) list(c *gin.Context, id string, fn func(ctx context.Context, userID domain.UserID, activeOnly bool) ([]*domain.Event, error)) {
	if id == "" {
		c.Error(apperrors.NewInvalidInputError("user id is required"))
		return
	}
	activeOnly := strings.EqualFold(c.Query("active"), "true")

	found, err := fn(c.Request.Context(), domain.UserID(id), activeOnly)
	if err != nil {
		c.Error(userNotFound(err))
		return
	}
	if found == nil {
		found = []*domain.Event{}
	}

	c.JSON(http.StatusOK, gin.H{"events": found})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Query("event")
	if id == "" {
		c.Error(apperrors.NewInvalidInputError("event id is required"))
		return
	}

	event, err := h.events.GetByID(c.Request.Context(), domain.EventID(id))
	if err != nil {
		c.Error(legacyError(err))
		return
	}

	c.JSON(http.StatusOK, event)
}
