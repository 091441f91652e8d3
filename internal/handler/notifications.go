package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/logger"
	"github.com/firesafetykz/portal/internal/notification"
)

// CreateNotificationRequest is the body of POST /api/notifications
type CreateNotificationRequest struct {
	UserID  string          `json:"user_id" validate:"required,userid"`
	Kind    string          `json:"kind" validate:"required,notification_kind"`
	Title   string          `json:"title" validate:"required,max=200"`
	Message string          `json:"message" validate:"max=2000"`
	Payload json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

// BroadcastRequest is the body of POST /api/notifications/broadcast
type BroadcastRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// NotificationListResponse wraps a notification listing
type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// UnreadCountResponse carries the unread badge count
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkAllReadResponse reports how many notifications changed
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// NotificationHandler serves the notifications REST API
type NotificationHandler struct {
	svc notification.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// HandleList lists a user's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param user_id query string true "User ID"
// @Param unread query bool false "Only unread"
// @Param limit query int false "Max results (default 50, max 200)"
// @Success 200 {object} NotificationListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/notifications [get]
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, err := getOptionalInt(r, "limit", 0)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}
	unread, err := getOptionalBool(r, "unread")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidUnread)
		return
	}

	list, err := h.svc.List(r.Context(), domain.NotificationFilter{UserID: userID, UnreadOnly: unread, Limit: limit})
	if err != nil {
		respondServiceError(w, r, "List notifications", err)
		return
	}
	if list == nil {
		list = []domain.Notification{}
	}
	respondJSON(w, http.StatusOK, NotificationListResponse{Notifications: list})
}

// HandleUnreadCount returns the unread badge count
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} UnreadCountResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	count, err := h.svc.UnreadCount(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Unread count", err)
		return
	}
	respondJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

// HandleCreate stores a notification and pushes it to the user's open sockets
// @Summary Create notification
// @Description bid_status_changed requires a payload whose prevStatus -> status is an allowed transition
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body CreateNotificationRequest true "Notification"
// @Success 201 {object} domain.Notification
// @Failure 400 {object} ValidationErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/notifications [post]
func (h *NotificationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create notification"); err != nil {
		return
	}

	n, err := h.svc.Create(r.Context(), notification.CreateInput{
		UserID:  req.UserID,
		Kind:    domain.FrameType(req.Kind),
		Title:   req.Title,
		Message: req.Message,
		Payload: req.Payload,
	})
	if err != nil {
		respondServiceError(w, r, "Create notification", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgNotificationAdded, "id", n.ID, "kind", n.Kind)
	respondJSON(w, http.StatusCreated, n)
}

// HandleMarkRead marks one notification as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/notifications/{id}/read [put]
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, "Mark notification read", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationRead})
}

// HandleMarkAllRead marks every notification of a user as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} MarkAllReadResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/notifications/read-all [put]
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	n, err := h.svc.MarkAllRead(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Mark all read", err)
		return
	}
	respondJSON(w, http.StatusOK, MarkAllReadResponse{Updated: n})
}

// HandleDelete removes one notification
// @Summary Delete notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/notifications/{id} [delete]
func (h *NotificationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, "Delete notification", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationDeleted})
}

// HandleBroadcast pushes an announcement to every connected client
// @Summary Broadcast announcement
// @Tags notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body BroadcastRequest true "Announcement"
// @Success 202 {object} domain.BroadcastMessage
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /api/notifications/broadcast [post]
func (h *NotificationHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Broadcast"); err != nil {
		return
	}

	msg, err := h.svc.Broadcast(r.Context(), req.Message)
	if err != nil {
		respondServiceError(w, r, "Broadcast", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgBroadcastRequested, "length", len(msg.Message))
	respondJSON(w, http.StatusAccepted, msg)
}
