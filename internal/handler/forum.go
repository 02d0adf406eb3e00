package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/service"
)

// ForumHandler serves rooms, memberships and messages.
type ForumHandler struct {
	forum  *service.ForumService
	logger *slog.Logger
}

func NewForumHandler(forum *service.ForumService, logger *slog.Logger) *ForumHandler {
	return &ForumHandler{forum: forum, logger: logger}
}

// HandleListRooms lists all rooms with message counts, newest first.
//
// GET /api/rooms → 200 [room...]
func (h *ForumHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.forum.ListRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

type createRoomRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatorID   *int64  `json:"creator_id"`
}

// HandleCreateRoom creates a room and the creator's membership atomically.
//
// POST /api/rooms → 201 room
func (h *ForumHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	room, err := h.forum.CreateRoom(r.Context(), req.Name, req.Description, req.CreatorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// HandleListMessages returns up to ?limit messages (default 50),
// oldest-first.
//
// GET /api/rooms/{roomId}/messages → 200 [message...]
func (h *ForumHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomId")
	if err != nil {
		writeError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperror.ValidationFailed("limit", "limit must be a number"))
			return
		}
	}

	messages, err := h.forum.Messages(r.Context(), roomID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type sendMessageRequest struct {
	SenderID *int64 `json:"sender_id"`
	Content  string `json:"content"`
}

// HandleSendMessage posts a message; the sender must already be a member.
//
// POST /api/rooms/{roomId}/messages → 201 message, 403 if not a member
func (h *ForumHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	message, err := h.forum.SendMessage(r.Context(), roomID, req.SenderID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

type joinRoomRequest struct {
	UserID *int64 `json:"user_id"`
}

type joinRoomResponse struct {
	Message string `json:"message"`
}

// HandleJoinRoom adds the user to the room; joining twice is idempotent.
//
// POST /api/rooms/{roomId}/join → 200 {message}
func (h *ForumHandler) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	alreadyMember, err := h.forum.JoinRoom(r.Context(), roomID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	msg := "joined room"
	if alreadyMember {
		msg = "already a member"
	}
	writeJSON(w, http.StatusOK, joinRoomResponse{Message: msg})
}
