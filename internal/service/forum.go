package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// DefaultMessageLimit caps a message listing when the caller supplies none.
const DefaultMessageLimit = 50

// ForumService handles rooms, memberships and messages.
type ForumService struct {
	forum  repository.ForumRepository
	logger *slog.Logger
}

func NewForumService(forum repository.ForumRepository, logger *slog.Logger) *ForumService {
	return &ForumService{forum: forum, logger: logger}
}

// ListRooms returns all rooms with their message counts, newest first.
func (s *ForumService) ListRooms(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.forum.ListRooms(ctx)
	if err != nil {
		s.logger.Error("failed to list rooms", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom validates the payload and creates the room together with the
// creator's membership (one transaction in the repository).
func (s *ForumService) CreateRoom(ctx context.Context, name string, description *string, creatorID *int64) (*model.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if creatorID == nil {
		return nil, apperror.ValidationFailed("creator_id", "creator_id is required")
	}

	room := &model.Room{
		Name:        name,
		Description: description,
		CreatorID:   *creatorID,
	}
	if err := s.forum.CreateRoom(ctx, room); err != nil {
		s.logger.Error("failed to create room",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("room created",
		slog.Int64("id", room.ID),
		slog.Int64("creator_id", room.CreatorID),
	)
	return room, nil
}

// Messages returns up to limit messages of a room in chronological order.
// The repository fetches newest-first so the limit keeps the most recent
// rows; the slice is then reversed so the response reads oldest-first.
func (s *ForumService) Messages(ctx context.Context, roomID int64, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	messages, err := s.forum.ListMessages(ctx, roomID, limit)
	if err != nil {
		s.logger.Error("failed to list messages",
			slog.Int64("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage inserts a message after verifying the sender's membership.
func (s *ForumService) SendMessage(ctx context.Context, roomID int64, senderID *int64, content string) (*model.Message, error) {
	if senderID == nil {
		return nil, apperror.ValidationFailed("sender_id", "sender_id is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	member, err := s.forum.IsMember(ctx, roomID, *senderID)
	if err != nil {
		s.logger.Error("membership check failed",
			slog.Int64("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if !member {
		return nil, apperror.Forbidden("you must join the room before posting")
	}

	message := &model.Message{
		RoomID:   roomID,
		SenderID: *senderID,
		Content:  content,
	}
	if err := s.forum.CreateMessage(ctx, message); err != nil {
		s.logger.Error("failed to send message",
			slog.Int64("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating message: %w", err)
	}

	s.logger.Info("message sent",
		slog.Int64("id", message.ID),
		slog.Int64("room_id", roomID),
	)
	return message, nil
}

// JoinRoom adds the user to the room. Joining twice is idempotent: when the
// user is already a member, AlreadyMember is true and no row is written.
func (s *ForumService) JoinRoom(ctx context.Context, roomID int64, userID *int64) (alreadyMember bool, err error) {
	if userID == nil {
		return false, apperror.ValidationFailed("user_id", "user_id is required")
	}

	member, err := s.forum.IsMember(ctx, roomID, *userID)
	if err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	if member {
		return true, nil
	}

	if err := s.forum.AddMember(ctx, roomID, *userID); err != nil {
		s.logger.Error("failed to join room",
			slog.Int64("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("joining room: %w", err)
	}

	s.logger.Info("user joined room",
		slog.Int64("room_id", roomID),
		slog.Int64("user_id", *userID),
	)
	return false, nil
}
