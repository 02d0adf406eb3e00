package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
)

type membership struct {
	roomID int64
	userID int64
}

type mockForumRepo struct {
	rooms     []model.Room
	messages  []model.Message
	members   map[membership]bool
	addCalls  int
	lastLimit int
	nextID    int64
}

func newMockForumRepo() *mockForumRepo {
	return &mockForumRepo{members: make(map[membership]bool)}
}

func (m *mockForumRepo) ListRooms(_ context.Context) ([]model.Room, error) {
	return m.rooms, nil
}

func (m *mockForumRepo) CreateRoom(_ context.Context, room *model.Room) error {
	m.nextID++
	room.ID = m.nextID
	room.CreatedAt = time.Now()
	m.rooms = append(m.rooms, *room)
	m.members[membership{room.ID, room.CreatorID}] = true
	return nil
}

// ListMessages mimics the store: newest first, capped at limit.
func (m *mockForumRepo) ListMessages(_ context.Context, roomID int64, limit int) ([]model.Message, error) {
	m.lastLimit = limit
	var out []model.Message
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if m.messages[i].RoomID == roomID {
			out = append(out, m.messages[i])
		}
	}
	return out, nil
}

func (m *mockForumRepo) CreateMessage(_ context.Context, message *model.Message) error {
	m.nextID++
	message.ID = m.nextID
	message.CreatedAt = time.Now()
	m.messages = append(m.messages, *message)
	return nil
}

func (m *mockForumRepo) IsMember(_ context.Context, roomID, userID int64) (bool, error) {
	return m.members[membership{roomID, userID}], nil
}

func (m *mockForumRepo) AddMember(_ context.Context, roomID, userID int64) error {
	m.addCalls++
	m.members[membership{roomID, userID}] = true
	return nil
}

func newTestForumService() (*ForumService, *mockForumRepo) {
	repo := newMockForumRepo()
	return NewForumService(repo, testLogger()), repo
}

func TestCreateRoom_Validation(t *testing.T) {
	svc, _ := newTestForumService()

	_, err := svc.CreateRoom(context.Background(), "  ", nil, i64(1))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.CreateRoom(context.Background(), "Praça do Derby", nil, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateRoom_CreatorBecomesMember(t *testing.T) {
	svc, repo := newTestForumService()

	room, err := svc.CreateRoom(context.Background(), "Praça do Derby", str("arborização"), i64(3))
	require.NoError(t, err)

	member, err := repo.IsMember(context.Background(), room.ID, 3)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestSendMessage_RequiresMembership(t *testing.T) {
	svc, repo := newTestForumService()
	room, err := svc.CreateRoom(context.Background(), "Praça do Derby", nil, i64(3))
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), room.ID, i64(9), "olá")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, repo.messages, "a rejected message must not be stored")

	msg, err := svc.SendMessage(context.Background(), room.ID, i64(3), "olá")
	require.NoError(t, err)
	assert.Equal(t, int64(3), msg.SenderID)
}

func TestSendMessage_Validation(t *testing.T) {
	svc, _ := newTestForumService()

	_, err := svc.SendMessage(context.Background(), 1, nil, "olá")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.SendMessage(context.Background(), 1, i64(3), "   ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestJoinRoom_IsIdempotent(t *testing.T) {
	svc, repo := newTestForumService()
	room, err := svc.CreateRoom(context.Background(), "Praça do Derby", nil, i64(3))
	require.NoError(t, err)

	already, err := svc.JoinRoom(context.Background(), room.ID, i64(9))
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, 1, repo.addCalls)

	already, err = svc.JoinRoom(context.Background(), room.ID, i64(9))
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, 1, repo.addCalls, "joining again must not write another row")
}

func TestMessages_ChronologicalOrderAndLimit(t *testing.T) {
	svc, repo := newTestForumService()
	room, err := svc.CreateRoom(context.Background(), "Praça do Derby", nil, i64(3))
	require.NoError(t, err)

	for _, text := range []string{"primeira", "segunda", "terceira", "quarta", "quinta"} {
		_, err := svc.SendMessage(context.Background(), room.ID, i64(3), text)
		require.NoError(t, err)
	}

	t.Run("default limit", func(t *testing.T) {
		messages, err := svc.Messages(context.Background(), room.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultMessageLimit, repo.lastLimit)
		require.Len(t, messages, 5)
		assert.Equal(t, "primeira", messages[0].Content)
		assert.Equal(t, "quinta", messages[4].Content)
	})

	t.Run("limit keeps the most recent", func(t *testing.T) {
		messages, err := svc.Messages(context.Background(), room.ID, 2)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "quarta", messages[0].Content)
		assert.Equal(t, "quinta", messages[1].Content)
	})
}
