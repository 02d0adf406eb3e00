package postgres

import (
	"context"
	"fmt"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// compile-time check that *DB implements repository.ForumRepository
var _ repository.ForumRepository = (*DB)(nil)

// ListRooms returns all rooms, newest first, each annotated with its message
// count.
func (db *DB) ListRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.name, r.description, r.creator_id, r.created_at,
			COUNT(m.id) AS message_count
		 FROM rooms r
		 LEFT JOIN messages m ON m.room_id = r.id
		 GROUP BY r.id, r.name, r.description, r.creator_id, r.created_at
		 ORDER BY r.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing rooms: %w", err)
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.CreatorID, &r.CreatedAt, &r.MessageCount); err != nil {
			return nil, fmt.Errorf("postgres: scanning room row: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating rooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom inserts the room and the creator's membership in one
// transaction; both rows commit or neither does. Store failures carry the
// raw driver message for the handler to surface.
func (db *DB) CreateRoom(ctx context.Context, room *model.Room) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: beginning room tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO rooms (name, description, creator_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, description, creator_id, created_at`,
		room.Name, room.Description, room.CreatorID,
	).Scan(&room.ID, &room.Name, &room.Description, &room.CreatorID, &room.CreatedAt)
	if err != nil {
		return apperror.Store(err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO room_members (room_id, user_id) VALUES ($1, $2)`,
		room.ID, room.CreatorID,
	); err != nil {
		return apperror.Store(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: committing room creation: %w", err)
	}
	return nil
}

// ListMessages returns up to limit messages of a room, newest first. The
// service reverses the slice so responses read oldest-first.
func (db *DB) ListMessages(ctx context.Context, roomID int64, limit int) ([]model.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, room_id, sender_id, content, created_at
		 FROM messages
		 WHERE room_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		roomID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing messages for room %d: %w", roomID, err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating messages: %w", err)
	}
	return messages, nil
}

// CreateMessage inserts a message and fills the struct from the returned
// row. Membership is checked by the service before this is called.
func (db *DB) CreateMessage(ctx context.Context, message *model.Message) error {
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO messages (room_id, sender_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, room_id, sender_id, content, created_at`,
		message.RoomID, message.SenderID, message.Content,
	).Scan(&message.ID, &message.RoomID, &message.SenderID, &message.Content, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: inserting message in room %d: %w", message.RoomID, err)
	}
	return nil
}

// IsMember reports whether the user currently belongs to the room.
func (db *DB) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	var member bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM room_members WHERE room_id = $1 AND user_id = $2
		 )`,
		roomID, userID,
	).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("postgres: checking membership of user %d in room %d: %w", userID, roomID, err)
	}
	return member, nil
}

// AddMember inserts a membership row.
func (db *DB) AddMember(ctx context.Context, roomID, userID int64) error {
	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO room_members (room_id, user_id) VALUES ($1, $2)`,
		roomID, userID,
	); err != nil {
		return fmt.Errorf("postgres: adding user %d to room %d: %w", userID, roomID, err)
	}
	return nil
}
