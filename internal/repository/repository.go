// Package repository declares the persistence interfaces consumed by the
// service layer. The postgres subpackage provides the real implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
)

// UserRepository persists accounts. Register runs the check-then-insert
// inside one transaction; the username is expected to be already lowercased
// by the caller.
type UserRepository interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// PlantRepository persists plants and their comment threads.
type PlantRepository interface {
	List(ctx context.Context, search string) ([]model.Plant, error)
	Create(ctx context.Context, plant *model.Plant) error
	ListComments(ctx context.Context, plantID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
}

// SpeciesRepository reads the two species source tables.
type SpeciesRepository interface {
	Search(ctx context.Context, filter model.SpeciesFilter) ([]model.SpeciesRecord, error)
	Filters(ctx context.Context) (*model.SpeciesFilters, error)
}

// ForumRepository persists rooms, memberships and messages. CreateRoom
// inserts the room and the creator's membership in one transaction.
// ListMessages returns up to limit rows, newest first.
type ForumRepository interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	ListMessages(ctx context.Context, roomID int64, limit int) ([]model.Message, error)
	CreateMessage(ctx context.Context, message *model.Message) error
	IsMember(ctx context.Context, roomID, userID int64) (bool, error)
	AddMember(ctx context.Context, roomID, userID int64) error
}
