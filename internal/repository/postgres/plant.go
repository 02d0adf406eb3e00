package postgres

import (
	"context"
	"fmt"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// compile-time check that *DB implements repository.PlantRepository
var _ repository.PlantRepository = (*DB)(nil)

const plantColumns = `id, nome_cientifico, nome_popular, latitude, longitude,
		detalhes, data_plantio, fonte, usuario_id, created_at`

// List returns plants ordered by scientific name. An optional search term
// substring-matches either name, case-insensitively. Every row carries the
// constant tipo/count decoration the clients expect.
func (db *DB) List(ctx context.Context, search string) ([]model.Plant, error) {
	query := `SELECT ` + plantColumns + `, 'planta' AS tipo, 1 AS count FROM plantas`
	args := []any{}
	if search != "" {
		query += ` WHERE nome_popular ILIKE $1 OR nome_cientifico ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY nome_cientifico`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing plants: %w", err)
	}
	defer rows.Close()

	plants := []model.Plant{}
	for rows.Next() {
		var p model.Plant
		if err := rows.Scan(
			&p.ID, &p.NomeCientifico, &p.NomePopular, &p.Latitude, &p.Longitude,
			&p.Detalhes, &p.DataPlantio, &p.Fonte, &p.UsuarioID, &p.CreatedAt,
			&p.Tipo, &p.Count,
		); err != nil {
			return nil, fmt.Errorf("postgres: scanning plant row: %w", err)
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating plants: %w", err)
	}
	return plants, nil
}

// Create inserts a plant and fills the struct from the returned row.
// Constraint violations surface as a store error carrying the raw driver
// message; callers expose it verbatim.
func (db *DB) Create(ctx context.Context, plant *model.Plant) error {
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO plantas
			(nome_cientifico, nome_popular, latitude, longitude, detalhes,
			 data_plantio, fonte, usuario_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+plantColumns,
		plant.NomeCientifico, plant.NomePopular, plant.Latitude, plant.Longitude,
		plant.Detalhes, plant.DataPlantio, plant.Fonte, plant.UsuarioID,
	).Scan(
		&plant.ID, &plant.NomeCientifico, &plant.NomePopular,
		&plant.Latitude, &plant.Longitude, &plant.Detalhes,
		&plant.DataPlantio, &plant.Fonte, &plant.UsuarioID, &plant.CreatedAt,
	)
	if err != nil {
		return apperror.Store(err)
	}
	return nil
}

// ListComments returns a plant's comment thread, newest first, with the
// commenting user's username joined in as author.
func (db *DB) ListComments(ctx context.Context, plantID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.planta_id, c.usuario_id, c.texto, u.username AS author, c.created_at
		 FROM comentarios c
		 JOIN users u ON u.id = c.usuario_id
		 WHERE c.planta_id = $1
		 ORDER BY c.created_at DESC`,
		plantID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments for plant %d: %w", plantID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PlantaID, &c.UsuarioID, &c.Texto, &c.Author, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating comments: %w", err)
	}
	return comments, nil
}

// CreateComment inserts a comment and resolves the author name in the same
// statement via a correlated subselect, so no second round trip is needed.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO comentarios (planta_id, usuario_id, texto)
		 VALUES ($1, $2, $3)
		 RETURNING id, planta_id, usuario_id, texto,
			(SELECT username FROM users WHERE id = $2) AS author, created_at`,
		comment.PlantaID, comment.UsuarioID, comment.Texto,
	).Scan(
		&comment.ID, &comment.PlantaID, &comment.UsuarioID,
		&comment.Texto, &comment.Author, &comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: inserting comment on plant %d: %w", comment.PlantaID, err)
	}
	return nil
}
