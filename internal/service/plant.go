package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// PlantService handles plant registration, listing and the per-plant comment
// thread.
type PlantService struct {
	plants repository.PlantRepository
	logger *slog.Logger
}

func NewPlantService(plants repository.PlantRepository, logger *slog.Logger) *PlantService {
	return &PlantService{plants: plants, logger: logger}
}

// List returns plants, optionally filtered by a case-insensitive substring
// match on either name.
func (s *PlantService) List(ctx context.Context, search string) ([]model.Plant, error) {
	plants, err := s.plants.List(ctx, strings.TrimSpace(search))
	if err != nil {
		s.logger.Error("failed to list plants", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing plants: %w", err)
	}
	return plants, nil
}

// CreatePlantInput carries the registration payload. Latitude/Longitude are
// pointers so that an absent coordinate is distinguishable from zero.
type CreatePlantInput struct {
	NomeCientifico *string
	NomePopular    *string
	Latitude       *float64
	Longitude      *float64
	Detalhes       *string
	DataPlantio    *string
	Fonte          *string
	UsuarioID      *int64
}

// Create validates the plant invariant (at least one name, both coordinates)
// and inserts the row. Store-level constraint violations propagate with the
// raw driver message attached.
func (s *PlantService) Create(ctx context.Context, in CreatePlantInput) (*model.Plant, error) {
	if emptyName(in.NomeCientifico) && emptyName(in.NomePopular) {
		return nil, apperror.ValidationFailed("nome",
			"at least one of nome_cientifico or nome_popular is required")
	}
	if in.Latitude == nil {
		return nil, apperror.ValidationFailed("latitude", "latitude is required")
	}
	if in.Longitude == nil {
		return nil, apperror.ValidationFailed("longitude", "longitude is required")
	}

	plant := &model.Plant{
		NomeCientifico: in.NomeCientifico,
		NomePopular:    in.NomePopular,
		Latitude:       *in.Latitude,
		Longitude:      *in.Longitude,
		Detalhes:       in.Detalhes,
		Fonte:          in.Fonte,
		UsuarioID:      in.UsuarioID,
	}
	if in.DataPlantio != nil && *in.DataPlantio != "" {
		t, err := parseDate(*in.DataPlantio)
		if err != nil {
			return nil, apperror.ValidationFailed("data_plantio",
				"data_plantio must be a date in YYYY-MM-DD format")
		}
		plant.DataPlantio = &t
	}

	if err := s.plants.Create(ctx, plant); err != nil {
		s.logger.Error("failed to create plant", slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("plant created", slog.Int64("id", plant.ID))
	return plant, nil
}

// ListComments returns a plant's comments, newest first.
func (s *PlantService) ListComments(ctx context.Context, plantID int64) ([]model.Comment, error) {
	comments, err := s.plants.ListComments(ctx, plantID)
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.Int64("planta_id", plantID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// CreateComment validates presence of the commenting user and text, then
// inserts the comment.
func (s *PlantService) CreateComment(ctx context.Context, plantID int64, userID *int64, text string) (*model.Comment, error) {
	if userID == nil {
		return nil, apperror.ValidationFailed("userId", "userId is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}

	comment := &model.Comment{
		PlantaID:  plantID,
		UsuarioID: *userID,
		Texto:     text,
	}
	if err := s.plants.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.Int64("planta_id", plantID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("id", comment.ID),
		slog.Int64("planta_id", plantID),
	)
	return comment, nil
}

func emptyName(name *string) bool {
	return name == nil || strings.TrimSpace(*name) == ""
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
