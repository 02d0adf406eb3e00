package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// SpeciesService serves the species search and its filter values.
type SpeciesService struct {
	species repository.SpeciesRepository
	logger  *slog.Logger
}

func NewSpeciesService(species repository.SpeciesRepository, logger *slog.Logger) *SpeciesService {
	return &SpeciesService{species: species, logger: logger}
}

// Search runs the two-table union. All parameters are optional; an empty
// result set is a valid answer.
func (s *SpeciesService) Search(ctx context.Context, filter model.SpeciesFilter) ([]model.SpeciesRecord, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Familia = strings.TrimSpace(filter.Familia)
	filter.RPA = strings.TrimSpace(filter.RPA)

	records, err := s.species.Search(ctx, filter)
	if err != nil {
		s.logger.Error("species search failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching species: %w", err)
	}
	return records, nil
}

// Filters returns the distinct familia and rpa values.
func (s *SpeciesService) Filters(ctx context.Context) (*model.SpeciesFilters, error) {
	filters, err := s.species.Filters(ctx)
	if err != nil {
		s.logger.Error("loading species filters failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading species filters: %w", err)
	}
	return filters, nil
}
