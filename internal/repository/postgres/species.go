package postgres

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// compile-time check that *DB implements repository.SpeciesRepository
var _ repository.SpeciesRepository = (*DB)(nil)

// Search runs the species union built by buildSpeciesSearch. No matching
// rows yields an empty slice, not an error.
func (db *DB) Search(ctx context.Context, filter model.SpeciesFilter) ([]model.SpeciesRecord, error) {
	query, args, err := buildSpeciesSearch(filter)
	if err != nil {
		return nil, fmt.Errorf("postgres: building species query: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: searching species: %w", err)
	}
	defer rows.Close()

	records := []model.SpeciesRecord{}
	for rows.Next() {
		var r model.SpeciesRecord
		if err := rows.Scan(
			&r.ID, &r.NomePopular, &r.NomeCientifico, &r.Familia,
			&r.Latitude, &r.Longitude, &r.RPA, &r.Altura, &r.Dap, &r.Tipo,
		); err != nil {
			return nil, fmt.Errorf("postgres: scanning species row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating species: %w", err)
	}
	return records, nil
}

// Filters collects the distinct filter values. The two queries are
// independent and run concurrently; either failure fails the call.
func (db *DB) Filters(ctx context.Context) (*model.SpeciesFilters, error) {
	filters := &model.SpeciesFilters{
		Familias: []string{},
		RPAs:     []int{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := db.conn.QueryContext(gctx,
			`SELECT DISTINCT familia FROM arvores_tombadas
			 WHERE familia IS NOT NULL
			 ORDER BY familia`,
		)
		if err != nil {
			return fmt.Errorf("querying familias: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var familia string
			if err := rows.Scan(&familia); err != nil {
				return fmt.Errorf("scanning familia: %w", err)
			}
			filters.Familias = append(filters.Familias, familia)
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := db.conn.QueryContext(gctx,
			`SELECT DISTINCT rpa FROM (
				SELECT rpa FROM arvores_tombadas
				UNION
				SELECT rpa FROM censo_arvores
			 ) AS rpas
			 WHERE rpa IS NOT NULL
			 ORDER BY rpa`,
		)
		if err != nil {
			return fmt.Errorf("querying rpas: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var rpa int
			if err := rows.Scan(&rpa); err != nil {
				return fmt.Errorf("scanning rpa: %w", err)
			}
			filters.RPAs = append(filters.RPAs, rpa)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("postgres: loading species filters: %w", err)
	}
	return filters, nil
}
