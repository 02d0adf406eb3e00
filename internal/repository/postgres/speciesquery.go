package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
)

// buildSpeciesSearch assembles the two-branch species union.
//
// The first branch reads the heritage trees (arvores_tombadas), tagged
// 'arvore_tombada', with altura/dap padded to NULL. The second reads the
// census table, tagged 'censo', aliasing its lat/lng columns to
// latitude/longitude, padding familia to NULL and requiring a non-null
// scientific name. Conditions are appended per branch in the order
// search, familia, rpa — familia applies to the first branch only.
//
// Each branch is built with anonymous placeholders; after concatenating the
// branches the whole statement is renumbered to $N, so the positional
// correspondence between placeholders and the combined argument list holds
// across the union. Caller values never enter the SQL text.
func buildSpeciesSearch(filter model.SpeciesFilter) (string, []any, error) {
	tombadas := sq.Select(
		"id", "nome_popular", "nome_cientifico", "familia",
		"latitude", "longitude", "rpa",
		"NULL AS altura", "NULL AS dap",
		"'arvore_tombada' AS tipo",
	).From("arvores_tombadas")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tombadas = tombadas.Where(sq.Or{
			sq.ILike{"nome_popular": pattern},
			sq.ILike{"nome_cientifico": pattern},
		})
	}
	if filter.Familia != "" {
		tombadas = tombadas.Where(sq.Eq{"familia": filter.Familia})
	}
	if filter.RPA != "" {
		tombadas = tombadas.Where(sq.Eq{"rpa": filter.RPA})
	}

	censo := sq.Select(
		"id", "nome_popular", "nome_cientifico", "NULL AS familia",
		"lat AS latitude", "lng AS longitude", "rpa",
		"altura", "dap",
		"'censo' AS tipo",
	).From("censo_arvores").
		Where("nome_cientifico IS NOT NULL")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		censo = censo.Where(sq.Or{
			sq.ILike{"nome_popular": pattern},
			sq.ILike{"nome_cientifico": pattern},
		})
	}
	if filter.RPA != "" {
		censo = censo.Where(sq.Eq{"rpa": filter.RPA})
	}

	tombadasSQL, tombadasArgs, err := tombadas.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("building tombadas branch: %w", err)
	}
	censoSQL, censoArgs, err := censo.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("building censo branch: %w", err)
	}

	query := tombadasSQL + " UNION ALL " + censoSQL + " ORDER BY nome_popular"
	query, err = sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return "", nil, fmt.Errorf("numbering placeholders: %w", err)
	}

	return query, append(tombadasArgs, censoArgs...), nil
}
