package model

// SpeciesRecord is one row of the species search union. It is not a stored
// entity: rows come from two heterogeneous tables, tagged by Tipo
// ("arvore_tombada" or "censo"). Columns absent from a source table are NULL
// in that branch — tombadas rows never carry altura/dap, censo rows never
// carry familia.
type SpeciesRecord struct {
	ID             int64    `json:"id"`
	NomePopular    *string  `json:"nome_popular"`
	NomeCientifico *string  `json:"nome_cientifico"`
	Familia        *string  `json:"familia"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	RPA            *int     `json:"rpa"`
	Altura         *float64 `json:"altura"`
	Dap            *float64 `json:"dap"`
	Tipo           string   `json:"tipo"`
}

// SpeciesFilter holds the optional search parameters. Empty string means the
// condition is not applied.
type SpeciesFilter struct {
	Search  string // substring, case-insensitive, both name columns
	Familia string // exact match, tombadas branch only
	RPA     string // exact match, both branches
}

// SpeciesFilters is the distinct filter values offered to clients.
type SpeciesFilters struct {
	Familias []string `json:"familias"`
	RPAs     []int    `json:"rpas"`
}
