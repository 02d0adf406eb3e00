package model

import "time"

// Plant is a registered tree. At least one of NomeCientifico/NomePopular is
// required, plus both coordinates; everything else is optional. Column and
// JSON names keep the Portuguese naming of the source dataset.
type Plant struct {
	ID             int64      `json:"id"`
	NomeCientifico *string    `json:"nome_cientifico"`
	NomePopular    *string    `json:"nome_popular"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Detalhes       *string    `json:"detalhes"`
	DataPlantio    *time.Time `json:"data_plantio"`
	Fonte          *string    `json:"fonte"`
	UsuarioID      *int64     `json:"usuario_id"`
	CreatedAt      time.Time  `json:"created_at"`

	// List decoration for caller-side compatibility: a constant record tag
	// and a count column. Only populated by the list query.
	Tipo  string `json:"tipo,omitempty"`
	Count int    `json:"count,omitempty"`
}

// Comment is one entry of a plant's comment thread. Author is the commenting
// user's username, resolved by join (list) or correlated subselect (create).
type Comment struct {
	ID        int64     `json:"id"`
	PlantaID  int64     `json:"planta_id"`
	UsuarioID int64     `json:"usuario_id"`
	Texto     string    `json:"texto"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
