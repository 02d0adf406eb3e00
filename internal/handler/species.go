package handler

import (
	"log/slog"
	"net/http"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/service"
)

// SpeciesHandler serves the species search and its filter values.
type SpeciesHandler struct {
	species *service.SpeciesService
	logger  *slog.Logger
}

func NewSpeciesHandler(species *service.SpeciesService, logger *slog.Logger) *SpeciesHandler {
	return &SpeciesHandler{species: species, logger: logger}
}

// HandleSearch runs the species union over both source tables.
//
// GET /api/especies?search=&familia=&rpa= → 200 [record...]
func (h *SpeciesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.species.Search(r.Context(), model.SpeciesFilter{
		Search:  q.Get("search"),
		Familia: q.Get("familia"),
		RPA:     q.Get("rpa"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleFilters returns the distinct familia and rpa values.
//
// GET /api/filtros → 200 {familias, rpas}
func (h *SpeciesHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.species.Filters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filters)
}
