package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/service"
)

// PlantHandler serves plant listing/registration and the per-plant comment
// thread.
type PlantHandler struct {
	plants *service.PlantService
	logger *slog.Logger
}

func NewPlantHandler(plants *service.PlantService, logger *slog.Logger) *PlantHandler {
	return &PlantHandler{plants: plants, logger: logger}
}

// HandleList lists plants, optionally filtered by ?search.
//
// GET /api/plantas → 200 [plant...]
func (h *PlantHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	plants, err := h.plants.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plants)
}

type createPlantRequest struct {
	NomeCientifico *string  `json:"nome_cientifico"`
	NomePopular    *string  `json:"nome_popular"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Detalhes       *string  `json:"detalhes"`
	DataPlantio    *string  `json:"data_plantio"`
	Fonte          *string  `json:"fonte"`
	UsuarioID      *int64   `json:"usuario_id"`
}

type createPlantResponse struct {
	Success bool         `json:"success"`
	Plant   *model.Plant `json:"plant"`
	Message string       `json:"message"`
}

// HandleCreate registers a plant.
//
// POST /api/plants → 201 {success, plant, message}
func (h *PlantHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	plant, err := h.plants.Create(r.Context(), service.CreatePlantInput{
		NomeCientifico: req.NomeCientifico,
		NomePopular:    req.NomePopular,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Detalhes:       req.Detalhes,
		DataPlantio:    req.DataPlantio,
		Fonte:          req.Fonte,
		UsuarioID:      req.UsuarioID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPlantResponse{
		Success: true,
		Plant:   plant,
		Message: "plant registered",
	})
}

// HandleListComments lists a plant's comments, newest first.
//
// GET /api/plants/{plantId}/comments → 200 [comment...]
func (h *PlantHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	plantID, err := pathID(r, "plantId")
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.plants.ListComments(r.Context(), plantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	UserID *int64 `json:"userId"`
	Text   string `json:"text"`
}

// HandleCreateComment adds a comment to a plant's thread.
//
// POST /api/plants/{plantId}/comments → 201 comment
func (h *PlantHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	plantID, err := pathID(r, "plantId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	comment, err := h.plants.CreateComment(r.Context(), plantID, req.UserID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// pathID parses a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, name+" must be a numeric id")
	}
	return id, nil
}
