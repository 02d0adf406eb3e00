package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/service"
)

type stubPlantRepo struct {
	plants    []model.Plant
	comments  []model.Comment
	createErr error
	nextID    int64
}

func (s *stubPlantRepo) List(_ context.Context, search string) ([]model.Plant, error) {
	return s.plants, nil
}

func (s *stubPlantRepo) Create(_ context.Context, plant *model.Plant) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	plant.ID = s.nextID
	plant.CreatedAt = time.Now()
	s.plants = append(s.plants, *plant)
	return nil
}

func (s *stubPlantRepo) ListComments(_ context.Context, plantID int64) ([]model.Comment, error) {
	return s.comments, nil
}

func (s *stubPlantRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	s.nextID++
	comment.ID = s.nextID
	comment.Author = "treefan"
	comment.CreatedAt = time.Now()
	s.comments = append(s.comments, *comment)
	return nil
}

func newTestPlantHandler() (*PlantHandler, *stubPlantRepo) {
	repo := &stubPlantRepo{}
	svc := service.NewPlantService(repo, testLogger())
	return NewPlantHandler(svc, testLogger()), repo
}

func TestHandleCreatePlant(t *testing.T) {
	h, _ := newTestPlantHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/plants", strings.NewReader(
		`{"nome_popular":"Ipê-amarelo","latitude":-8.05,"longitude":-34.9,"data_plantio":"2024-03-15"}`))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "plant registered", body["message"])
	plant := body["plant"].(map[string]any)
	assert.Equal(t, "Ipê-amarelo", plant["nome_popular"])
}

func TestHandleCreatePlant_Invalid(t *testing.T) {
	h, _ := newTestPlantHandler()

	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"latitude":-8.05,"longitude":-34.9}`},
		{"no coordinates", `{"nome_popular":"Ipê"}`},
		{"malformed JSON", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/plants", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleCreate(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_error", decodeBody[ErrorResponse](t, rec).Error)
		})
	}
}

func TestHandleCreatePlant_StoreErrorSurfacesDriverMessage(t *testing.T) {
	h, repo := newTestPlantHandler()
	repo.createErr = apperror.Store(assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/api/plants", strings.NewReader(
		`{"nome_popular":"Ipê","latitude":-8.05,"longitude":-34.9}`))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "store_error", body.Error)
	assert.Equal(t, assert.AnError.Error(), body.Message)
}

func TestHandleListPlants(t *testing.T) {
	h, repo := newTestPlantHandler()
	nome := "Ipê-amarelo"
	repo.plants = []model.Plant{{ID: 1, NomePopular: &nome, Latitude: -8.05, Longitude: -34.9}}

	req := httptest.NewRequest(http.MethodGet, "/api/plantas?search=ipê", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	plants := decodeBody[[]model.Plant](t, rec)
	require.Len(t, plants, 1)
	assert.Equal(t, "Ipê-amarelo", *plants[0].NomePopular)
}

func TestHandleCreateComment(t *testing.T) {
	h, _ := newTestPlantHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/plants/1/comments",
		strings.NewReader(`{"userId":7,"text":"bonita árvore"}`))
	req.SetPathValue("plantId", "1")
	rec := httptest.NewRecorder()
	h.HandleCreateComment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	comment := decodeBody[model.Comment](t, rec)
	assert.Equal(t, "bonita árvore", comment.Texto)
	assert.Equal(t, "treefan", comment.Author)
}

func TestHandleCreateComment_BadPlantID(t *testing.T) {
	h, _ := newTestPlantHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/plants/abc/comments",
		strings.NewReader(`{"userId":7,"text":"oi"}`))
	req.SetPathValue("plantId", "abc")
	rec := httptest.NewRecorder()
	h.HandleCreateComment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
