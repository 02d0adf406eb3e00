package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
)

type mockPlantRepo struct {
	plants    []model.Plant
	comments  []model.Comment
	createErr error
	lastQuery string
	nextID    int64
}

func (m *mockPlantRepo) List(_ context.Context, search string) ([]model.Plant, error) {
	m.lastQuery = search
	return m.plants, nil
}

func (m *mockPlantRepo) Create(_ context.Context, plant *model.Plant) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	plant.ID = m.nextID
	plant.CreatedAt = time.Now()
	m.plants = append(m.plants, *plant)
	return nil
}

func (m *mockPlantRepo) ListComments(_ context.Context, plantID int64) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range m.comments {
		if c.PlantaID == plantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockPlantRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	m.nextID++
	comment.ID = m.nextID
	comment.CreatedAt = time.Now()
	m.comments = append(m.comments, *comment)
	return nil
}

func newTestPlantService() (*PlantService, *mockPlantRepo) {
	repo := &mockPlantRepo{}
	return NewPlantService(repo, testLogger()), repo
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func i64(v int64) *int64     { return &v }

func TestCreatePlant_RequiresAName(t *testing.T) {
	svc, _ := newTestPlantService()

	tests := []struct {
		name  string
		input CreatePlantInput
	}{
		{"both names absent", CreatePlantInput{Latitude: f64(-8.05), Longitude: f64(-34.9)}},
		{"both names blank", CreatePlantInput{
			NomeCientifico: str("  "),
			NomePopular:    str(""),
			Latitude:       f64(-8.05),
			Longitude:      f64(-34.9),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestCreatePlant_OneNameSuffices(t *testing.T) {
	svc, _ := newTestPlantService()

	plant, err := svc.Create(context.Background(), CreatePlantInput{
		NomePopular: str("Ipê-amarelo"),
		Latitude:    f64(-8.05),
		Longitude:   f64(-34.9),
	})
	require.NoError(t, err)
	assert.NotZero(t, plant.ID)
	assert.Nil(t, plant.NomeCientifico)
}

func TestCreatePlant_RequiresBothCoordinates(t *testing.T) {
	svc, _ := newTestPlantService()

	_, err := svc.Create(context.Background(), CreatePlantInput{
		NomePopular: str("Ipê"),
		Longitude:   f64(-34.9),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Create(context.Background(), CreatePlantInput{
		NomePopular: str("Ipê"),
		Latitude:    f64(-8.05),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreatePlant_ParsesPlantingDate(t *testing.T) {
	svc, _ := newTestPlantService()

	plant, err := svc.Create(context.Background(), CreatePlantInput{
		NomePopular: str("Ipê"),
		Latitude:    f64(-8.05),
		Longitude:   f64(-34.9),
		DataPlantio: str("2024-03-15"),
	})
	require.NoError(t, err)
	require.NotNil(t, plant.DataPlantio)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *plant.DataPlantio)

	_, err = svc.Create(context.Background(), CreatePlantInput{
		NomePopular: str("Ipê"),
		Latitude:    f64(-8.05),
		Longitude:   f64(-34.9),
		DataPlantio: str("15/03/2024"),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreatePlant_StoreErrorPassesThrough(t *testing.T) {
	svc, repo := newTestPlantService()
	repo.createErr = apperror.Store(assert.AnError)

	_, err := svc.Create(context.Background(), CreatePlantInput{
		NomePopular: str("Ipê"),
		Latitude:    f64(-8.05),
		Longitude:   f64(-34.9),
	})
	assert.ErrorIs(t, err, apperror.ErrStore)
}

func TestListPlants_TrimsSearch(t *testing.T) {
	svc, repo := newTestPlantService()

	_, err := svc.List(context.Background(), "  ipê  ")
	require.NoError(t, err)
	assert.Equal(t, "ipê", repo.lastQuery)
}

func TestCreateComment_Validation(t *testing.T) {
	svc, _ := newTestPlantService()

	_, err := svc.CreateComment(context.Background(), 1, nil, "bonita árvore")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.CreateComment(context.Background(), 1, i64(7), "   ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateComment_TrimsText(t *testing.T) {
	svc, repo := newTestPlantService()

	comment, err := svc.CreateComment(context.Background(), 1, i64(7), "  bonita árvore  ")
	require.NoError(t, err)
	assert.Equal(t, "bonita árvore", comment.Texto)
	assert.Len(t, repo.comments, 1)
}
