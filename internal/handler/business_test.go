package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playventures/bizlab/internal/domain"
)

type fakeBusinessSource struct {
	businesses []domain.BusinessSimulation
}

func (f *fakeBusinessSource) List() []domain.BusinessSimulation {
	return f.businesses
}

func (f *fakeBusinessSource) Get(businessID string) (*domain.BusinessSimulation, error) {
	for i := range f.businesses {
		if f.businesses[i].ID == businessID {
			return &f.businesses[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrBusinessNotFound, businessID)
}

func TestHandleListBusinesses(t *testing.T) {
	src := &fakeBusinessSource{businesses: []domain.BusinessSimulation{
		{
			ID: "lemonade_stand", Name: "Lemonade Stand", Category: "food_service",
			GameType:     domain.GameTypeTycoon,
			VisualConfig: domain.VisualConfig{Icon: "🍋"},
		},
		{ID: "pizza_delivery", Name: "Pizza Delivery", Category: "logistics", GameType: domain.GameTypeDriving},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	rec := httptest.NewRecorder()
	HandleListBusinesses(src)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var summaries []BusinessSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "Food Service", summaries[0].Category)
	assert.Equal(t, "🍋", summaries[0].Icon)
	assert.Equal(t, domain.GameTypeDriving, summaries[1].GameType)
}

func TestHandleGetBusiness(t *testing.T) {
	src := &fakeBusinessSource{businesses: []domain.BusinessSimulation{
		{ID: "smoothie_bar", Name: "Smoothie Bar", GameType: domain.GameTypeMatching},
	}}

	router := chi.NewRouter()
	router.Get("/api/v1/businesses/{businessID}", HandleGetBusiness(src))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/smoothie_bar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var biz domain.BusinessSimulation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &biz))
	assert.Equal(t, "smoothie_bar", biz.ID)
	assert.Equal(t, domain.GameTypeMatching, biz.GameType)
}

func TestHandleGetBusiness_NotFound(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/businesses/{businessID}", HandleGetBusiness(&fakeBusinessSource{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/mystery", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgBusinessNotFoundError, resp.Error)
}
