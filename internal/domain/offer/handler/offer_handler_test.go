package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laujml/la-cuponera/internal/domain/offer/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOfferService struct {
	mock.Mock
}

func (m *mockOfferService) ListOffers(categoryID, search string, page, limit int) ([]model.Offer, int64, error) {
	args := m.Called(categoryID, search, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Offer), args.Get(1).(int64), args.Error(2)
}

func (m *mockOfferService) GetOffer(id string) (*model.Offer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *mockOfferService) CheckPurchasable(id string) (*model.Snapshot, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Snapshot), args.Error(1)
}

func (m *mockOfferService) ReviewOffer(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

type listEnvelope struct {
	Code int `json:"code"`
	Data struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	} `json:"data"`
}

func listOffersRequest(t *testing.T, svc *mockOfferService, query string) listEnvelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ofertas", NewOfferHandler(svc).ListOffers)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ofertas"+query, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestListOffersEchoesNormalizedPagination(t *testing.T) {
	svc := new(mockOfferService)
	svc.On("ListOffers", "", "", 1, 20).Return([]model.Offer{}, int64(0), nil)

	env := listOffersRequest(t, svc, "?page=0&limit=-5")

	// The echoed page/limit are the ones actually served, not the raw input.
	assert.Equal(t, 1, env.Data.Page)
	assert.Equal(t, 20, env.Data.Limit)
	svc.AssertExpectations(t)
}

func TestListOffersCapsLimit(t *testing.T) {
	svc := new(mockOfferService)
	svc.On("ListOffers", "", "", 2, 20).Return([]model.Offer{}, int64(0), nil)

	env := listOffersRequest(t, svc, "?page=2&limit=5000")

	assert.Equal(t, 2, env.Data.Page)
	assert.Equal(t, 20, env.Data.Limit)
	svc.AssertExpectations(t)
}

func TestListOffersPassesFiltersThrough(t *testing.T) {
	svc := new(mockOfferService)
	svc.On("ListOffers", "rub-1", "pupusas", 1, 20).Return([]model.Offer{}, int64(0), nil)

	listOffersRequest(t, svc, "?rubro_id=rub-1&q=pupusas")

	svc.AssertExpectations(t)
}
