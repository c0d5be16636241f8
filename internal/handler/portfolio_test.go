package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/ledger"
)

func TestHandleGetPortfolio(t *testing.T) {
	svc := &fakeLedgerService{
		getUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			return &domain.User{
				ID: userID,
				Portfolio: []domain.PortfolioItem{
					{BusinessID: "lemonade_stand", ManagerLevel: 2},
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio?user_id=u-1", nil)
	rec := httptest.NewRecorder()
	HandleGetPortfolio(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []domain.PortfolioItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "lemonade_stand", items[0].BusinessID)
	assert.Equal(t, 2, items[0].ManagerLevel)
}

func TestHandlePendingIncome(t *testing.T) {
	svc := &fakeLedgerService{
		pendingFn: func(_ context.Context, userID string, _ time.Time) ([]ledger.PendingItem, error) {
			return []ledger.PendingItem{
				{BusinessID: "lemonade_stand", ManagerLevel: 1, Pending: 10, Progress: 0.5},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/pending?user_id=u-1", nil)
	rec := httptest.NewRecorder()
	HandlePendingIncome(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []ledger.PendingItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Pending)
	assert.InDelta(t, 0.5, items[0].Progress, 0.001)
}

func TestHandleHireManager(t *testing.T) {
	svc := &fakeLedgerService{
		hireFn: func(_ context.Context, userID, businessID string) (*domain.User, error) {
			return &domain.User{
				ID:       userID,
				BizCoins: 100,
				Portfolio: []domain.PortfolioItem{
					{BusinessID: businessID, ManagerLevel: 1},
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/hire",
		strings.NewReader(`{"user_id":"u-1","business_id":"lemonade_stand"}`))
	rec := httptest.NewRecorder()
	HandleHireManager(svc)(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp HireManagerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgManagerHiredSuccess, resp.Message)
	assert.Equal(t, 100, resp.Balance)
}

func TestHandleHireManager_InsufficientFunds(t *testing.T) {
	svc := &fakeLedgerService{
		hireFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/hire",
		strings.NewReader(`{"user_id":"u-1","business_id":"lemonade_stand"}`))
	rec := httptest.NewRecorder()
	HandleHireManager(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgNotEnoughCoinsError, resp.Error)
}

func TestHandleHireManager_BadBusinessID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/hire",
		strings.NewReader(`{"user_id":"u-1","business_id":"Lemonade Stand!"}`))
	rec := httptest.NewRecorder()
	HandleHireManager(&fakeLedgerService{})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "businessid")
}

func TestHandleCollect(t *testing.T) {
	svc := &fakeLedgerService{
		collectFn: func(_ context.Context, _, businessID string, _ time.Time) (*ledger.CollectResult, error) {
			return &ledger.CollectResult{
				Collected: 25,
				Items:     []ledger.CollectedItem{{BusinessID: businessID, Amount: 25}},
				Balance:   125,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/collect",
		strings.NewReader(`{"user_id":"u-1","business_id":"lemonade_stand"}`))
	rec := httptest.NewRecorder()
	HandleCollect(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ledger.CollectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.Collected)
	assert.Equal(t, 125, resp.Balance)
}

func TestHandleCollect_NotHired(t *testing.T) {
	svc := &fakeLedgerService{
		collectFn: func(context.Context, string, string, time.Time) (*ledger.CollectResult, error) {
			return nil, domain.ErrManagerNotHired
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/collect",
		strings.NewReader(`{"user_id":"u-1","business_id":"pet_salon"}`))
	rec := httptest.NewRecorder()
	HandleCollect(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgNotHiredError, resp.Error)
}

func TestHandleCollectAll(t *testing.T) {
	svc := &fakeLedgerService{
		collectAllFn: func(_ context.Context, userID string, _ time.Time) (*ledger.CollectResult, error) {
			return &ledger.CollectResult{
				Collected: 30,
				Items: []ledger.CollectedItem{
					{BusinessID: "lemonade_stand", Amount: 10},
					{BusinessID: "pet_salon", Amount: 20},
				},
				Balance: 60,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/collect-all",
		strings.NewReader(`{"user_id":"u-1"}`))
	rec := httptest.NewRecorder()
	HandleCollectAll(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ledger.CollectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Collected)
	assert.Len(t, resp.Items, 2)
}
