package v1

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/server/middleware"
	"github.com/nirmaan-tech/procure-api/internal/server/validator"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

func newTestRouter(repo *mockRepo) (*gin.Engine, *cache.Facade) {
	gin.SetMode(gin.TestMode)
	validator.Init()

	facade := cache.New(cache.NewMemoryStore(), cache.DefaultPolicy(), zap.NewNop())

	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))

	vendors := NewVendorHandler(repo, facade)
	dmrs := NewDMRHandler(repo, facade)
	imprests := NewImprestHandler(repo, facade)
	orders := NewOrderHandler(repo, facade)
	geo := NewGeoHandler(repo, facade)
	dashboard := NewDashboardHandler(repo, facade)

	api := r.Group("/api/v1")
	api.GET("/vendors", vendors.List)
	api.GET("/vendors/count", vendors.Count)
	api.GET("/vendors/:id", vendors.Get)
	api.POST("/vendors", vendors.Create)
	api.PUT("/vendors/:id", vendors.Update)
	api.DELETE("/vendors/:id", vendors.Delete)
	api.GET("/dmr", dmrs.List)
	api.POST("/dmr", dmrs.Create)
	api.GET("/imprest-dmr", imprests.List)
	api.POST("/imprest-dmr", imprests.Create)
	api.GET("/orders", orders.List)
	api.POST("/orders", orders.Create)
	api.PUT("/orders/:id/status", orders.UpdateStatus)
	api.GET("/geo/states", geo.States)
	api.GET("/geo/states/:state/cities", geo.Cities)
	api.GET("/dashboard/counts", dashboard.Counts)

	return r, facade
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVendorList_ReadThrough(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.vendors.On("List", mock.Anything, mock.Anything).
		Return([]model.Vendor{{ID: "v-1", Name: "Acme Steel"}}, nil).Once()

	first := doJSON(r, http.MethodGet, "/api/v1/vendors", nil)
	require.Equal(t, http.StatusOK, first.Code)

	// served from cache, the single List expectation must not be consumed
	// a second time
	second := doJSON(r, http.MethodGet, "/api/v1/vendors", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	repo.vendors.AssertExpectations(t)
	repo.vendors.AssertNumberOfCalls(t, "List", 1)
}

func TestVendorList_DistinctParamsMissSeparately(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.vendors.On("List", mock.Anything, mock.Anything).
		Return([]model.Vendor{}, nil).Twice()

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors?page=1", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors?page=2", nil).Code)

	repo.vendors.AssertNumberOfCalls(t, "List", 2)
}

func TestVendorCreate_InvalidatesLists(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.vendors.On("List", mock.Anything, mock.Anything).
		Return([]model.Vendor{}, nil).Twice()
	repo.vendors.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors", nil).Code)

	created := doJSON(r, http.MethodPost, "/api/v1/vendors", gin.H{"name": "Acme Steel"})
	require.Equal(t, http.StatusCreated, created.Code)

	// list cache was flushed by the write, so this consults the store again
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors", nil).Code)

	repo.vendors.AssertExpectations(t)
}

func TestVendorUpdate_DropsDetailEntry(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	stale := &model.Vendor{ID: "v-1", Name: "Old Name", Status: "active"}
	repo.vendors.On("GetByID", mock.Anything, "v-1").Return(stale, nil).Twice()
	repo.vendors.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors/v-1", nil).Code)

	updated := doJSON(r, http.MethodPut, "/api/v1/vendors/v-1",
		gin.H{"name": "New Name", "status": "active"})
	require.Equal(t, http.StatusOK, updated.Code)

	// detail entry was deleted, so the next read goes back to the store
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors/v-1", nil).Code)

	repo.vendors.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestVendorGet_NotFound(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.vendors.On("GetByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

	w := doJSON(r, http.MethodGet, "/api/v1/vendors/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "Not Found", problem["title"])
}

func TestVendorCreate_ValidationError(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	w := doJSON(r, http.MethodPost, "/api/v1/vendors", gin.H{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "Validation Error", problem["title"])
	assert.Contains(t, problem["errors"], "name")

	repo.vendors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDMRCreate_FanOutFlushesRelatedLists(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.orders.On("List", mock.Anything, mock.Anything).
		Return([]model.PurchaseOrder{}, nil).Twice()
	repo.imprests.On("List", mock.Anything, mock.Anything).
		Return([]model.ImprestDMR{}, nil).Twice()
	repo.vendors.On("List", mock.Anything, mock.Anything).
		Return([]model.Vendor{}, nil).Once()
	repo.dmrs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	// warm all three list caches
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/orders", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/imprest-dmr", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors", nil).Code)

	created := doJSON(r, http.MethodPost, "/api/v1/dmr", gin.H{
		"project_id":   "p-1",
		"vendor_id":    "v-1",
		"material":     "cement",
		"quantity":     50,
		"unit":         "bag",
		"rate_paise":   41500,
		"receipt_date": "2026-08-20T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	// orders and imprest lists were flushed by the receipt, vendor lists
	// were not
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/orders", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/imprest-dmr", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors", nil).Code)

	repo.orders.AssertNumberOfCalls(t, "List", 2)
	repo.imprests.AssertNumberOfCalls(t, "List", 2)
	repo.vendors.AssertNumberOfCalls(t, "List", 1)
}

func TestOrderStatusUpdate_FlushesDetail(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	order := &model.PurchaseOrder{ID: "o-1", OrderNo: "PO-1", Status: "issued"}
	repo.orders.On("UpdateStatus", mock.Anything, "o-1", "issued").Return(nil).Once()
	repo.orders.On("GetByID", mock.Anything, "o-1").Return(order, nil).Once()

	w := doJSON(r, http.MethodPut, "/api/v1/orders/o-1/status", gin.H{"status": "issued"})
	require.Equal(t, http.StatusOK, w.Code)

	var got model.PurchaseOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "issued", got.Status)

	repo.orders.AssertExpectations(t)
}

func TestOrderStatusUpdate_RejectsUnknownStatus(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	w := doJSON(r, http.MethodPut, "/api/v1/orders/o-1/status", gin.H{"status": "shipped"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	repo.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGeoStates_CachedStatically(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.geo.On("States", mock.Anything).
		Return([]model.State{{Code: "MH", Name: "Maharashtra"}}, nil).Once()

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/geo/states", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/geo/states", nil).Code)

	repo.geo.AssertNumberOfCalls(t, "States", 1)
}

func TestGeoCities_KeyedByState(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.geo.On("Cities", mock.Anything, "MH").
		Return([]model.City{{ID: 1, StateCode: "MH", Name: "Pune"}}, nil).Once()
	repo.geo.On("Cities", mock.Anything, "KA").
		Return([]model.City{{ID: 2, StateCode: "KA", Name: "Bengaluru"}}, nil).Once()

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/geo/states/MH/cities", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/geo/states/KA/cities", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/geo/states/MH/cities", nil).Code)

	repo.geo.AssertExpectations(t)
}

func TestDashboardCounts_FlushedByAnyWrite(t *testing.T) {
	repo := newMockRepo()
	r, _ := newTestRouter(repo)

	repo.vendors.On("Count", mock.Anything).Return(3, nil).Twice()
	repo.dmrs.On("Count", mock.Anything).Return(10, nil).Twice()
	repo.imprests.On("Count", mock.Anything).Return(2, nil).Twice()
	repo.orders.On("Count", mock.Anything).Return(5, nil).Twice()
	repo.vendors.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	first := doJSON(r, http.MethodGet, "/api/v1/dashboard/counts", nil)
	require.Equal(t, http.StatusOK, first.Code)

	// cached
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/dashboard/counts", nil).Code)
	repo.vendors.AssertNumberOfCalls(t, "Count", 1)

	created := doJSON(r, http.MethodPost, "/api/v1/vendors", gin.H{"name": "Acme Steel"})
	require.Equal(t, http.StatusCreated, created.Code)

	// any write flushes the dashboard entity
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/dashboard/counts", nil).Code)
	repo.vendors.AssertNumberOfCalls(t, "Count", 2)
}

func TestVendorList_FailOpenOnRepoCacheMismatch(t *testing.T) {
	repo := newMockRepo()
	r, facade := newTestRouter(repo)

	repo.vendors.On("List", mock.Anything, mock.Anything).
		Return([]model.Vendor{{ID: "v-1", Name: "Acme Steel"}}, nil).Once()

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors", nil).Code)

	// simulate an operator flushing the cache out of band
	facade.InvalidateEntityList(context.Background(), entityVendor)

	repo.vendors.On("List", mock.Anything, mock.Anything).
		Return([]model.Vendor{{ID: "v-1", Name: "Acme Steel"}}, nil).Once()
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/vendors", nil).Code)

	repo.vendors.AssertNumberOfCalls(t, "List", 2)
}
