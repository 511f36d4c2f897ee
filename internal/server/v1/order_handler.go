package v1

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nirmaan-tech/procure-api/internal/api"
	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/server/validator"
	"github.com/nirmaan-tech/procure-api/internal/store"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

// OrderHandler serves the purchase order endpoints.
//
// Write fan-out: order detail + order lists + dmr lists + dashboard lists.
// DMR lists are included because receipt views join against order status.
type OrderHandler struct {
	repo  store.Repository
	cache *cache.Facade
}

func NewOrderHandler(repo store.Repository, c *cache.Facade) *OrderHandler {
	return &OrderHandler{repo: repo, cache: c}
}

type createOrderRequest struct {
	ProjectID  string `json:"project_id" binding:"required"`
	VendorID   string `json:"vendor_id" binding:"required"`
	OrderNo    string `json:"order_no" binding:"required"`
	TotalPaise int64  `json:"total_paise" binding:"required,gt=0"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft issued received cancelled"`
}

func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	params, keyParams := listQuery(c)
	key := cache.ListKey(entityOrder, "getList", keyParams)

	var orders []model.PurchaseOrder
	if !h.cache.Get(ctx, key, &orders) {
		var err error
		orders, err = h.repo.Orders().List(ctx, params)
		if err != nil {
			c.Error(api.Internal("failed to list purchase orders", err))
			return
		}
		h.cache.Set(ctx, key, orders, cache.Transactional)
	}
	listResponse(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	key := cache.DetailKey(entityOrder, id)

	var order model.PurchaseOrder
	if !h.cache.Get(ctx, key, &order) {
		o, err := h.repo.Orders().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.Error(api.NotFound("purchase order not found"))
				return
			}
			c.Error(api.Internal("failed to load purchase order", err))
			return
		}
		order = *o
		h.cache.Set(ctx, key, order, cache.Transactional)
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Count(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.ListKey(entityOrder, "count", nil)

	var count int
	if !h.cache.Get(ctx, key, &count) {
		var err error
		count, err = h.repo.Orders().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count purchase orders", err))
			return
		}
		h.cache.Set(ctx, key, count, cache.Transactional)
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	order := &model.PurchaseOrder{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		VendorID:   req.VendorID,
		OrderNo:    req.OrderNo,
		Status:     "draft",
		TotalPaise: req.TotalPaise,
	}

	ctx := c.Request.Context()
	if err := h.repo.Orders().Create(ctx, order); err != nil {
		c.Error(api.Internal("failed to create purchase order", err))
		return
	}

	h.invalidateWrites(c, order.ID)

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.repo.Orders().UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(api.NotFound("purchase order not found"))
			return
		}
		c.Error(api.Internal("failed to update purchase order status", err))
		return
	}

	h.invalidateWrites(c, id)

	order, err := h.repo.Orders().GetByID(ctx, id)
	if err != nil {
		c.Error(api.Internal("failed to load purchase order", err))
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) invalidateWrites(c *gin.Context, id string) {
	ctx := c.Request.Context()
	h.cache.Delete(ctx, cache.DetailKey(entityOrder, id))
	h.cache.InvalidateEntityList(ctx, entityOrder)
	h.cache.InvalidateEntityList(ctx, entityDMR)
	h.cache.InvalidateEntityList(ctx, entityDashboard)
}
