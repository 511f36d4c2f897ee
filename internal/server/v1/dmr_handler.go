package v1

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nirmaan-tech/procure-api/internal/api"
	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/server/validator"
	"github.com/nirmaan-tech/procure-api/internal/store"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

// DMRHandler serves the daily material receipt endpoints.
//
// DMR writes affect imprest summaries and order fulfilment views, so the
// write fan-out is wider than the entity itself: dmr detail + dmr lists +
// imprest lists + order lists + dashboard lists.
type DMRHandler struct {
	repo  store.Repository
	cache *cache.Facade
}

func NewDMRHandler(repo store.Repository, c *cache.Facade) *DMRHandler {
	return &DMRHandler{repo: repo, cache: c}
}

type createDMRRequest struct {
	ProjectID   string    `json:"project_id" binding:"required"`
	VendorID    string    `json:"vendor_id" binding:"required"`
	OrderID     string    `json:"order_id"`
	Material    string    `json:"material" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	Unit        string    `json:"unit" binding:"required"`
	RatePaise   int64     `json:"rate_paise" binding:"required,gt=0"`
	ChallanNo   string    `json:"challan_no"`
	ReceiptDate time.Time `json:"receipt_date" binding:"required"`
	Remarks     string    `json:"remarks"`
}

type updateDMRRequest struct {
	Material    string    `json:"material" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	Unit        string    `json:"unit" binding:"required"`
	RatePaise   int64     `json:"rate_paise" binding:"required,gt=0"`
	ChallanNo   string    `json:"challan_no"`
	ReceiptDate time.Time `json:"receipt_date" binding:"required"`
	Status      string    `json:"status" binding:"required,oneof=pending approved rejected"`
	Remarks     string    `json:"remarks"`
}

func (h *DMRHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	params, keyParams := listQuery(c)
	key := cache.ListKey(entityDMR, "getList", keyParams)

	var entries []model.DMREntry
	if !h.cache.Get(ctx, key, &entries) {
		var err error
		entries, err = h.repo.DMREntries().List(ctx, params)
		if err != nil {
			c.Error(api.Internal("failed to list dmr entries", err))
			return
		}
		h.cache.Set(ctx, key, entries, cache.Transactional)
	}
	listResponse(c, entries)
}

func (h *DMRHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	key := cache.DetailKey(entityDMR, id)

	var entry model.DMREntry
	if !h.cache.Get(ctx, key, &entry) {
		e, err := h.repo.DMREntries().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.Error(api.NotFound("dmr entry not found"))
				return
			}
			c.Error(api.Internal("failed to load dmr entry", err))
			return
		}
		entry = *e
		h.cache.Set(ctx, key, entry, cache.Transactional)
	}
	c.JSON(http.StatusOK, entry)
}

func (h *DMRHandler) Count(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.ListKey(entityDMR, "count", nil)

	var count int
	if !h.cache.Get(ctx, key, &count) {
		var err error
		count, err = h.repo.DMREntries().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count dmr entries", err))
			return
		}
		h.cache.Set(ctx, key, count, cache.Transactional)
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *DMRHandler) Create(c *gin.Context) {
	var req createDMRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	entry := &model.DMREntry{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		VendorID:    req.VendorID,
		Material:    req.Material,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		RatePaise:   req.RatePaise,
		ChallanNo:   req.ChallanNo,
		ReceiptDate: req.ReceiptDate,
		Status:      "pending",
		Remarks:     req.Remarks,
	}
	if req.OrderID != "" {
		entry.OrderID = sql.NullString{String: req.OrderID, Valid: true}
	}

	ctx := c.Request.Context()
	if err := h.repo.DMREntries().Create(ctx, entry); err != nil {
		c.Error(api.Internal("failed to create dmr entry", err))
		return
	}

	h.invalidateWrites(c, entry.ID)

	c.JSON(http.StatusCreated, entry)
}

func (h *DMRHandler) Update(c *gin.Context) {
	var req updateDMRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.repo.DMREntries().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(api.NotFound("dmr entry not found"))
			return
		}
		c.Error(api.Internal("failed to load dmr entry", err))
		return
	}

	existing.Material = req.Material
	existing.Quantity = req.Quantity
	existing.Unit = req.Unit
	existing.RatePaise = req.RatePaise
	existing.ChallanNo = req.ChallanNo
	existing.ReceiptDate = req.ReceiptDate
	existing.Status = req.Status
	existing.Remarks = req.Remarks

	if err := h.repo.DMREntries().Update(ctx, existing); err != nil {
		c.Error(api.Internal("failed to update dmr entry", err))
		return
	}

	h.invalidateWrites(c, id)

	c.JSON(http.StatusOK, existing)
}

// invalidateWrites is the fan-out applied after any DMR mutation.
func (h *DMRHandler) invalidateWrites(c *gin.Context, id string) {
	ctx := c.Request.Context()
	h.cache.Delete(ctx, cache.DetailKey(entityDMR, id))
	h.cache.InvalidateEntityList(ctx, entityDMR)
	h.cache.InvalidateEntityList(ctx, entityImprest)
	h.cache.InvalidateEntityList(ctx, entityOrder)
	h.cache.InvalidateEntityList(ctx, entityDashboard)
}
