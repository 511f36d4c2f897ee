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

// ImprestHandler serves receipts paid from the site imprest. Imprest
// spending shows up in DMR reconciliation views, so writes also flush the
// dmr lists.
//
// Write fan-out: imprest detail + imprest lists + dmr lists + dashboard
// lists.
type ImprestHandler struct {
	repo  store.Repository
	cache *cache.Facade
}

func NewImprestHandler(repo store.Repository, c *cache.Facade) *ImprestHandler {
	return &ImprestHandler{repo: repo, cache: c}
}

type createImprestRequest struct {
	ProjectID   string    `json:"project_id" binding:"required"`
	PaidBy      string    `json:"paid_by" binding:"required"`
	Material    string    `json:"material" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	Unit        string    `json:"unit" binding:"required"`
	AmountPaise int64     `json:"amount_paise" binding:"required,gt=0"`
	ReceiptDate time.Time `json:"receipt_date" binding:"required"`
}

func (h *ImprestHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	params, keyParams := listQuery(c)
	key := cache.ListKey(entityImprest, "getList", keyParams)

	var entries []model.ImprestDMR
	if !h.cache.Get(ctx, key, &entries) {
		var err error
		entries, err = h.repo.ImprestDMRs().List(ctx, params)
		if err != nil {
			c.Error(api.Internal("failed to list imprest receipts", err))
			return
		}
		h.cache.Set(ctx, key, entries, cache.Transactional)
	}
	listResponse(c, entries)
}

func (h *ImprestHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	key := cache.DetailKey(entityImprest, id)

	var entry model.ImprestDMR
	if !h.cache.Get(ctx, key, &entry) {
		e, err := h.repo.ImprestDMRs().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.Error(api.NotFound("imprest receipt not found"))
				return
			}
			c.Error(api.Internal("failed to load imprest receipt", err))
			return
		}
		entry = *e
		h.cache.Set(ctx, key, entry, cache.Transactional)
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ImprestHandler) Count(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.ListKey(entityImprest, "count", nil)

	var count int
	if !h.cache.Get(ctx, key, &count) {
		var err error
		count, err = h.repo.ImprestDMRs().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count imprest receipts", err))
			return
		}
		h.cache.Set(ctx, key, count, cache.Transactional)
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *ImprestHandler) Create(c *gin.Context) {
	var req createImprestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	entry := &model.ImprestDMR{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		PaidBy:      req.PaidBy,
		Material:    req.Material,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		AmountPaise: req.AmountPaise,
		ReceiptDate: req.ReceiptDate,
	}

	ctx := c.Request.Context()
	if err := h.repo.ImprestDMRs().Create(ctx, entry); err != nil {
		c.Error(api.Internal("failed to create imprest receipt", err))
		return
	}

	h.cache.Delete(ctx, cache.DetailKey(entityImprest, entry.ID))
	h.cache.InvalidateEntityList(ctx, entityImprest)
	h.cache.InvalidateEntityList(ctx, entityDMR)
	h.cache.InvalidateEntityList(ctx, entityDashboard)

	c.JSON(http.StatusCreated, entry)
}
