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

// VendorHandler serves the vendor master data endpoints.
//
// Write fan-out: vendor detail + vendor lists + dashboard lists.
type VendorHandler struct {
	repo  store.Repository
	cache *cache.Facade
}

func NewVendorHandler(repo store.Repository, c *cache.Facade) *VendorHandler {
	return &VendorHandler{repo: repo, cache: c}
}

type createVendorRequest struct {
	Name          string `json:"name" binding:"required,min=2"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	GSTIN         string `json:"gstin"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Status        string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type updateVendorRequest struct {
	Name          string `json:"name" binding:"required,min=2"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	GSTIN         string `json:"gstin"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Status        string `json:"status" binding:"required,oneof=active inactive"`
}

func (h *VendorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	params, keyParams := listQuery(c)
	key := cache.ListKey(entityVendor, "getList", keyParams)

	var vendors []model.Vendor
	if !h.cache.Get(ctx, key, &vendors) {
		var err error
		vendors, err = h.repo.Vendors().List(ctx, params)
		if err != nil {
			c.Error(api.Internal("failed to list vendors", err))
			return
		}
		h.cache.Set(ctx, key, vendors, cache.MasterData)
	}
	listResponse(c, vendors)
}

func (h *VendorHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	key := cache.DetailKey(entityVendor, id)

	var vendor model.Vendor
	if !h.cache.Get(ctx, key, &vendor) {
		v, err := h.repo.Vendors().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.Error(api.NotFound("vendor not found"))
				return
			}
			c.Error(api.Internal("failed to load vendor", err))
			return
		}
		vendor = *v
		h.cache.Set(ctx, key, vendor, cache.MasterData)
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Count(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.ListKey(entityVendor, "count", nil)

	var count int
	if !h.cache.Get(ctx, key, &count) {
		var err error
		count, err = h.repo.Vendors().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count vendors", err))
			return
		}
		h.cache.Set(ctx, key, count, cache.MasterData)
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	status := req.Status
	if status == "" {
		status = "active"
	}
	vendor := &model.Vendor{
		ID:            uuid.NewString(),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		GSTIN:         req.GSTIN,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Status:        status,
	}

	ctx := c.Request.Context()
	if err := h.repo.Vendors().Create(ctx, vendor); err != nil {
		c.Error(api.Internal("failed to create vendor", err))
		return
	}

	h.cache.InvalidateEntityList(ctx, entityVendor)
	h.cache.InvalidateEntityList(ctx, entityDashboard)

	c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(c *gin.Context) {
	var req updateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	vendor := &model.Vendor{
		ID:            id,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		GSTIN:         req.GSTIN,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Status:        req.Status,
	}

	if err := h.repo.Vendors().Update(ctx, vendor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(api.NotFound("vendor not found"))
			return
		}
		c.Error(api.Internal("failed to update vendor", err))
		return
	}

	h.cache.Delete(ctx, cache.DetailKey(entityVendor, id))
	h.cache.InvalidateEntityList(ctx, entityVendor)
	h.cache.InvalidateEntityList(ctx, entityDashboard)

	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.repo.Vendors().Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(api.NotFound("vendor not found"))
			return
		}
		c.Error(api.Internal("failed to delete vendor", err))
		return
	}

	h.cache.Delete(ctx, cache.DetailKey(entityVendor, id))
	h.cache.InvalidateEntityList(ctx, entityVendor)
	h.cache.InvalidateEntityList(ctx, entityDashboard)

	c.Status(http.StatusNoContent)
}
