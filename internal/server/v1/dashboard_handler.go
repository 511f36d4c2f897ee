package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nirmaan-tech/procure-api/internal/api"
	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/store"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

// DashboardHandler serves the landing page counters. Every write handler
// flushes the dashboard entity, so these counts are at most one write
// behind.
type DashboardHandler struct {
	repo  store.Repository
	cache *cache.Facade
}

func NewDashboardHandler(repo store.Repository, c *cache.Facade) *DashboardHandler {
	return &DashboardHandler{repo: repo, cache: c}
}

func (h *DashboardHandler) Counts(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.ListKey(entityDashboard, "counts", nil)

	var counts model.DashboardCounts
	if !h.cache.Get(ctx, key, &counts) {
		var err error
		counts.Vendors, err = h.repo.Vendors().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count vendors", err))
			return
		}
		counts.DMREntries, err = h.repo.DMREntries().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count dmr entries", err))
			return
		}
		counts.ImprestDMRs, err = h.repo.ImprestDMRs().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count imprest receipts", err))
			return
		}
		counts.PurchaseOrders, err = h.repo.Orders().Count(ctx)
		if err != nil {
			c.Error(api.Internal("failed to count purchase orders", err))
			return
		}
		h.cache.Set(ctx, key, counts, cache.Transactional)
	}
	c.JSON(http.StatusOK, counts)
}
