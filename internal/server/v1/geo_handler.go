package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nirmaan-tech/procure-api/internal/api"
	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/store"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

// GeoHandler serves the states and cities reference data. These rows only
// change on deploys, so they cache with the static TTL and have no
// invalidation path.
type GeoHandler struct {
	repo  store.Repository
	cache *cache.Facade
}

func NewGeoHandler(repo store.Repository, c *cache.Facade) *GeoHandler {
	return &GeoHandler{repo: repo, cache: c}
}

func (h *GeoHandler) States(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.ListKey(entityGeo, "states", nil)

	var states []model.State
	if !h.cache.Get(ctx, key, &states) {
		var err error
		states, err = h.repo.Geo().States(ctx)
		if err != nil {
			c.Error(api.Internal("failed to list states", err))
			return
		}
		h.cache.Set(ctx, key, states, cache.Static)
	}
	listResponse(c, states)
}

func (h *GeoHandler) Cities(c *gin.Context) {
	ctx := c.Request.Context()
	stateCode := c.Param("state")
	key := cache.ListKey(entityGeo, "cities", map[string]string{"state": stateCode})

	var cities []model.City
	if !h.cache.Get(ctx, key, &cities) {
		var err error
		cities, err = h.repo.Geo().Cities(ctx, stateCode)
		if err != nil {
			c.Error(api.Internal("failed to list cities", err))
			return
		}
		h.cache.Set(ctx, key, cities, cache.Static)
	}
	if len(cities) == 0 {
		c.JSON(http.StatusOK, gin.H{"object": "list", "data": []model.City{}})
		return
	}
	listResponse(c, cities)
}
