// Package v1 contains the HTTP handlers for the procurement API. Every
// cached read follows the same discipline: build a deterministic key,
// consult the cache facade, fall through to the repository on a miss and
// repopulate. Every write ends with the explicit invalidation fan-out listed
// on the handler; cache failures never change the HTTP outcome.
package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nirmaan-tech/procure-api/internal/store"
)

// Cache entity names. These are the key prefixes invalidation operates on,
// shared by every handler that participates in a fan-out.
const (
	entityVendor    = "vendor"
	entityDMR       = "dmr"
	entityImprest   = "imprest"
	entityOrder     = "order"
	entityGeo       = "geo"
	entityDashboard = "dashboard"
)

// listQuery extracts the shared pagination/filter parameters and returns
// both the repository params and the map used to build the cache key. The
// map only carries parameters that were actually supplied so that "no
// filter" and "empty filter" produce the same key.
func listQuery(c *gin.Context) (store.ListParams, map[string]string) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	p := store.ListParams{
		Page:    page,
		Limit:   limit,
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Project: c.Query("project"),
	}

	keyParams := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
	if p.Search != "" {
		keyParams["search"] = p.Search
	}
	if p.Status != "" {
		keyParams["status"] = p.Status
	}
	if p.Project != "" {
		keyParams["project"] = p.Project
	}
	return p, keyParams
}

func listResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   data,
	})
}
