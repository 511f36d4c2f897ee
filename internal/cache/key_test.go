package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKey_Deterministic(t *testing.T) {
	// logically identical parameter sets must hash to the same key
	// regardless of construction order
	a := map[string]string{"page": "1", "limit": "20", "status": "approved"}
	b := map[string]string{"status": "approved", "limit": "20", "page": "1"}

	assert.Equal(t, ListKey("dmr", "getList", a), ListKey("dmr", "getList", b))
}

func TestListKey_Format(t *testing.T) {
	key := ListKey("vendor", "getList", map[string]string{"page": "1"})
	assert.Equal(t, `vendor:getList:{"page":"1"}`, key)

	assert.Equal(t, "vendor:count:null", ListKey("vendor", "count", nil))
}

func TestListKey_DistinctParamsDistinctKeys(t *testing.T) {
	k1 := ListKey("vendor", "getList", map[string]string{"page": "1"})
	k2 := ListKey("vendor", "getList", map[string]string{"page": "2"})
	assert.NotEqual(t, k1, k2)
}

func TestDetailKey(t *testing.T) {
	assert.Equal(t, "vendor:details:v1", DetailKey("vendor", "v1"))
}

func TestIsDetailKey(t *testing.T) {
	assert.True(t, isDetailKey("vendor", DetailKey("vendor", "v1")))
	assert.False(t, isDetailKey("vendor", ListKey("vendor", "getList", nil)))
	assert.False(t, isDetailKey("vendor", DetailKey("dmr", "d1")))
}
