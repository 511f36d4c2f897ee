package cache

import (
	"encoding/json"
	"strings"
)

// detailOp is the reserved operation segment for single-record keys. List
// invalidation relies on it to leave detail entries untouched.
const detailOp = "details"

// ListKey builds a deterministic key for a list/query read:
// <entity>:<op>:<canonical-json-params>. Params are serialized with
// encoding/json, which sorts map keys, so two logically identical parameter
// maps always produce the same key.
func ListKey(entity, op string, params map[string]string) string {
	raw, _ := json.Marshal(params)
	return entity + ":" + op + ":" + string(raw)
}

// DetailKey builds the key for a single-record read: <entity>:details:<id>.
func DetailKey(entity, id string) string {
	return entity + ":" + detailOp + ":" + id
}

// entityPrefix is the scan prefix covering every key produced under entity.
func entityPrefix(entity string) string {
	return entity + ":"
}

// detailPrefix is the scan prefix covering only detail keys of entity.
func detailPrefix(entity string) string {
	return entity + ":" + detailOp + ":"
}

// isDetailKey reports whether key is a detail entry of entity.
func isDetailKey(entity, key string) bool {
	return strings.HasPrefix(key, detailPrefix(entity))
}
