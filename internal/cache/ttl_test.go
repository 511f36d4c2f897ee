package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClass(t *testing.T) {
	for _, name := range []string{"STATIC", "MASTER_DATA", "TRANSACTIONAL"} {
		class, err := ParseClass(name)
		require.NoError(t, err)
		assert.Equal(t, Class(name), class)
	}

	_, err := ParseClass("SESSION")
	assert.Error(t, err, "unknown class names must fail, never default")
}

func TestPolicyFromOverrides(t *testing.T) {
	p, err := PolicyFromOverrides(map[string]time.Duration{
		"TRANSACTIONAL": 5 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, p.TTL(Transactional))
	// untouched classes keep the defaults
	assert.Equal(t, 24*time.Hour, p.TTL(Static))
	assert.Equal(t, 30*time.Minute, p.TTL(MasterData))
}

func TestPolicyFromOverrides_UnknownClass(t *testing.T) {
	_, err := PolicyFromOverrides(map[string]time.Duration{"BOGUS": time.Minute})
	assert.Error(t, err)
}

func TestPolicyFromOverrides_NonPositive(t *testing.T) {
	_, err := PolicyFromOverrides(map[string]time.Duration{"STATIC": 0})
	assert.Error(t, err)
}

func TestPolicy_TTL_UnknownClassPanics(t *testing.T) {
	assert.Panics(t, func() {
		Policy{}.TTL(Static)
	})
}
