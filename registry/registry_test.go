package registry

import (
	"testing"

	"github.com/hupe1980/pcstgo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternFirstSeenOrder(t *testing.T) {
	r := New()

	assert.Equal(t, model.NodeIndex(0), r.Intern(model.StringKey("A")))
	assert.Equal(t, model.NodeIndex(1), r.Intern(model.StringKey("B")))
	assert.Equal(t, model.NodeIndex(2), r.Intern(model.StringKey("C")))
	assert.Equal(t, 3, r.Len())
}

func TestInternIdempotent(t *testing.T) {
	r := New()

	first := r.Intern(model.StringKey("A"))
	r.Intern(model.StringKey("B"))
	second := r.Intern(model.StringKey("A"))

	assert.Equal(t, first, second)
	assert.Equal(t, 2, r.Len())
}

func TestInternDensity(t *testing.T) {
	r := New()

	keys := []model.Key{
		model.StringKey("x"),
		model.Int64Key(10),
		model.StringKey("x"), // duplicate
		model.Uint64Key(11),
		model.BytesKey([]byte("y")),
	}
	seen := make(map[model.NodeIndex]bool)
	for _, k := range keys {
		seen[r.Intern(k)] = true
	}

	// 4 distinct keys -> indices exactly {0,1,2,3}.
	require.Equal(t, 4, r.Len())
	for i := model.NodeIndex(0); i < 4; i++ {
		assert.True(t, seen[i], "missing index %d", i)
	}
}

func TestHeterogeneousKindsShareIndex(t *testing.T) {
	r := New()

	i := r.Intern(model.Int64Key(42))
	j := r.Intern(model.StringKey("42"))

	assert.Equal(t, i, j)
	assert.Equal(t, 1, r.Len())

	// Resolve returns the first-seen key, not the later variant.
	k, ok := r.Resolve(i).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(42), k)
}

func TestLookupDoesNotIntern(t *testing.T) {
	r := New()
	r.Intern(model.StringKey("A"))

	_, ok := r.Lookup(model.StringKey("Z"))
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	i, ok := r.Lookup(model.StringKey("A"))
	assert.True(t, ok)
	assert.Equal(t, model.NodeIndex(0), i)
}

func TestResolveRoundTrip(t *testing.T) {
	r := New()

	keys := []model.Key{
		model.StringKey("alpha"),
		model.Int64Key(-1),
		model.BytesKey([]byte{0x00, 0x01}),
	}
	for _, k := range keys {
		i := r.Intern(k)
		assert.Equal(t, k, r.Resolve(i))
	}
	assert.Len(t, r.Keys(), 3)
}
