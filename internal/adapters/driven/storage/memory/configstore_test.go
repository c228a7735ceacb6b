package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("index.backend", "bleve"))
	require.NoError(t, store.Set("index.backend", "elasticsearch"))

	val, ok := store.Get("index.backend")
	assert.True(t, ok)
	assert.Equal(t, "elasticsearch", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", 3))
	require.NoError(t, store.Set("i64", int64(7)))
	require.NoError(t, store.Set("f", 1.5))
	require.NoError(t, store.Set("b", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "text"},
		{"string wrong type", store.GetString("i"), ""},
		{"string missing", store.GetString("missing"), ""},
		{"int", store.GetInt("i"), 3},
		{"int64", store.GetInt("i64"), 7},
		{"int from float is zero", store.GetInt("f"), 0},
		{"float", store.GetFloat("f"), 1.5},
		{"float from int", store.GetFloat("i"), 3.0},
		{"float from int64", store.GetFloat("i64"), 7.0},
		{"float wrong type", store.GetFloat("s"), 0.0},
		{"bool", store.GetBool("b"), true},
		{"bool wrong type", store.GetBool("s"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	assert.Empty(t, store.Keys())

	require.NoError(t, store.Set("library.path", "x"))
	require.NoError(t, store.Set("index.name", "y"))

	assert.Equal(t, []string{"index.name", "library.path"}, store.Keys())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}
