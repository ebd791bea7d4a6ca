package store_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/store"
	storetest "github.com/rileyhilliard/cfx/internal/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent_AddPrependsAndDedupes(t *testing.T) {
	fs := storetest.NewFakeStore()
	r := store.NewRecent(fs, 5, nil)

	r.Add("a")
	r.Add("b")
	got := r.Add("a")

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, `["a","b"]`, fs.Raw(store.KeyRecent))
	assert.Equal(t, 3, fs.WriteCount(store.KeyRecent), "every mutation is persisted")
}

func TestRecent_Truncates(t *testing.T) {
	r := store.NewRecent(storetest.NewFakeStore(), 5, nil)

	for _, c := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		r.Add(c)
	}

	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, r.Items())
}

func TestRecent_BoundedAndUniqueForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		r := store.NewRecent(storetest.NewFakeStore(), store.DefaultMaxRecent, nil)
		var last string
		for i := 0; i < 40; i++ {
			last = fmt.Sprintf("code%d", rng.Intn(9))
			r.Add(last)

			items := r.Items()
			require.LessOrEqual(t, len(items), store.DefaultMaxRecent)
			require.Equal(t, last, items[0])

			seen := map[string]bool{}
			for _, c := range items {
				require.False(t, seen[c], "duplicate %s in %v", c, items)
				seen[c] = true
			}
		}
	}
}

func TestRecent_LoadsPersisted(t *testing.T) {
	fs := storetest.NewFakeStore()
	fs.Put(store.KeyRecent, `["x","y","x","","z","q","w","v"]`)

	r := store.NewRecent(fs, 5, nil)

	assert.Equal(t, []string{"x", "y", "z", "q", "w"}, r.Items())
}

func TestRecent_CorruptStorageStartsEmpty(t *testing.T) {
	fs := storetest.NewFakeStore()
	fs.Put(store.KeyRecent, `garbage`)

	r := store.NewRecent(fs, 5, nil)
	assert.Empty(t, r.Items())

	r.Add("abc")
	assert.Equal(t, []string{"abc"}, r.Items())
}

func TestRecent_WriteFailureDegrades(t *testing.T) {
	fs := storetest.NewFakeStore()
	fs.FailWrites = true
	log := logger.NewBufferLogger()

	r := store.NewRecent(fs, 5, log)
	got := r.Add("abc")

	assert.Equal(t, []string{"abc"}, got, "in-memory list keeps working")
	assert.True(t, log.HasLevel("warn"))
}

func TestRecent_Clear(t *testing.T) {
	fs := storetest.NewFakeStore()
	r := store.NewRecent(fs, 5, nil)
	r.Add("a")

	r.Clear()

	assert.Empty(t, r.Items())
	assert.Equal(t, `[]`, fs.Raw(store.KeyRecent))
}

func TestRecent_ItemsIsACopy(t *testing.T) {
	r := store.NewRecent(storetest.NewFakeStore(), 5, nil)
	r.Add("a")

	items := r.Items()
	items[0] = "mutated"

	assert.Equal(t, []string{"a"}, r.Items())
}
