package store_test

import (
	"fmt"
	"testing"

	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/store"
	storetest "github.com/rileyhilliard/cfx/internal/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(id string) server.Snapshot {
	return server.Snapshot{
		ID:         id,
		Name:       "Server " + id,
		Players:    3,
		MaxPlayers: 32,
		Details:    server.Details{GameMode: "rp", MapName: "city", Version: "v1"},
		PlayerList: []string{},
	}
}

func ids(items []server.Snapshot) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "added", store.ActionAdded.String())
	assert.Equal(t, "removed", store.ActionRemoved.String())
	assert.Equal(t, "unknown", store.Action(7).String())
}

func TestFavorites_ToggleAddsAtHead(t *testing.T) {
	fs := storetest.NewFakeStore()
	f := store.NewFavorites(fs, 10, nil)

	assert.Equal(t, store.ActionAdded, f.Toggle(snap("a")))
	assert.Equal(t, store.ActionAdded, f.Toggle(snap("b")))

	assert.Equal(t, []string{"b", "a"}, ids(f.Items()))
	assert.True(t, f.Contains("a"))
	assert.Equal(t, 2, fs.WriteCount(store.KeyFavorites))
}

func TestFavorites_ToggleTwiceIsIdentity(t *testing.T) {
	f := store.NewFavorites(storetest.NewFakeStore(), 10, nil)
	f.Toggle(snap("a"))
	f.Toggle(snap("b"))
	before := f.Items()

	assert.Equal(t, store.ActionAdded, f.Toggle(snap("c")))
	assert.Equal(t, store.ActionRemoved, f.Toggle(snap("c")))

	assert.Equal(t, before, f.Items())
}

func TestFavorites_ToggleMatchesByIDOnly(t *testing.T) {
	f := store.NewFavorites(storetest.NewFakeStore(), 10, nil)
	f.Toggle(snap("a"))

	updated := snap("a")
	updated.Players = 30

	assert.Equal(t, store.ActionRemoved, f.Toggle(updated))
	assert.Equal(t, 0, f.Len())
}

func TestFavorites_EvictsTailWhenFull(t *testing.T) {
	f := store.NewFavorites(storetest.NewFakeStore(), 10, nil)
	for i := 0; i < 10; i++ {
		f.Toggle(snap(fmt.Sprintf("s%d", i)))
	}
	before := ids(f.Items())
	require.Len(t, before, 10)
	tail := before[len(before)-1]
	require.Equal(t, "s0", tail)

	action := f.Toggle(snap("new"))

	after := ids(f.Items())
	assert.Equal(t, store.ActionAdded, action)
	assert.Len(t, after, 10)
	assert.Equal(t, "new", after[0])
	assert.NotContains(t, after, tail)
	assert.Equal(t, before[:9], after[1:], "only the tail is evicted")
}

func TestFavorites_StoresCopy(t *testing.T) {
	f := store.NewFavorites(storetest.NewFakeStore(), 10, nil)
	s := snap("a")
	s.PlayerList = []string{"alice"}
	f.Toggle(s)

	s.PlayerList[0] = "mallory"

	got, ok := f.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, got.PlayerList)
}

func TestFavorites_Remove(t *testing.T) {
	f := store.NewFavorites(storetest.NewFakeStore(), 10, nil)
	f.Toggle(snap("a"))
	f.Toggle(snap("b"))

	assert.True(t, f.Remove("a"))
	assert.False(t, f.Remove("a"))
	assert.Equal(t, []string{"b"}, ids(f.Items()))

	_, ok := f.Get("a")
	assert.False(t, ok)
}

func TestFavorites_Clear(t *testing.T) {
	fs := storetest.NewFakeStore()
	f := store.NewFavorites(fs, 10, nil)
	f.Toggle(snap("a"))

	f.Clear()

	assert.Equal(t, 0, f.Len())
	assert.Equal(t, `[]`, fs.Raw(store.KeyFavorites))
}

func TestFavorites_PersistsAndReloads(t *testing.T) {
	fs := store.NewFileStore(t.TempDir())
	f := store.NewFavorites(fs, 10, nil)
	f.Toggle(snap("a"))
	f.Toggle(snap("b"))

	reloaded := store.NewFavorites(fs, 10, nil)

	assert.Equal(t, []string{"b", "a"}, ids(reloaded.Items()))
	got, ok := reloaded.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Server a", got.Name)
	assert.Equal(t, "rp", got.Details.GameMode)
}

func TestFavorites_LoadSanitizes(t *testing.T) {
	fs := storetest.NewFakeStore()
	fs.Put(store.KeyFavorites, `[
		{"id":"a","name":"A"},
		{"id":"","name":"no id"},
		{"id":"a","name":"dupe"},
		{"id":"b"}
	]`)

	f := store.NewFavorites(fs, 10, nil)
	items := f.Items()

	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, server.UnknownName, items[1].Name)
	assert.Equal(t, server.Unknown, items[1].Details.GameMode)
}

func TestFavorites_UnreadableStartsEmpty(t *testing.T) {
	fs := storetest.NewFakeStore()
	fs.FailReads = true
	log := logger.NewBufferLogger()

	f := store.NewFavorites(fs, 10, log)

	assert.Equal(t, 0, f.Len())
	assert.True(t, log.HasLevel("warn"))
	assert.Equal(t, store.ActionAdded, f.Toggle(snap("a")))
}

func TestFavorites_WriteFailureStillToggles(t *testing.T) {
	fs := storetest.NewFakeStore()
	fs.FailWrites = true
	log := logger.NewBufferLogger()
	f := store.NewFavorites(fs, 10, log)

	assert.Equal(t, store.ActionAdded, f.Toggle(snap("a")))
	assert.True(t, f.Contains("a"))
	assert.True(t, log.HasLevel("warn"))
}
