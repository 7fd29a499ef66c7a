package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
)

func waitForSnapshot(t *testing.T, ch <-chan []models.Farmer) []models.Farmer {
	t.Helper()
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot delivery")
		return nil
	}
}

func TestCache_AppliesInitialSnapshot(t *testing.T) {
	client := newFakeClient()
	_, err := client.Create(context.Background(), models.Farmer{Firstname: "Amina"})
	require.NoError(t, err)

	cache := NewCache(client, mongodb.Filter{}, nil)
	require.NoError(t, cache.Start(context.Background()))
	defer cache.Close()

	deliveries := make(chan []models.Farmer, 4)
	cache.OnChange(func(snapshot []models.Farmer) { deliveries <- snapshot })

	snapshot := waitForSnapshot(t, deliveries)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Amina", snapshot[0].Firstname)
}

func TestCache_ReplacesSnapshotOnEveryChange(t *testing.T) {
	client := newFakeClient()
	cache := NewCache(client, mongodb.Filter{}, nil)
	require.NoError(t, cache.Start(context.Background()))
	defer cache.Close()

	deliveries := make(chan []models.Farmer, 8)
	cache.OnChange(func(snapshot []models.Farmer) { deliveries <- snapshot })

	_, err := client.Create(context.Background(), models.Farmer{Firstname: "Amina"})
	require.NoError(t, err)
	_, err = client.Create(context.Background(), models.Farmer{Firstname: "Bashir"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(cache.Snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond, "cache should converge on the latest snapshot")
}

func TestCache_CloseReleasesSubscription(t *testing.T) {
	client := newFakeClient()
	cache := NewCache(client, mongodb.Filter{}, nil)
	require.NoError(t, cache.Start(context.Background()))

	client.mu.Lock()
	open := len(client.subs)
	client.mu.Unlock()
	require.Equal(t, 1, open)

	cache.Close()

	client.mu.Lock()
	open = len(client.subs)
	client.mu.Unlock()
	assert.Zero(t, open, "closing the cache must release the listener")

	// Close is idempotent.
	cache.Close()
}

func TestDedupeByID_KeepsFirstOccurrence(t *testing.T) {
	snapshot := []models.Farmer{
		{ID: "a", Firstname: "first"},
		{ID: "b"},
		{ID: "a", Firstname: "second"},
	}

	deduped := dedupeByID(snapshot)

	require.Len(t, deduped, 2)
	assert.Equal(t, "a", deduped[0].ID)
	assert.Equal(t, "first", deduped[0].Firstname)
	assert.Equal(t, "b", deduped[1].ID)
}
