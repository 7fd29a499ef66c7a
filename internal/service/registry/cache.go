package registry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
)

// Cache is a live view over a subscribed collection. It replaces its
// in-memory snapshot wholesale on every delivery, deduplicates by
// identifier, and notifies registered observers so derived views can
// recompute. Close releases the subscription and must run on every
// teardown path.
type Cache struct {
	client mongodb.CollectionClient
	filter mongodb.Filter
	logger *zap.Logger

	mu        sync.RWMutex
	snapshot  []models.Farmer
	observers []func([]models.Farmer)

	sub  *mongodb.Subscription
	done chan struct{}
}

// NewCache builds an unstarted cache over the given collection client.
func NewCache(client mongodb.CollectionClient, filter mongodb.Filter, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		client: client,
		filter: filter,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start acquires the subscription and begins applying deliveries. The
// subscription is released if the context is canceled or the stream ends.
func (c *Cache) Start(ctx context.Context) error {
	sub, err := c.client.Subscribe(ctx, c.filter)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	go func() {
		defer close(c.done)
		defer sub.Close()

		for snapshot := range sub.Snapshots() {
			c.apply(snapshot)
		}

		if err := sub.Err(); err != nil {
			c.logger.Error("live view delivery failed", zap.Error(err))
		}
	}()

	return nil
}

// Snapshot returns the last-known contents of the collection.
func (c *Cache) Snapshot() []models.Farmer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Farmer, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// OnChange registers an observer invoked with every new snapshot. Observers
// registered after Start also receive the current snapshot immediately when
// one exists.
func (c *Cache) OnChange(fn func([]models.Farmer)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	current := c.snapshot
	c.mu.Unlock()

	if current != nil {
		fn(current)
	}
}

// Close releases the subscription and waits for the delivery loop to stop.
// Safe to call multiple times.
func (c *Cache) Close() {
	c.mu.RLock()
	sub := c.sub
	c.mu.RUnlock()

	if sub == nil {
		return
	}
	sub.Close()
	<-c.done
}

func (c *Cache) apply(snapshot []models.Farmer) {
	deduped := dedupeByID(snapshot)

	c.mu.Lock()
	c.snapshot = deduped
	observers := make([]func([]models.Farmer), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	c.logger.Debug("snapshot applied", zap.Int("records", len(deduped)))

	for _, fn := range observers {
		fn(deduped)
	}
}

// dedupeByID keeps the first occurrence per identifier, preserving delivery
// order. The backend delivers whole snapshots, so duplicates only appear
// around reconnects.
func dedupeByID(snapshot []models.Farmer) []models.Farmer {
	seen := make(map[string]struct{}, len(snapshot))
	out := make([]models.Farmer, 0, len(snapshot))
	for _, farmer := range snapshot {
		if _, dup := seen[farmer.ID]; dup {
			continue
		}
		seen[farmer.ID] = struct{}{}
		out = append(out, farmer)
	}
	return out
}
