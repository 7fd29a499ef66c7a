package mongodb

import (
	"context"
	"sync"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

// Filter is a server-side equality constraint on a single field. The zero
// value means "no constraint".
type Filter struct {
	Key   string
	Value string
}

// IsZero reports whether the filter constrains anything.
func (f Filter) IsZero() bool {
	return f.Key == ""
}

// CollectionClient is the capability surface the view-model layer depends on.
// Every delivery on a subscription is a full snapshot of the (filtered)
// collection, never a delta.
type CollectionClient interface {
	Subscribe(ctx context.Context, filter Filter) (*Subscription, error)
	GetOnce(ctx context.Context, filter Filter) ([]models.Farmer, error)
	GetByID(ctx context.Context, id string) (models.Farmer, error)
	Create(ctx context.Context, farmer models.Farmer) (string, error)
	UpdateMerge(ctx context.Context, id string, fields map[string]any) error
	Replace(ctx context.Context, id string, farmer models.Farmer) error
	Delete(ctx context.Context, id string) error
}

// Subscription is a cancelable stream of collection snapshots. Closing it
// releases the underlying listener; the snapshot channel is closed once the
// producer stops, after which Err reports any delivery failure.
type Subscription struct {
	snapshots chan []models.Farmer
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// NewSubscription builds a subscription whose producer delivers via Push and
// terminates via Finish. cancel may be nil for test fakes.
func NewSubscription(cancel context.CancelFunc) *Subscription {
	return &Subscription{
		snapshots: make(chan []models.Farmer, 1),
		cancel:    cancel,
	}
}

// Snapshots returns the delivery channel. It is closed when the subscription
// terminates for any reason.
func (s *Subscription) Snapshots() <-chan []models.Farmer {
	return s.snapshots
}

// Push delivers a snapshot, replacing an undelivered older one. Consumers
// only ever care about the latest full snapshot, so conflation is safe.
func (s *Subscription) Push(snapshot []models.Farmer) {
	for {
		select {
		case s.snapshots <- snapshot:
			return
		default:
			select {
			case <-s.snapshots:
			default:
			}
		}
	}
}

// Fail records a delivery failure for consumers to inspect after the
// snapshot channel closes.
func (s *Subscription) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Finish closes the delivery channel. Must be called exactly once by the
// producer.
func (s *Subscription) Finish() {
	close(s.snapshots)
}

// Err returns the recorded delivery failure, if any.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close releases the listener. Safe to call multiple times and on every
// teardown path.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
