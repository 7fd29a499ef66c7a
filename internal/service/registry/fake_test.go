package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
)

// fakeClient is an in-memory CollectionClient. Mutations broadcast a fresh
// full snapshot to every open subscription, like the real backend.
type fakeClient struct {
	mu      sync.Mutex
	docs    map[string]models.Farmer
	order   []string
	nextID  int
	subs    map[*mongodb.Subscription]mongodb.Filter
	remotes int

	failCreate error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		docs: make(map[string]models.Farmer),
		subs: make(map[*mongodb.Subscription]mongodb.Filter),
	}
}

func (f *fakeClient) remoteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remotes
}

func (f *fakeClient) snapshotLocked(filter mongodb.Filter) []models.Farmer {
	out := make([]models.Farmer, 0, len(f.order))
	for _, id := range f.order {
		doc := f.docs[id]
		if !filter.IsZero() && fieldValue(doc, filter.Key) != filter.Value {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func fieldValue(f models.Farmer, key string) string {
	switch key {
	case "state":
		return f.State
	case "gender":
		return f.Gender
	default:
		return ""
	}
}

func (f *fakeClient) broadcastLocked() {
	for sub, filter := range f.subs {
		sub.Push(f.snapshotLocked(filter))
	}
}

func (f *fakeClient) Subscribe(_ context.Context, filter mongodb.Filter) (*mongodb.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++

	var sub *mongodb.Subscription
	sub = mongodb.NewSubscription(func() {
		f.mu.Lock()
		delete(f.subs, sub)
		f.mu.Unlock()
		sub.Finish()
	})
	f.subs[sub] = filter
	sub.Push(f.snapshotLocked(filter))
	return sub, nil
}

func (f *fakeClient) GetOnce(_ context.Context, filter mongodb.Filter) ([]models.Farmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++
	return f.snapshotLocked(filter), nil
}

func (f *fakeClient) GetByID(_ context.Context, id string) (models.Farmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++
	doc, ok := f.docs[id]
	if !ok {
		return models.Farmer{}, fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	return doc, nil
}

func (f *fakeClient) Create(_ context.Context, farmer models.Farmer) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++
	if f.failCreate != nil {
		return "", f.failCreate
	}

	f.nextID++
	farmer.ID = fmt.Sprintf("doc-%d", f.nextID)
	f.docs[farmer.ID] = farmer
	f.order = append(f.order, farmer.ID)
	f.broadcastLocked()
	return farmer.ID, nil
}

func (f *fakeClient) UpdateMerge(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}

	for key, value := range fields {
		switch key {
		case "firstname":
			doc.Firstname = value.(string)
		case "lastname":
			doc.Lastname = value.(string)
		case "farmerID":
			doc.FarmerID = value.(string)
		case "phone":
			doc.Phone = value.(string)
		case "email":
			doc.Email = value.(string)
		case "state":
			doc.State = value.(string)
		case "primaryCrop":
			doc.PrimaryCrop = value.(string)
		case "farmSize":
			doc.FarmSize = value.(string)
		case "soilChemistry":
			chem := value.(models.SoilChemistry)
			doc.SoilChemistry = &chem
		case "waterDetails":
			water := value.(models.WaterProfile)
			doc.WaterDetails = &water
		case "farmDetails":
			details := value.(models.FarmDetails)
			doc.FarmDetails = &details
		default:
			return fmt.Errorf("fake merge does not model field %q", key)
		}
	}

	f.docs[id] = doc
	f.broadcastLocked()
	return nil
}

func (f *fakeClient) Replace(_ context.Context, id string, farmer models.Farmer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	farmer.ID = id
	f.docs[id] = farmer
	f.broadcastLocked()
	return nil
}

func (f *fakeClient) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remotes++
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	delete(f.docs, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	f.broadcastLocked()
	return nil
}
