package manager

import (
	"context"
	"sync"
	"time"

	"github.com/kasuboski/arrqueue/pkg/cache"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

// ViewStore is the single cached copy of the aggregated queue. Instance
// queues are kept per instance and assembled into a view on read.
type ViewStore struct {
	mu          sync.RWMutex
	order       []string
	instances   *cache.Cache[string, queue.InstanceQueue]
	refreshedAt time.Time
	refresh     func(ctx context.Context) error
}

func NewViewStore(refresh func(ctx context.Context) error) *ViewStore {
	return &ViewStore{
		instances: cache.New[string, queue.InstanceQueue](),
		refresh:   refresh,
	}
}

func instanceKey(service queue.Service, instanceID string) string {
	return string(service) + ":" + instanceID
}

// Snapshot returns a copy of the current view
func (s *ViewStore) Snapshot() queue.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instances := make([]queue.InstanceQueue, 0, len(s.order))
	for _, key := range s.order {
		if iq, ok := s.instances.Get(key); ok {
			instances = append(instances, iq)
		}
	}

	return queue.NewView(instances...)
}

// Instance returns the cached queue of one instance
func (s *ViewStore) Instance(service queue.Service, instanceID string) (queue.InstanceQueue, bool) {
	return s.instances.Get(instanceKey(service, instanceID))
}

// Replace swaps the whole view, keeping its instance order
func (s *ViewStore) Replace(view queue.View) {
	order := make([]string, 0, len(view.Instances))
	entries := make(map[string]queue.InstanceQueue, len(view.Instances))
	for _, iq := range view.Clone().Instances {
		key := instanceKey(iq.Service, iq.InstanceID)
		if _, ok := entries[key]; !ok {
			order = append(order, key)
		}
		entries[key] = iq
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.instances.Replace(entries)
}

// Invalidate refetches the view from every instance
func (s *ViewStore) Invalidate(ctx context.Context) error {
	if s.refresh == nil {
		return nil
	}
	return s.refresh(ctx)
}

func (s *ViewStore) markRefreshed(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshedAt = at
}

// RefreshedAt is when the authoritative view was last fetched
func (s *ViewStore) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
