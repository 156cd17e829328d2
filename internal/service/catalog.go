package service

import (
	"context"
	"log"
	"sync"

	"tastehaven/internal/domain"
)

// CatalogService keeps the restaurant profile and menu in memory and writes
// the combined snapshot through the repository on every mutation. A failed
// write keeps the in-memory state and is only logged; the next mutation
// overwrites whatever the store holds.
type CatalogService struct {
	mu   sync.RWMutex
	repo SnapshotRepository
	snap domain.Snapshot
}

func NewCatalogService(repo SnapshotRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
		snap: domain.DefaultSnapshot(),
	}
}

// Load replaces the in-memory catalog with the persisted snapshot. A missing
// or unreadable record falls back to the seeded defaults. Must run once
// before the catalog serves reads.
func (s *CatalogService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		log.Printf("[catalog] load failed, using defaults: %v", err)
		s.snap = domain.DefaultSnapshot()
		return
	}
	if snap == nil {
		log.Println("[catalog] no stored snapshot, using defaults")
		return
	}
	s.snap = *snap
}

// Get returns the current profile and the menu in insertion order.
func (s *CatalogService) Get() (domain.Restaurant, []domain.MenuItem) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.MenuItem, len(s.snap.MenuItems))
	copy(items, s.snap.MenuItems)
	return s.snap.Restaurant, items
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, upd domain.RestaurantUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &s.snap.Restaurant
	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.Logo != nil {
		r.Logo = *upd.Logo
	}
	if upd.Tagline != nil {
		r.Tagline = *upd.Tagline
	}
	if upd.WhatsAppNumber != nil {
		r.WhatsAppNumber = *upd.WhatsAppNumber
	}
	if upd.Description != nil {
		r.Description = *upd.Description
	}
	if upd.Address != nil {
		r.Address = *upd.Address
	}
	s.persist(ctx)
}

// AddItem appends to the menu. The caller is responsible for generating a
// unique identifier and validating required fields.
func (s *CatalogService) AddItem(ctx context.Context, item domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.MenuItems = append(s.snap.MenuItems, item)
	s.persist(ctx)
}

// UpdateItem merges the given fields into the item with a matching id and
// reports whether a match was found. The snapshot is persisted either way.
func (s *CatalogService) UpdateItem(ctx context.Context, id string, upd domain.MenuItemUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.snap.MenuItems {
		if s.snap.MenuItems[i].ID != id {
			continue
		}
		item := &s.snap.MenuItems[i]
		if upd.Name != nil {
			item.Name = *upd.Name
		}
		if upd.Description != nil {
			item.Description = *upd.Description
		}
		if upd.Price != nil {
			item.Price = *upd.Price
		}
		if upd.Image != nil {
			item.Image = *upd.Image
		}
		if upd.Category != nil {
			item.Category = *upd.Category
		}
		if upd.Available != nil {
			item.Available = *upd.Available
		}
		found = true
		break
	}
	s.persist(ctx)
	return found
}

// DeleteItem removes the item with a matching id if present and persists
// regardless. Cart lines referencing the item are left alone.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.snap.MenuItems[:0]
	for _, item := range s.snap.MenuItems {
		if item.ID != id {
			items = append(items, item)
		}
	}
	s.snap.MenuItems = items
	s.persist(ctx)
}

// persist writes the full snapshot synchronously. Callers hold the lock.
func (s *CatalogService) persist(ctx context.Context) {
	snap := s.snap
	snap.MenuItems = make([]domain.MenuItem, len(s.snap.MenuItems))
	copy(snap.MenuItems, s.snap.MenuItems)

	if err := s.repo.Save(ctx, &snap); err != nil {
		log.Printf("[catalog] persist failed, keeping in-memory state: %v", err)
	}
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
