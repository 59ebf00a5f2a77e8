package store

import (
	"sort"
	"sync"
	"time"
)

// Store is a thread-safe in-memory collection of items.
//
// IDs are assigned monotonically under the write lock and are never
// reused, even after deletion. Every operation validates its input
// before mutating anything, so a failed call leaves the store unchanged.
type Store struct {
	mu     sync.RWMutex
	items  map[int64]*Item
	nextID int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		items: make(map[int64]*Item),
	}
}

// Create validates the payload, assigns the next unused ID and stores a
// new item. Returns the created item.
func (s *Store) Create(p Payload) (*Item, error) {
	if err := p.validateFull(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	item := &Item{
		ID:        s.nextID,
		Name:      *p.Name,
		Price:     *p.Price,
		Metadata:  cloneMetadata(p.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Description != nil {
		item.Description = *p.Description
	}

	s.items[item.ID] = item
	return item.clone(), nil
}

// Get retrieves an item by ID.
func (s *Store) Get(id int64) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return item.clone(), nil
}

// List returns all current items in creation order.
func (s *Store) List() []*Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item.clone())
	}

	// IDs are assigned monotonically, so ID order is creation order.
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Replace overwrites every field of an existing item except its ID and
// creation time, applying the same validation as Create.
func (s *Store) Replace(id int64, p Payload) (*Item, error) {
	if err := p.validateFull(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	item := &Item{
		ID:        id,
		Name:      *p.Name,
		Price:     *p.Price,
		Metadata:  cloneMetadata(p.Metadata),
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if p.Description != nil {
		item.Description = *p.Description
	}

	s.items[id] = item
	return item.clone(), nil
}

// Patch overwrites only the fields present in the payload; omitted
// fields retain their prior values.
func (s *Store) Patch(id int64, p Payload) (*Item, error) {
	if err := p.validatePartial(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Metadata != nil {
		item.Metadata = cloneMetadata(p.Metadata)
	}
	item.UpdatedAt = time.Now()

	return item.clone(), nil
}

// Delete removes an item by ID. The ID is not reused afterwards.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.items, id)
	return nil
}

// Count returns the number of stored items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear removes all items without resetting ID assignment.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[int64]*Item)
}
