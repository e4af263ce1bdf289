package store

import (
	"context"
	"sync"

	"coffee-shop-api/internal/models"
)

// MemoryMenuStore is the reference in-memory catalog store. A single mutex
// serializes mutations against reads; records are kept in insertion order.
type MemoryMenuStore struct {
	mu     sync.Mutex
	items  []models.MenuItem
	nextID int
}

// NewMemoryMenuStore creates an empty in-memory catalog store.
func NewMemoryMenuStore() *MemoryMenuStore {
	return &MemoryMenuStore{nextID: 1}
}

// List returns all menu items in insertion order.
func (s *MemoryMenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MenuItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Get returns the menu item with the given id, or ErrNotFound.
func (s *MemoryMenuStore) Get(ctx context.Context, id int) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

// Insert assigns the next id to the item, appends it and returns the stored
// record.
func (s *MemoryMenuStore) Insert(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID
	s.nextID++
	s.items = append(s.items, item)
	return item, nil
}

// Replace overwrites the record at id wholesale, keeping the id. It fails
// with ErrNotFound if the id was never assigned.
func (s *MemoryMenuStore) Replace(ctx context.Context, id int, item models.MenuItem) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			item.ID = id
			s.items[i] = item
			return item, nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

// MemoryOrderStore is the reference in-memory order store.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
	nextID int
}

// NewMemoryOrderStore creates an empty in-memory order store.
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{nextID: 1}
}

// List returns all orders in insertion order.
func (s *MemoryOrderStore) List(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// Get returns the order with the given id, or ErrNotFound.
func (s *MemoryOrderStore) Get(ctx context.Context, id int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return models.Order{}, ErrNotFound
}

// Insert assigns the next id to the order, appends it and returns the stored
// record.
func (s *MemoryOrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextID
	s.nextID++
	s.orders = append(s.orders, order)
	return order, nil
}

// Replace overwrites the record at id wholesale, keeping the id.
func (s *MemoryOrderStore) Replace(ctx context.Context, id int, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			order.ID = id
			s.orders[i] = order
			return order, nil
		}
	}
	return models.Order{}, ErrNotFound
}

// Remove deletes the order with the given id. Removed ids are not reused.
func (s *MemoryOrderStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
