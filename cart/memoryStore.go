package cart

import (
	"context"
	"sync"

	"github.com/levelup-gaming/levelup-api/models"
)

// MemoryStore is a map-backed Store with the same contract as
// GormStore. It backs the unit tests and anything else that needs a
// cart without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]map[int]models.LineItem
	notifier *notifier
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:    make(map[string]map[int]models.LineItem),
		notifier: newNotifier(),
	}
}

func (s *MemoryStore) ListItems(ctx context.Context, owner string) ([]models.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.LineItem, 0, len(s.items[owner]))
	for _, item := range s.items[owner] {
		items = append(items, item)
	}
	return items, nil
}

func (s *MemoryStore) GetItem(ctx context.Context, owner string, productId int) (models.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[owner][productId]
	if !ok {
		return models.LineItem{}, ErrItemNotFound
	}
	return item, nil
}

func (s *MemoryStore) InsertItem(ctx context.Context, item models.LineItem) error {
	s.mu.Lock()
	if s.items[item.OwnerKey] == nil {
		s.items[item.OwnerKey] = make(map[int]models.LineItem)
	}
	s.items[item.OwnerKey][item.ProductId] = item
	s.mu.Unlock()
	s.notifier.broadcast(item.OwnerKey)
	return nil
}

func (s *MemoryStore) UpdateQuantity(ctx context.Context, owner string, productId, quantity int) error {
	s.mu.Lock()
	if item, ok := s.items[owner][productId]; ok {
		item.Quantity = quantity
		s.items[owner][productId] = item
	}
	s.mu.Unlock()
	s.notifier.broadcast(owner)
	return nil
}

func (s *MemoryStore) DeleteItem(ctx context.Context, owner string, productId int) error {
	s.mu.Lock()
	_, existed := s.items[owner][productId]
	delete(s.items[owner], productId)
	s.mu.Unlock()
	if existed {
		s.notifier.broadcast(owner)
	}
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context, owner string) error {
	s.mu.Lock()
	delete(s.items, owner)
	s.mu.Unlock()
	s.notifier.broadcast(owner)
	return nil
}

func (s *MemoryStore) Watch(owner string) (<-chan struct{}, func()) {
	return s.notifier.watch(owner)
}
