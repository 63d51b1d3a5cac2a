package cart

import (
	"context"
	"errors"

	"github.com/levelup-gaming/levelup-api/models"
	"gorm.io/gorm"
)

// GormStore keeps line items in the line_items table. Every successful
// mutation broadcasts a change signal for the affected owner.
type GormStore struct {
	db       *gorm.DB
	notifier *notifier
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, notifier: newNotifier()}
}

func (s *GormStore) ListItems(ctx context.Context, owner string) ([]models.LineItem, error) {
	var items []models.LineItem
	result := s.db.WithContext(ctx).Where("owner_key = ?", owner).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (s *GormStore) GetItem(ctx context.Context, owner string, productId int) (models.LineItem, error) {
	var item models.LineItem
	result := s.db.WithContext(ctx).
		Where("owner_key = ? AND product_id = ?", owner, productId).
		First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return models.LineItem{}, ErrItemNotFound
		}
		return models.LineItem{}, result.Error
	}
	return item, nil
}

func (s *GormStore) InsertItem(ctx context.Context, item models.LineItem) error {
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return err
	}
	s.notifier.broadcast(item.OwnerKey)
	return nil
}

func (s *GormStore) UpdateQuantity(ctx context.Context, owner string, productId, quantity int) error {
	result := s.db.WithContext(ctx).Model(&models.LineItem{}).
		Where("owner_key = ? AND product_id = ?", owner, productId).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	s.notifier.broadcast(owner)
	return nil
}

func (s *GormStore) DeleteItem(ctx context.Context, owner string, productId int) error {
	result := s.db.WithContext(ctx).
		Where("owner_key = ? AND product_id = ?", owner, productId).
		Delete(&models.LineItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		s.notifier.broadcast(owner)
	}
	return nil
}

func (s *GormStore) DeleteAll(ctx context.Context, owner string) error {
	result := s.db.WithContext(ctx).
		Where("owner_key = ?", owner).
		Delete(&models.LineItem{})
	if result.Error != nil {
		return result.Error
	}
	s.notifier.broadcast(owner)
	return nil
}

func (s *GormStore) Watch(owner string) (<-chan struct{}, func()) {
	return s.notifier.watch(owner)
}
