package models

import "time"

// LineItem is a single cart row. There is at most one row per
// (OwnerKey, ProductId) pair and Quantity is always >= 1 while the
// row exists; a quantity that would drop to zero deletes the row
// instead. No soft delete: rows are removed for real so the unique
// index never collides with a tombstone.
type LineItem struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	OwnerKey  string    `json:"ownerKey" gorm:"uniqueIndex:idx_owner_product;size:191"`
	ProductId int       `json:"productId" gorm:"uniqueIndex:idx_owner_product"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
