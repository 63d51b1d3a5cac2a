package models

import "gorm.io/gorm"

// Order is the record written when a checkout reaches the confirmed
// state. In-flight checkout state is never persisted, only the result.
type Order struct {
	gorm.Model
	OwnerKey      string      `json:"ownerKey" gorm:"index;size:191"`
	ReceiptNumber string      `json:"receiptNumber" gorm:"uniqueIndex;size:64"`
	PaymentMethod string      `json:"paymentMethod"`
	Total         int         `json:"total"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int    `json:"orderId"`
	ProductId int    `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}
