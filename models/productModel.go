package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       int            `json:"price" binding:"required"`
	Stock       int            `json:"stock"`
	ImageUrl    string         `json:"imageUrl"`
	CategoryId  int            `json:"categoryId"`
	Tags        datatypes.JSON `json:"tags"`
}
