package models

import (
	"github.com/jinzhu/gorm"
)

// StandardCake is a premade cake in the catalog. Reference data: the
// storefront reads it, staff manage it elsewhere.
type StandardCake struct {
	gorm.Model
	Name        string
	Description string
	Price       int
	ImageURL    string
	Ingredients string
}

// Meal is a ready-made meal box in the catalog.
type Meal struct {
	gorm.Model
	Name        string
	Description string
	Price       int
	ImageURL    string
}
