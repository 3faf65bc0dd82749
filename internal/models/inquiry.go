package models

import (
	"github.com/jinzhu/gorm"
)

// CakeInquiry is a customer's custom-cake request awaiting staff pricing and
// confirmation. Created once by the customer; after that only staff touch it
// (status moves or deletion).
type CakeInquiry struct {
	gorm.Model
	Size           CakeSize
	Flavor         CakeFlavor
	Description    string
	Decorations    bool
	CakeText       bool
	ExtraFilling   bool
	CustomerName   string
	PhoneNumber    string
	Email          string
	WorkflowStatus WorkflowStatus
	DeliveryType   DeliveryType
	Address        string
}
