package models

import (
	"github.com/jinzhu/gorm"
)

// Order is a finalized cart checkout. The line items are a frozen snapshot of
// the cart at checkout time, never live references into the catalog.
type Order struct {
	gorm.Model
	Items           []OrderItem `gorm:"foreignkey:OrderID"`
	TotalAmount     int
	CustomerName    string
	PhoneNumber     string
	Email           string
	WorkflowStatus  WorkflowStatus
	DeliveryType    DeliveryType
	DeliveryCost    int
	DeliveryAddress string
	Allergies       string
	PaymentStatus   string
}

// OrderItem is one cart line frozen into an order.
type OrderItem struct {
	gorm.Model
	OrderID     uint
	ProductName string
	Quantity    int
	UnitPrice   int
}

// PaymentOnSite is the only payment status the storefront writes: payment
// happens in person at pickup or delivery.
const PaymentOnSite = "Betalas på plats"
