// Package dashboard drives the admin workflow board: every inquiry and order
// projected into one item model, grouped by workflow status, moved between
// columns by staff.
package dashboard

import (
	"fmt"
	"time"

	"cafe45/internal/models"
)

// Kind tags which record an item projects. Every consumer switches on it
// exhaustively; there is no field-sniffing.
type Kind string

const (
	KindInquiry Kind = "inquiry"
	KindOrder   Kind = "order"
)

// ParseKind validates a kind coming off the wire.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindInquiry, KindOrder:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// Item is the board's unified view over CakeInquiry and Order. Exactly one
// of Inquiry and Order is set, matching Kind. Items are built fresh on every
// fetch and never persisted themselves.
type Item struct {
	ID             uint                  `json:"id"`
	Kind           Kind                  `json:"kind"`
	WorkflowStatus models.WorkflowStatus `json:"workflowStatus"`
	CustomerName   string                `json:"customerName"`
	PhoneNumber    string                `json:"phoneNumber"`
	Email          string                `json:"email"`
	Date           time.Time             `json:"date"`

	Inquiry *InquiryDetails `json:"inquiry,omitempty"`
	Order   *OrderSummary   `json:"order,omitempty"`
}

// InquiryDetails is the inquiry-specific payload.
type InquiryDetails struct {
	Size         models.CakeSize     `json:"size"`
	Flavor       models.CakeFlavor   `json:"flavor"`
	Description  string              `json:"description"`
	Decorations  bool                `json:"decorations"`
	CakeText     bool                `json:"cakeText"`
	ExtraFilling bool                `json:"extraFilling"`
	DeliveryType models.DeliveryType `json:"deliveryType"`
	Address      string              `json:"address,omitempty"`
}

// OrderSummary is the order-specific payload.
type OrderSummary struct {
	Lines           []OrderLine         `json:"items"`
	TotalAmount     int                 `json:"totalAmount"`
	PaymentStatus   string              `json:"paymentStatus"`
	DeliveryType    models.DeliveryType `json:"deliveryType"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`
	Allergies       string              `json:"allergies,omitempty"`
}

// OrderLine mirrors one persisted order item.
type OrderLine struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unitPrice"`
}

func itemFromInquiry(inquiry models.CakeInquiry) Item {
	return Item{
		ID:             inquiry.ID,
		Kind:           KindInquiry,
		WorkflowStatus: inquiry.WorkflowStatus,
		CustomerName:   inquiry.CustomerName,
		PhoneNumber:    inquiry.PhoneNumber,
		Email:          inquiry.Email,
		Date:           inquiry.CreatedAt,
		Inquiry: &InquiryDetails{
			Size:         inquiry.Size,
			Flavor:       inquiry.Flavor,
			Description:  inquiry.Description,
			Decorations:  inquiry.Decorations,
			CakeText:     inquiry.CakeText,
			ExtraFilling: inquiry.ExtraFilling,
			DeliveryType: inquiry.DeliveryType,
			Address:      inquiry.Address,
		},
	}
}

func itemFromOrder(order models.Order) Item {
	lines := make([]OrderLine, 0, len(order.Items))
	for _, line := range order.Items {
		lines = append(lines, OrderLine{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return Item{
		ID:             order.ID,
		Kind:           KindOrder,
		WorkflowStatus: order.WorkflowStatus,
		CustomerName:   order.CustomerName,
		PhoneNumber:    order.PhoneNumber,
		Email:          order.Email,
		Date:           order.CreatedAt,
		Order: &OrderSummary{
			Lines:           lines,
			TotalAmount:     order.TotalAmount,
			PaymentStatus:   order.PaymentStatus,
			DeliveryType:    order.DeliveryType,
			DeliveryAddress: order.DeliveryAddress,
			Allergies:       order.Allergies,
		},
	}
}
