// Package submission turns customer-facing forms into persisted records:
// cake inquiries and cart checkouts. All validation happens here, before any
// persistence attempt.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cafe45/internal/cart"
	"cafe45/internal/feed"
	"cafe45/internal/metrics"
	"cafe45/internal/models"
)

// HomeDeliveryFee is the fixed surcharge in whole kronor for home delivery.
const HomeDeliveryFee = 200

// ErrEmptyCart blocks checkout before any form validation runs. An empty
// cart is not a form error; the UI sends the customer back to the catalog.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError is a user-facing rejection tied to one form field. It is
// always raised before persistence is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InquiryStore persists cake inquiries.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inquiry *models.CakeInquiry) error
}

// OrderStore persists orders. CreateOrder must write the header and all
// lines atomically: either the whole order lands or none of it does.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// InquiryForm is what the cake page submits.
type InquiryForm struct {
	Size         models.CakeSize     `json:"size"`
	Flavor       models.CakeFlavor   `json:"flavor"`
	CustomFlavor string              `json:"customFlavor"`
	Description  string              `json:"description"`
	Decorations  bool                `json:"decorations"`
	CakeText     bool                `json:"cakeText"`
	ExtraFilling bool                `json:"extraFilling"`
	CustomerName string              `json:"customerName"`
	PhoneNumber  string              `json:"phoneNumber"`
	Email        string              `json:"email"`
	AllergyNotes string              `json:"allergyNotes"`
	DeliveryType models.DeliveryType `json:"deliveryType"`
	Address      string              `json:"address"`
}

// OrderForm is what the checkout page submits alongside the cart.
type OrderForm struct {
	CustomerName string              `json:"customerName"`
	PhoneNumber  string              `json:"phoneNumber"`
	Email        string              `json:"email"`
	AllergyNotes string              `json:"allergyNotes"`
	DeliveryType models.DeliveryType `json:"deliveryType"`
	Address      string              `json:"address"`
}

// Service validates and persists customer submissions.
type Service struct {
	inquiries InquiryStore
	orders    OrderStore
	feed      feed.Publisher
}

// NewService wires the service to its stores and the change feed.
func NewService(inquiries InquiryStore, orders OrderStore, publisher feed.Publisher) *Service {
	return &Service{inquiries: inquiries, orders: orders, feed: publisher}
}

// SubmitInquiry validates the form and persists one CakeInquiry. On failure
// the form is never cleared by this layer, so the customer can retry as-is.
func (s *Service) SubmitInquiry(ctx context.Context, form InquiryForm) (*models.CakeInquiry, error) {
	if strings.TrimSpace(form.CustomerName) == "" {
		return nil, &ValidationError{Field: "customerName", Message: "Fyll i namn."}
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		return nil, &ValidationError{Field: "phoneNumber", Message: "Fyll i telefonnummer."}
	}
	if strings.TrimSpace(form.Description) == "" {
		return nil, &ValidationError{Field: "description", Message: "Beskriv tårtan."}
	}
	if err := validateDelivery(form.DeliveryType, form.Address); err != nil {
		return nil, err
	}

	inquiry := &models.CakeInquiry{
		Size:           form.Size,
		Flavor:         form.Flavor,
		Description:    composeDescription(form),
		Decorations:    form.Decorations,
		CakeText:       form.CakeText,
		ExtraFilling:   form.ExtraFilling,
		CustomerName:   form.CustomerName,
		PhoneNumber:    form.PhoneNumber,
		Email:          form.Email,
		WorkflowStatus: models.StatusPending,
		DeliveryType:   form.DeliveryType,
		Address:        strings.TrimSpace(form.Address),
	}

	if err := s.inquiries.CreateInquiry(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	metrics.RecordInquirySubmitted()
	s.feed.Publish(feed.Event{Table: feed.TableInquiries, Action: feed.ActionInsert})
	return inquiry, nil
}

// SubmitOrder checks out the cart. The line items are snapshotted before
// validation so the persisted order matches exactly what the customer saw.
// The cart is cleared only after the whole order has been persisted.
func (s *Service) SubmitOrder(ctx context.Context, c *cart.Cart, form OrderForm) (*models.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if strings.TrimSpace(form.CustomerName) == "" {
		return nil, &ValidationError{Field: "customerName", Message: "Fyll i namn."}
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		return nil, &ValidationError{Field: "phoneNumber", Message: "Fyll i telefonnummer."}
	}
	if email := strings.TrimSpace(form.Email); email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "Fyll i en giltig e-postadress."}
	}
	if err := validateDelivery(form.DeliveryType, form.Address); err != nil {
		return nil, err
	}

	deliveryFee := 0
	if form.DeliveryType == models.DeliveryHomeDelivery {
		deliveryFee = HomeDeliveryFee
	}

	subtotal := 0
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		subtotal += item.Price * item.Quantity
		lines = append(lines, models.OrderItem{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}

	order := &models.Order{
		Items:           lines,
		TotalAmount:     subtotal + deliveryFee,
		CustomerName:    form.CustomerName,
		PhoneNumber:     form.PhoneNumber,
		Email:           form.Email,
		WorkflowStatus:  models.StatusPending,
		DeliveryType:    form.DeliveryType,
		DeliveryCost:    deliveryFee,
		DeliveryAddress: strings.TrimSpace(form.Address),
		Allergies:       strings.TrimSpace(form.AllergyNotes),
		PaymentStatus:   models.PaymentOnSite,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	c.Clear()
	metrics.RecordOrderSubmitted(order.TotalAmount)
	s.feed.Publish(feed.Event{Table: feed.TableOrders, Action: feed.ActionInsert})
	return order, nil
}

// validateDelivery enforces the delivery-area rule. Pickup never requires or
// validates an address.
func validateDelivery(deliveryType models.DeliveryType, address string) error {
	if deliveryType != models.DeliveryHomeDelivery {
		return nil
	}
	if strings.TrimSpace(address) == "" {
		return &ValidationError{Field: "address", Message: "Fyll i leveransadress."}
	}
	if !AddressInServiceArea(address) {
		return &ValidationError{Field: "address", Message: "Vi levererar endast inom Göteborg. Ange en adress som innehåller Göteborg."}
	}
	return nil
}

// composeDescription folds the custom flavor note and the allergy notes into
// the persisted description, so staff see everything in one place.
func composeDescription(form InquiryForm) string {
	desc := strings.TrimSpace(form.Description)
	if form.Flavor == models.FlavorCustom && strings.TrimSpace(form.CustomFlavor) != "" {
		desc = fmt.Sprintf("%s (Smak: %s)", desc, strings.TrimSpace(form.CustomFlavor))
	}
	if allergies := strings.TrimSpace(form.AllergyNotes); allergies != "" {
		desc += "\nAllergier: " + allergies
	} else {
		desc += "\nAllergier: Inga angivna"
	}
	return desc
}
