package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cafe45/internal/models"
)

// Store is what the board needs from persistence. The gorm implementation
// lives in internal/storage; tests use in-memory fakes.
type Store interface {
	ListInquiries(ctx context.Context) ([]models.CakeInquiry, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateInquiryStatus(ctx context.Context, id uint, status models.WorkflowStatus) error
	UpdateOrderStatus(ctx context.Context, id uint, status models.WorkflowStatus) error
	DeleteInquiry(ctx context.Context, id uint) error
	DeleteOrder(ctx context.Context, id uint) error
}

// Service builds the unified item list.
type Service struct {
	store Store
}

// NewService wires the service to its store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// FetchAll loads all inquiries and all orders in parallel, projects both
// into the shared item shape, and merges them newest first.
func (s *Service) FetchAll(ctx context.Context) ([]Item, error) {
	var (
		wg         sync.WaitGroup
		inquiries  []models.CakeInquiry
		orders     []models.Order
		inquiryErr error
		orderErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		inquiries, inquiryErr = s.store.ListInquiries(ctx)
	}()
	go func() {
		defer wg.Done()
		orders, orderErr = s.store.ListOrders(ctx)
	}()
	wg.Wait()

	if inquiryErr != nil {
		return nil, fmt.Errorf("fetch inquiries: %w", inquiryErr)
	}
	if orderErr != nil {
		return nil, fmt.Errorf("fetch orders: %w", orderErr)
	}

	items := make([]Item, 0, len(inquiries)+len(orders))
	for _, inquiry := range inquiries {
		items = append(items, itemFromInquiry(inquiry))
	}
	for _, order := range orders {
		items = append(items, itemFromOrder(order))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

// Detail returns the full item for the detail panel, or nil when it does
// not exist.
func (s *Service) Detail(ctx context.Context, id uint, kind Kind) (*Item, error) {
	items, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id && items[i].Kind == kind {
			return &items[i], nil
		}
	}
	return nil, nil
}
