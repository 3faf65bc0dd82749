// Package storage is the gorm-backed implementation of the small store
// interfaces the services declare.
package storage

import (
	"context"
	"fmt"

	"cafe45/internal/models"

	"github.com/jinzhu/gorm"
)

// Store wraps the shared gorm handle.
type Store struct {
	db *gorm.DB
}

// NewStore builds a store over an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateInquiry persists one cake inquiry.
func (s *Store) CreateInquiry(ctx context.Context, inquiry *models.CakeInquiry) error {
	return s.db.Create(inquiry).Error
}

// CreateOrder persists the order header and every line in one transaction:
// either the whole order lands or none of it does, so an order can never
// exist without its lines.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	lines := order.Items
	order.Items = nil
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		order.Items = lines
		return err
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		if err := tx.Create(&lines[i]).Error; err != nil {
			tx.Rollback()
			order.Items = lines
			return err
		}
	}
	order.Items = lines

	return tx.Commit().Error
}

// ListInquiries returns all inquiries, newest first.
func (s *Store) ListInquiries(ctx context.Context) ([]models.CakeInquiry, error) {
	var inquiries []models.CakeInquiry
	if err := s.db.Order("created_at desc").Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// ListOrders returns all orders with their line items, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateInquiryStatus moves one inquiry to the given workflow status.
func (s *Store) UpdateInquiryStatus(ctx context.Context, id uint, status models.WorkflowStatus) error {
	return s.updateStatus(&models.CakeInquiry{}, id, status)
}

// UpdateOrderStatus moves one order to the given workflow status.
func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, status models.WorkflowStatus) error {
	return s.updateStatus(&models.Order{}, id, status)
}

func (s *Store) updateStatus(model interface{}, id uint, status models.WorkflowStatus) error {
	result := s.db.Model(model).Where("id = ?", id).Update("workflow_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("record %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteInquiry soft-deletes one inquiry.
func (s *Store) DeleteInquiry(ctx context.Context, id uint) error {
	return s.db.Where("id = ?", id).Delete(&models.CakeInquiry{}).Error
}

// DeleteOrder soft-deletes one order and its lines.
func (s *Store) DeleteOrder(ctx context.Context, id uint) error {
	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("id = ?", id).Delete(&models.Order{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// GetProfileByUserID loads the profile the gate consults.
func (s *Store) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListStandardCakes returns the premade cake catalog.
func (s *Store) ListStandardCakes(ctx context.Context) ([]models.StandardCake, error) {
	var cakes []models.StandardCake
	if err := s.db.Find(&cakes).Error; err != nil {
		return nil, err
	}
	return cakes, nil
}

// ListMeals returns the meal-box catalog.
func (s *Store) ListMeals(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}
