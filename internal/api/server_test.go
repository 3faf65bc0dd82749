package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafe45/internal/auth"
	"cafe45/internal/cart"
	"cafe45/internal/dashboard"
	"cafe45/internal/feed"
	"cafe45/internal/models"
	"cafe45/internal/submission"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore backs every persistence interface the server consumes.
type memStore struct {
	inquiries []models.CakeInquiry
	orders    []models.Order
	cakes     []models.StandardCake
	meals     []models.Meal
	profiles  map[string]*models.Profile

	failWrites bool
	nextID     uint
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[string]*models.Profile{
			"admin": {UserID: "admin", Name: "Café 45", IsAdmin: true},
		},
		nextID: 1,
	}
}

func (m *memStore) CreateInquiry(_ context.Context, inquiry *models.CakeInquiry) error {
	if m.failWrites {
		return fmt.Errorf("write refused")
	}
	inquiry.ID = m.nextID
	inquiry.CreatedAt = time.Now()
	m.nextID++
	m.inquiries = append(m.inquiries, *inquiry)
	return nil
}

func (m *memStore) CreateOrder(_ context.Context, order *models.Order) error {
	if m.failWrites {
		return fmt.Errorf("write refused")
	}
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	m.nextID++
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memStore) ListInquiries(context.Context) ([]models.CakeInquiry, error) {
	return append([]models.CakeInquiry(nil), m.inquiries...), nil
}

func (m *memStore) ListOrders(context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), m.orders...), nil
}

func (m *memStore) UpdateInquiryStatus(_ context.Context, id uint, status models.WorkflowStatus) error {
	if m.failWrites {
		return fmt.Errorf("write refused")
	}
	for i := range m.inquiries {
		if m.inquiries[i].ID == id {
			m.inquiries[i].WorkflowStatus = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memStore) UpdateOrderStatus(_ context.Context, id uint, status models.WorkflowStatus) error {
	if m.failWrites {
		return fmt.Errorf("write refused")
	}
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].WorkflowStatus = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memStore) DeleteInquiry(_ context.Context, id uint) error {
	for i := range m.inquiries {
		if m.inquiries[i].ID == id {
			m.inquiries = append(m.inquiries[:i], m.inquiries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memStore) DeleteOrder(_ context.Context, id uint) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memStore) ListStandardCakes(context.Context) ([]models.StandardCake, error) {
	return m.cakes, nil
}

func (m *memStore) ListMeals(context.Context) ([]models.Meal, error) {
	return m.meals, nil
}

func (m *memStore) GetProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	return m.profiles[userID], nil
}

type silentNotifier struct{}

func (silentNotifier) Success(string) {}
func (silentNotifier) Error(string)   {}

type testEnv struct {
	server *Server
	store  *memStore
	board  *dashboard.Board
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	hub := feed.NewHub()
	tokens := auth.NewTokenService("test-secret")
	board := dashboard.NewBoard(store, silentNotifier{}, hub)

	server := NewServer(Options{
		Carts:         cart.NewSessions(),
		Catalog:       store,
		Submissions:   submission.NewService(store, store, hub),
		Board:         board,
		Dashboard:     dashboard.NewService(store),
		Tokens:        tokens,
		Profiles:      store,
		Hub:           hub,
		AdminUser:     "admin",
		AdminPassword: "hemligt",
	})
	return &testEnv{server: server, store: store, board: board}
}

// do runs one request, carrying over any cookies from earlier responses.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.server.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	item := cart.Item{ID: "meal-1", Name: "Pasta Carbonara", Price: 75, Quantity: 1, Kind: cart.KindMeal}
	w := env.do(t, http.MethodPost, "/api/v1/cart/items", item, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "first cart touch should mint a session cookie")

	// Same id again merges into one line.
	item.Quantity = 2
	w = env.do(t, http.MethodPost, "/api/v1/cart/items", item, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/cart", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	items := body["items"].([]any)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(225), body["totalPrice"])

	w = env.do(t, http.MethodDelete, "/api/v1/cart/items/meal-1", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])

	w = env.do(t, http.MethodDelete, "/api/v1/cart", nil, cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAddCartItemRejectsBadLines(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", cart.Item{Name: "namnlös", Price: 10, Quantity: 1}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/cart/items", cart.Item{ID: "x", Price: 10, Quantity: 0}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items",
		cart.Item{ID: "cake-1", Name: "Prinsesstårta", Price: 350, Quantity: 1, Kind: cart.KindCake}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A fresh session without the cookie sees an empty cart.
	w = env.do(t, http.MethodGet, "/api/v1/cart", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])
}

func TestSubmitInquiry(t *testing.T) {
	env := newTestEnv(t)

	form := submission.InquiryForm{
		Size:         models.SizeEightPieces,
		Flavor:       models.FlavorChocolate,
		Description:  "Tårta till födelsedag",
		CustomerName: "Anna",
		PhoneNumber:  "0701234567",
		DeliveryType: models.DeliveryPickup,
	}

	w := env.do(t, http.MethodPost, "/api/v1/inquiry", form, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.store.inquiries, 1)
	assert.Equal(t, models.StatusPending, env.store.inquiries[0].WorkflowStatus)
}

func TestSubmitInquiryValidation(t *testing.T) {
	env := newTestEnv(t)

	form := submission.InquiryForm{
		Description:  "Tårta",
		PhoneNumber:  "0701234567",
		DeliveryType: models.DeliveryPickup,
	}
	w := env.do(t, http.MethodPost, "/api/v1/inquiry", form, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "customerName", body["field"])
	assert.Empty(t, env.store.inquiries)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/checkout", submission.OrderForm{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "empty_cart", body["code"])
	assert.Equal(t, "/meals", body["redirect"])
}

func TestCheckoutHomeDelivery(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items",
		cart.Item{ID: "meal-2", Name: "Lax med potatis", Price: 85, Quantity: 2, Kind: cart.KindMeal}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	form := submission.OrderForm{
		CustomerName: "Johan",
		PhoneNumber:  "0707654321",
		Email:        "johan@example.com",
		DeliveryType: models.DeliveryHomeDelivery,
		Address:      "Storgatan 1, Göteborg",
	}
	w = env.do(t, http.MethodPost, "/api/v1/checkout", form, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(2*85+submission.HomeDeliveryFee), body["totalAmount"])
	assert.Equal(t, "/success", body["redirect"])

	// The cart is gone once the order landed.
	w = env.do(t, http.MethodGet, "/api/v1/cart", nil, cookies)
	assert.Empty(t, decode(t, w)["items"])

	require.Len(t, env.store.orders, 1)
	assert.Equal(t, models.PaymentOnSite, env.store.orders[0].PaymentStatus)
}

func TestCheckoutRejectsAddressOutsideServiceArea(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items",
		cart.Item{ID: "meal-2", Name: "Lax med potatis", Price: 85, Quantity: 1, Kind: cart.KindMeal}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	form := submission.OrderForm{
		CustomerName: "Johan",
		PhoneNumber:  "0707654321",
		Email:        "johan@example.com",
		DeliveryType: models.DeliveryHomeDelivery,
		Address:      "Drottninggatan 5, Stockholm",
	}
	w = env.do(t, http.MethodPost, "/api/v1/checkout", form, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "address", decode(t, w)["field"])

	// A failed checkout must not touch the cart.
	w = env.do(t, http.MethodGet, "/api/v1/cart", nil, cookies)
	assert.Len(t, decode(t, w)["items"], 1)
}

func (e *testEnv) login(t *testing.T) []*http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/admin/login", gin.H{"password": "hemligt"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/admin/login", gin.H{"password": "fel"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Fel lösenord", decode(t, w)["error"])
}

func TestDashboardRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/admin/dashboard", nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, auth.LoginPath, w.Header().Get("Location"))
}

func TestDashboardListsSubmissions(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.CreateInquiry(context.Background(), &models.CakeInquiry{
		CustomerName: "Anna", WorkflowStatus: models.StatusPending,
	}))

	cookies := env.login(t)
	w := env.do(t, http.MethodGet, "/admin/dashboard", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)
}

func TestUpdateStatusMovesItem(t *testing.T) {
	env := newTestEnv(t)
	inquiry := &models.CakeInquiry{CustomerName: "Anna", WorkflowStatus: models.StatusPending}
	require.NoError(t, env.store.CreateInquiry(context.Background(), inquiry))
	require.NoError(t, env.board.Refresh(context.Background()))

	cookies := env.login(t)
	w := env.do(t, http.MethodPut, "/admin/status",
		gin.H{"id": inquiry.ID, "kind": "inquiry", "status": int(models.StatusInProgress)}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Flyttad till Pågår", decode(t, w)["message"])
	assert.Equal(t, models.StatusInProgress, env.store.inquiries[0].WorkflowStatus)
}

func TestUpdateStatusUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.board.Refresh(context.Background()))

	cookies := env.login(t)
	w := env.do(t, http.MethodPut, "/admin/status",
		gin.H{"id": 99, "kind": "order", "status": int(models.StatusCompleted)}, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusPersistFailure(t *testing.T) {
	env := newTestEnv(t)
	inquiry := &models.CakeInquiry{CustomerName: "Anna", WorkflowStatus: models.StatusPending}
	require.NoError(t, env.store.CreateInquiry(context.Background(), inquiry))
	require.NoError(t, env.board.Refresh(context.Background()))
	env.store.failWrites = true

	cookies := env.login(t)
	w := env.do(t, http.MethodPut, "/admin/status",
		gin.H{"id": inquiry.ID, "kind": "inquiry", "status": int(models.StatusCompleted)}, cookies)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Kunde inte spara ändringen", decode(t, w)["error"])
	assert.Equal(t, models.StatusPending, env.store.inquiries[0].WorkflowStatus)
}

func TestDeleteItem(t *testing.T) {
	env := newTestEnv(t)
	inquiry := &models.CakeInquiry{CustomerName: "Anna", WorkflowStatus: models.StatusPending}
	require.NoError(t, env.store.CreateInquiry(context.Background(), inquiry))
	require.NoError(t, env.board.Refresh(context.Background()))

	cookies := env.login(t)
	w := env.do(t, http.MethodDelete, fmt.Sprintf("/admin/items/inquiry/%d", inquiry.ID), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.store.inquiries)
}

func TestItemDetail(t *testing.T) {
	env := newTestEnv(t)
	order := &models.Order{
		CustomerName:   "Johan",
		WorkflowStatus: models.StatusPending,
		TotalAmount:    370,
		PaymentStatus:  models.PaymentOnSite,
		Items: []models.OrderItem{
			{ProductName: "Lax med potatis", Quantity: 2, UnitPrice: 85},
		},
	}
	require.NoError(t, env.store.CreateOrder(context.Background(), order))

	cookies := env.login(t)
	w := env.do(t, http.MethodGet, fmt.Sprintf("/admin/items/order/%d", order.ID), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "order", body["kind"])

	w = env.do(t, http.MethodGet, "/admin/items/order/424242", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/admin/items/booking/1", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	w := env.do(t, http.MethodPost, "/admin/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Empty(t, cleared[0].Value)
}
