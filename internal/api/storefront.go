package api

import (
	"errors"
	"net/http"

	"cafe45/internal/cart"
	"cafe45/internal/submission"

	"github.com/gin-gonic/gin"
)

// cartCookie identifies the browser session owning a cart.
const cartCookie = "cart_session"

const cartCookieMaxAge = 30 * 24 * 60 * 60 // seconds

// sessionCart resolves the caller's cart, minting a session token on first
// contact.
func (s *Server) sessionCart(c *gin.Context) *cart.Cart {
	token, _ := c.Cookie(cartCookie)
	crt, newToken := s.carts.Get(token)
	if newToken != token {
		c.SetCookie(cartCookie, newToken, cartCookieMaxAge, "/", "", false, true)
	}
	return crt
}

// ListCakes returns the premade cake catalog.
func (s *Server) ListCakes(c *gin.Context) {
	cakes, err := s.catalog.ListStandardCakes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte hämta tårtor"})
		return
	}
	c.JSON(http.StatusOK, cakes)
}

// ListMeals returns the meal-box catalog.
func (s *Server) ListMeals(c *gin.Context) {
	meals, err := s.catalog.ListMeals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte hämta matlådor"})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GetCart returns the session's cart lines and the derived total.
func (s *Server) GetCart(c *gin.Context) {
	crt := s.sessionCart(c)
	c.JSON(http.StatusOK, gin.H{
		"items":      crt.Items(),
		"totalPrice": crt.TotalPrice(),
	})
}

// AddCartItem adds one line, merging into an existing line with the same id.
func (s *Server) AddCartItem(c *gin.Context) {
	var item cart.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.ID == "" || item.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and a quantity of at least 1 are required"})
		return
	}

	crt := s.sessionCart(c)
	crt.AddItem(item)
	c.JSON(http.StatusOK, gin.H{
		"items":      crt.Items(),
		"totalPrice": crt.TotalPrice(),
	})
}

// RemoveCartItem drops a whole line. Unknown ids are fine.
func (s *Server) RemoveCartItem(c *gin.Context) {
	crt := s.sessionCart(c)
	crt.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"items":      crt.Items(),
		"totalPrice": crt.TotalPrice(),
	})
}

// ClearCart empties the session's cart.
func (s *Server) ClearCart(c *gin.Context) {
	s.sessionCart(c).Clear()
	c.Status(http.StatusNoContent)
}

// SubmitInquiry persists a custom-cake request.
func (s *Server) SubmitInquiry(c *gin.Context) {
	var form submission.InquiryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := s.submissions.SubmitInquiry(c.Request.Context(), form)
	if err != nil {
		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Något gick fel. Försök igen."})
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}

// Checkout turns the session's cart into an order.
func (s *Server) Checkout(c *gin.Context) {
	var form submission.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crt := s.sessionCart(c)
	order, err := s.submissions.SubmitOrder(c.Request.Context(), crt, form)
	if err != nil {
		switch {
		case errors.Is(err, submission.ErrEmptyCart):
			// Not a form error: the customer is sent back to the catalog.
			c.JSON(http.StatusBadRequest, gin.H{"error": "Din kundkorg är tom.", "code": "empty_cart", "redirect": "/meals"})
		default:
			var verr *submission.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte lägga beställningen. Försök igen."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":     order.ID,
		"totalAmount": order.TotalAmount,
		"redirect":    "/success",
	})
}
