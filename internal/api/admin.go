package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cafe45/internal/auth"
	"cafe45/internal/dashboard"
	"cafe45/internal/models"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Password string `json:"password"`
}

// Login checks the staff password and sets the session cookie. The gate
// lets this route through regardless of session state.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Password != s.adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Fel lösenord"})
		return
	}

	token, err := s.tokens.Issue(s.adminUser)
	if err != nil {
		log.Printf("api: issue session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Något gick fel. Försök igen."})
		return
	}

	c.SetCookie(auth.SessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "redirect": "/admin"})
}

// Logout deletes the session cookie.
func (s *Server) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "redirect": auth.LoginPath})
}

// GetDashboard returns every inquiry and order projected into the unified
// item shape, built fresh on each call.
func (s *Server) GetDashboard(c *gin.Context) {
	items, err := s.dashboard.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte hämta data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItemDetail returns one item for the read-only detail panel.
func (s *Server) GetItemDetail(c *gin.Context) {
	id, kind, ok := itemRef(c)
	if !ok {
		return
	}

	item, err := s.dashboard.Detail(c.Request.Context(), id, kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte hämta data"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hittades inte"})
		return
	}
	c.JSON(http.StatusOK, item)
}

type statusRequest struct {
	ID     uint   `json:"id"`
	Kind   string `json:"kind"`
	Status int    `json:"status"`
}

// UpdateStatus moves a card to another board column.
func (s *Server) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := dashboard.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target := models.WorkflowStatus(req.Status)
	if !target.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 1, 2 or 3"})
		return
	}

	if err := s.board.MoveItem(c.Request.Context(), req.ID, kind, target); err != nil {
		if errors.Is(err, dashboard.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hittades inte"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte spara ändringen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Flyttad till " + target.ColumnName()})
}

// DeleteItem removes a card and the record behind it.
func (s *Server) DeleteItem(c *gin.Context) {
	id, kind, ok := itemRef(c)
	if !ok {
		return
	}

	if err := s.board.Remove(c.Request.Context(), id, kind); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunde inte ta bort"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Borttagen"})
}

// itemRef parses the (kind, id) pair shared by the detail and delete routes.
// On failure it writes the 400 itself and returns ok=false.
func itemRef(c *gin.Context) (uint, dashboard.Kind, bool) {
	kind, err := dashboard.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, "", false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, "", false
	}
	return uint(id), kind, true
}
