package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shot-ledger/internal/models"
	"shot-ledger/internal/services"
)

// UserHandler handles user-related endpoints
type UserHandler struct {
	userService *services.UserService
	dataService *services.DataService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, dataService *services.DataService) *UserHandler {
	return &UserHandler{
		userService: userService,
		dataService: dataService,
	}
}

// CreateUser registers a user
// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailRegistered) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser retrieves a user by id
// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers retrieves a page of users
// GET /users?skip=0&limit=100
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, limit := parsePagination(c)

	users, err := h.userService.GetUsers(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser updates a user's name and email
// PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user
// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetShotBalances nets the user's shots per counterparty
// GET /users/:id/shot-balances
func (h *UserHandler) GetShotBalances(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	balance, err := h.dataService.GetUserShotBalances(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": balance,
		"user":    user,
	})
}

// GetBetsOwed lists bets where the user is the bettor
// GET /users/:id/bets-owed
func (h *UserHandler) GetBetsOwed(c *gin.Context) {
	h.listUserBets(c, h.userService.GetUserBetsOwed)
}

// GetBetsOwned lists bets where the user is the bettee
// GET /users/:id/bets-owned
func (h *UserHandler) GetBetsOwned(c *gin.Context) {
	h.listUserBets(c, h.userService.GetUserBetsOwned)
}

// GetBetSummary lists both sides of a user's bets with counterparty names
// GET /users/:id/bet-summary
func (h *UserHandler) GetBetSummary(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	summary, err := h.userService.GetUserBetSummary(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build bet summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetRelatedUsers lists users sharing at least one bet with the user
// GET /users/:id/related-users
func (h *UserHandler) GetRelatedUsers(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	related, err := h.userService.GetRelatedUsers(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve related users"})
		return
	}

	c.JSON(http.StatusOK, related)
}

func (h *UserHandler) listUserBets(c *gin.Context, fetch func(ctx context.Context, userID uint) ([]models.Bet, error)) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	if _, err := h.userService.GetUserByID(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	bets, err := fetch(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bets"})
		return
	}

	c.JSON(http.StatusOK, bets)
}

// parseID parses the :id path parameter
func parseID(c *gin.Context, kind string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + kind + " id"})
		return 0, false
	}
	return uint(id), true
}

// parsePagination parses skip/limit query parameters with the API defaults
func parsePagination(c *gin.Context) (int, int) {
	skip := 0
	limit := 100

	if skipStr := c.Query("skip"); skipStr != "" {
		if s, err := strconv.Atoi(skipStr); err == nil && s >= 0 {
			skip = s
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	return skip, limit
}
