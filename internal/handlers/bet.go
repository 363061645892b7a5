package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shot-ledger/internal/models"
	"shot-ledger/internal/services"
)

// BetHandler handles bet-related endpoints
type BetHandler struct {
	betService *services.BetService
}

// NewBetHandler creates a new BetHandler
func NewBetHandler(betService *services.BetService) *BetHandler {
	return &BetHandler{betService: betService}
}

// CreateBet records a new bet between two users
// POST /bets
func (h *BetHandler) CreateBet(c *gin.Context) {
	var req models.CreateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := h.betService.CreateBet(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bettor or Bettee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bet"})
		return
	}

	c.JSON(http.StatusCreated, bet)
}

// GetBet retrieves a bet by id
// GET /bets/:id
func (h *BetHandler) GetBet(c *gin.Context) {
	betID, ok := parseID(c, "bet")
	if !ok {
		return
	}

	bet, err := h.betService.GetBetByID(c.Request.Context(), betID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bet not found"})
		return
	}

	c.JSON(http.StatusOK, bet)
}

// ListBets retrieves a page of bets
// GET /bets?skip=0&limit=100
func (h *BetHandler) ListBets(c *gin.Context) {
	skip, limit := parsePagination(c)

	bets, err := h.betService.GetBets(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bets"})
		return
	}

	c.JSON(http.StatusOK, bets)
}

// UpdateBet applies a partial update, including setting the outcome to
// resolve the bet
// PUT /bets/:id
func (h *BetHandler) UpdateBet(c *gin.Context) {
	betID, ok := parseID(c, "bet")
	if !ok {
		return
	}

	var req models.UpdateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := h.betService.UpdateBet(c.Request.Context(), betID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bet not found"})
		case errors.Is(err, services.ErrParticipantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bettor or Bettee not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bet"})
		}
		return
	}

	c.JSON(http.StatusOK, bet)
}

// DeleteBet removes a bet
// DELETE /bets/:id
func (h *BetHandler) DeleteBet(c *gin.Context) {
	betID, ok := parseID(c, "bet")
	if !ok {
		return
	}

	if err := h.betService.DeleteBet(c.Request.Context(), betID); err != nil {
		if errors.Is(err, services.ErrBetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bet deleted successfully"})
}
