package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shot-ledger/internal/services"
)

// DataHandler serves the derived views over the full ledger
type DataHandler struct {
	dataService *services.DataService
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(dataService *services.DataService) *DataHandler {
	return &DataHandler{dataService: dataService}
}

// GetRelationshipGraph returns nodes, edges and the leaderboard
// GET /data/graph
func (h *DataHandler) GetRelationshipGraph(c *gin.Context) {
	graph, err := h.dataService.GetRelationshipGraph(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build relationship graph"})
		return
	}

	c.JSON(http.StatusOK, graph)
}

// GetEventLog returns the bet timeline, newest first
// GET /data/events
func (h *DataHandler) GetEventLog(c *gin.Context) {
	eventLog, err := h.dataService.GetEventLog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build event log"})
		return
	}

	c.JSON(http.StatusOK, eventLog)
}
