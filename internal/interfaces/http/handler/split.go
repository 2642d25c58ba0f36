package handler

import (
	inventoryapp "github.com/erurang/wooyangcrm-sub010/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SplitHandler handles LOT split and lineage API endpoints
type SplitHandler struct {
	BaseHandler
	splitService *inventoryapp.SplitService
}

// NewSplitHandler creates a new SplitHandler
func NewSplitHandler(splitService *inventoryapp.SplitService) *SplitHandler {
	return &SplitHandler{splitService: splitService}
}

// Split splits a LOT into an output LOT and a remnant LOT
func (h *SplitHandler) Split(c *gin.Context) {
	sourceLotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid LOT ID format")
		return
	}

	var req inventoryapp.SplitLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.SplitBy = actorRef(c)

	result, err := h.splitService.Split(c.Request.Context(), sourceLotID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// History lists the split events directly touching one LOT
func (h *SplitHandler) History(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid LOT ID format")
		return
	}

	history, err := h.splitService.History(c.Request.Context(), lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// Provenance traces a LOT back through its split ancestry to the root
func (h *SplitHandler) Provenance(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid LOT ID format")
		return
	}

	provenance, err := h.splitService.Provenance(c.Request.Context(), lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, provenance)
}
