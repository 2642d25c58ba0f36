package handler

import (
	inventoryapp "github.com/erurang/wooyangcrm-sub010/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LotHandler handles LOT lifecycle API endpoints
type LotHandler struct {
	BaseHandler
	lotService *inventoryapp.LotService
}

// NewLotHandler creates a new LotHandler
func NewLotHandler(lotService *inventoryapp.LotService) *LotHandler {
	return &LotHandler{lotService: lotService}
}

// Create receives a new LOT into inventory
func (h *LotHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorRef(c)

	lot, err := h.lotService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lot)
}

// GetByID returns one LOT
func (h *LotHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid LOT ID format")
		return
	}

	lot, err := h.lotService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lot)
}

// GetByNumber returns one LOT looked up by its LOT number
func (h *LotHandler) GetByNumber(c *gin.Context) {
	lotNumber := c.Param("lot_number")
	if lotNumber == "" {
		h.BadRequest(c, "LOT number is required")
		return
	}

	lot, err := h.lotService.GetByNumber(c.Request.Context(), lotNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lot)
}

// List returns LOTs matching the filter
func (h *LotHandler) List(c *gin.Context) {
	var filter inventoryapp.LotListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	result, err := h.lotService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}
