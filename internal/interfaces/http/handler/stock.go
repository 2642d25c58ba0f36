package handler

import (
	inventoryapp "github.com/erurang/wooyangcrm-sub010/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles document-driven stock movements and manual
// stock corrections
type StockHandler struct {
	BaseHandler
	flowService *inventoryapp.DocumentFlowService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(flowService *inventoryapp.DocumentFlowService) *StockHandler {
	return &StockHandler{flowService: flowService}
}

// ReceiveInbound books an inbound document, creating one purchase LOT
// per line with matching ledger entries and product stock increases
func (h *StockHandler) ReceiveInbound(c *gin.Context) {
	var req inventoryapp.InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorRef(c)

	result, err := h.flowService.ReceiveInbound(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// DeductOutbound removes quantity from a product FIFO across its LOTs.
// The deduction is atomic: insufficient coverage rejects the whole request.
func (h *StockHandler) DeductOutbound(c *gin.Context) {
	var req inventoryapp.OutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorRef(c)

	result, err := h.flowService.DeductOutbound(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AdjustStock sets a product's cached stock to a counted quantity
func (h *StockHandler) AdjustStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorRef(c)

	result, err := h.flowService.AdjustStock(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
