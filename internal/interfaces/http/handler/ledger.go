package handler

import (
	inventoryapp "github.com/erurang/wooyangcrm-sub010/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler serves the append-only stock movement ledger
type LedgerHandler struct {
	BaseHandler
	ledgerService *inventoryapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *inventoryapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// ListByLot lists ledger entries for one LOT, newest first
func (h *LedgerHandler) ListByLot(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid LOT ID format")
		return
	}

	filter, ok := h.bindLedgerFilter(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.ListByLot(c.Request.Context(), lotID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// ListByProduct lists ledger entries for one product across all its LOTs
func (h *LedgerHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	filter, ok := h.bindLedgerFilter(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

func (h *LedgerHandler) bindLedgerFilter(c *gin.Context) (inventoryapp.LedgerListFilter, bool) {
	var filter inventoryapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return filter, false
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter, true
}
