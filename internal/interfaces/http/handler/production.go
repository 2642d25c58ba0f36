package handler

import (
	productionapp "github.com/erurang/wooyangcrm-sub010/internal/application/production"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductionHandler handles production record and consumption API endpoints
type ProductionHandler struct {
	BaseHandler
	consumptionService *productionapp.ConsumptionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(consumptionService *productionapp.ConsumptionService) *ProductionHandler {
	return &ProductionHandler{consumptionService: consumptionService}
}

// CreateRecord registers a production run with its material consumptions
func (h *ProductionHandler) CreateRecord(c *gin.Context) {
	var req productionapp.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorRef(c)

	record, err := h.consumptionService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// GetRecord returns one production record with its consumptions
func (h *ProductionHandler) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	record, err := h.consumptionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// ListRecords returns production records matching the filter
func (h *ProductionHandler) ListRecords(c *gin.Context) {
	var filter productionapp.RecordListFilter
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

	result, err := h.consumptionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Consume draws additional material against an existing record
func (h *ProductionHandler) Consume(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	var req productionapp.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Actor = actorRef(c)

	consumption, err := h.consumptionService.Consume(c.Request.Context(), recordID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, consumption)
}

// ListConsumptions returns the consumptions of one record
func (h *ProductionHandler) ListConsumptions(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	consumptions, err := h.consumptionService.GetByRecord(c.Request.Context(), recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, consumptions)
}

// CancelRecord reverses a production run: consumed materials return to
// stock and the record becomes canceled
func (h *ProductionHandler) CancelRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	var req productionapp.CancelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Actor = actorRef(c)

	record, err := h.consumptionService.CancelRecord(c.Request.Context(), recordID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}
