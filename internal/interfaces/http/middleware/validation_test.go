package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationProbe struct {
	LotNumber string  `json:"lot_number" binding:"required,min=3,max=40"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	Status    string  `json:"status" binding:"omitempty,oneof=available reserved"`
}

func newValidationEngine() *gin.Engine {
	SetupValidator()
	engine := gin.New()
	engine.Use(RequestID())
	engine.POST("/probe", func(c *gin.Context) {
		var req validationProbe
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func TestHandleValidationError_RequiredField(t *testing.T) {
	engine := newValidationEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(`{"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ERR_VALIDATION")
	// Field names come from JSON tags, not Go field names
	assert.Contains(t, body, "lot_number")
	assert.Contains(t, body, "This field is required")
}

func TestHandleValidationError_OneOf(t *testing.T) {
	engine := newValidationEngine()

	payload := `{"lot_number":"LOT-1","quantity":2,"status":"bogus"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Must be one of: available reserved")
}

func TestHandleValidationError_ValidPayload(t *testing.T) {
	engine := newValidationEngine()

	payload := `{"lot_number":"LOT-20260115-000001","quantity":5,"status":"available"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
