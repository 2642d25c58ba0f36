package suggestion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Urgency tiers, most urgent first
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// SuggestionFilter narrows the analysis
type SuggestionFilter struct {
	ProductType string `form:"product_type" binding:"omitempty,oneof=raw_material purchased finished"`
	Urgency     string `form:"urgency" binding:"omitempty,oneof=critical high medium low"`
	TargetDays  int    `form:"target_days" binding:"omitempty,min=1,max=365"`
}

// Suggestion is one product's reorder advice
type Suggestion struct {
	ProductID           uuid.UUID        `json:"product_id"`
	ProductCode         string           `json:"product_code"`
	ProductName         string           `json:"product_name"`
	Unit                string           `json:"unit"`
	CurrentStock        decimal.Decimal  `json:"current_stock"`
	MinStockAlert       *decimal.Decimal `json:"min_stock_alert,omitempty"`
	AvgDailyConsumption decimal.Decimal  `json:"avg_daily_consumption"`
	DaysUntilStockout   *decimal.Decimal `json:"days_until_stockout,omitempty"`
	SuggestedOrderQty   decimal.Decimal  `json:"suggested_order_qty"`
	Urgency             string           `json:"urgency"`
	LastInboundAt       *time.Time       `json:"last_inbound_at,omitempty"`
}

// Summary counts suggestions per urgency tier
type Summary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// ListResponse is the full analysis result
type ListResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Summary     Summary      `json:"summary"`
	WindowDays  int          `json:"window_days"`
	TargetDays  int          `json:"target_days"`
	GeneratedAt time.Time    `json:"generated_at"`
}
