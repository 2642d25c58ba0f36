package suggestion

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultWindowDays is the trailing consumption window
	DefaultWindowDays = 90
	// DefaultTargetDays is the coverage the suggested order should reach
	DefaultTargetDays = 30
	// DefaultCacheTTL bounds how stale a cached analysis may get
	DefaultCacheTTL = 5 * time.Minute
)

// minStockTopUpFactor sizes the reorder floor for products below their
// minimum: restock to 1.5x the minimum.
var minStockTopUpFactor = decimal.NewFromFloat(1.5)

// Cache stores computed analyses keyed by filter. Implementations may be
// absent or unavailable; the service treats any miss or error as a signal
// to recompute.
type Cache interface {
	// Get returns a cached analysis, or false when absent
	Get(ctx context.Context, key string) (*ListResponse, bool)
	// Set stores an analysis under the key for the TTL
	Set(ctx context.Context, key string, value *ListResponse, ttl time.Duration)
}

// SuggestionService derives reorder advice from the transaction ledger.
// Consumption rate comes from the trailing window of product-level outbound
// entries; lot-level mirror rows and split bookkeeping never count.
type SuggestionService struct {
	productRepo catalog.ProductRepository
	ledgerRepo  inventory.LotTransactionRepository
	cache       Cache
	logger      *zap.Logger
	windowDays  int
	targetDays  int
	cacheTTL    time.Duration
	now         func() time.Time
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(
	productRepo catalog.ProductRepository,
	ledgerRepo inventory.LotTransactionRepository,
	logger *zap.Logger,
) *SuggestionService {
	return &SuggestionService{
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
		windowDays:  DefaultWindowDays,
		targetDays:  DefaultTargetDays,
		cacheTTL:    DefaultCacheTTL,
		now:         time.Now,
	}
}

// SetCache wires the optional result cache
func (s *SuggestionService) SetCache(cache Cache) {
	s.cache = cache
}

// Configure overrides the trailing window, the default coverage target and
// the cache TTL. Non-positive values keep the defaults.
func (s *SuggestionService) Configure(windowDays, targetDays int, cacheTTL time.Duration) {
	if windowDays > 0 {
		s.windowDays = windowDays
	}
	if targetDays > 0 {
		s.targetDays = targetDays
	}
	if cacheTTL > 0 {
		s.cacheTTL = cacheTTL
	}
}

// List computes reorder suggestions for all active products matching the
// filter, most urgent first
func (s *SuggestionService) List(ctx context.Context, filter SuggestionFilter) (*ListResponse, error) {
	targetDays := filter.TargetDays
	if targetDays <= 0 {
		targetDays = s.targetDays
	}

	cacheKey := fmt.Sprintf("suggestions:%s:%d", filter.ProductType, targetDays)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			return filterByUrgency(cached, filter.Urgency), nil
		}
	}

	var productType *catalog.ProductType
	if filter.ProductType != "" {
		pt := catalog.ProductType(filter.ProductType)
		productType = &pt
	}

	products, err := s.productRepo.FindActive(ctx, productType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	since := now.AddDate(0, 0, -s.windowDays)
	movement, err := s.ledgerRepo.SummarizeMovementSince(ctx, since)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{
		Suggestions: make([]Suggestion, 0, len(products)),
		WindowDays:  s.windowDays,
		TargetDays:  targetDays,
		GeneratedAt: now,
	}
	for i := range products {
		item := s.analyze(&products[i], movement[products[i].ID], targetDays)
		resp.Suggestions = append(resp.Suggestions, item)
		switch item.Urgency {
		case UrgencyCritical:
			resp.Summary.Critical++
		case UrgencyHigh:
			resp.Summary.High++
		case UrgencyMedium:
			resp.Summary.Medium++
		default:
			resp.Summary.Low++
		}
	}
	resp.Summary.Total = len(resp.Suggestions)

	sortSuggestions(resp.Suggestions)

	if s.logger != nil {
		s.logger.Debug("computed order suggestions",
			zap.Int("products", resp.Summary.Total),
			zap.Int("critical", resp.Summary.Critical))
	}
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, resp, s.cacheTTL)
	}
	return filterByUrgency(resp, filter.Urgency), nil
}

// filterByUrgency narrows the listed suggestions to one tier. The full
// analysis is what gets cached; the summary keeps counting every tier.
func filterByUrgency(resp *ListResponse, urgency string) *ListResponse {
	if urgency == "" {
		return resp
	}
	narrowed := *resp
	narrowed.Suggestions = make([]Suggestion, 0, len(resp.Suggestions))
	for _, item := range resp.Suggestions {
		if item.Urgency == urgency {
			narrowed.Suggestions = append(narrowed.Suggestions, item)
		}
	}
	return &narrowed
}

// analyze scores one product
func (s *SuggestionService) analyze(product *catalog.Product, movement inventory.ProductMovementSummary, targetDays int) Suggestion {
	stock := product.CurrentStock
	avg := movement.OutboundTotal.Div(decimal.NewFromInt(int64(s.windowDays)))

	item := Suggestion{
		ProductID:           product.ID,
		ProductCode:         product.Code,
		ProductName:         product.Name,
		Unit:                product.Unit,
		CurrentStock:        stock,
		MinStockAlert:       product.MinStockAlert,
		AvgDailyConsumption: avg,
		LastInboundAt:       movement.LastInboundAt,
	}

	var daysUntil *decimal.Decimal
	if avg.IsPositive() {
		d := stock.Div(avg)
		daysUntil = &d
	}
	item.DaysUntilStockout = daysUntil

	item.Urgency = classify(product, stock, daysUntil)

	suggested := decimal.NewFromInt(int64(targetDays)).Mul(avg).Sub(stock)
	if product.IsBelowMinimum() {
		topUp := minStockTopUpFactor.Mul(*product.MinStockAlert).Sub(stock)
		if topUp.GreaterThan(suggested) {
			suggested = topUp
		}
	}
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}
	item.SuggestedOrderQty = suggested.Ceil()

	return item
}

// classify assigns the urgency tier. Stockout distance dominates; the
// minimum-stock threshold pulls products up even when consumption is slow.
func classify(product *catalog.Product, stock decimal.Decimal, daysUntil *decimal.Decimal) string {
	if stock.IsZero() || product.IsBelowMinimum() {
		return UrgencyCritical
	}
	if daysUntil != nil {
		switch {
		case daysUntil.LessThanOrEqual(decimal.NewFromInt(7)):
			return UrgencyCritical
		case daysUntil.LessThanOrEqual(decimal.NewFromInt(14)):
			return UrgencyHigh
		case daysUntil.LessThanOrEqual(decimal.NewFromInt(30)):
			return UrgencyMedium
		}
	}
	if product.MinStockAlert != nil && stock.LessThan(minStockTopUpFactor.Mul(*product.MinStockAlert)) {
		return UrgencyMedium
	}
	return UrgencyLow
}

var urgencyRank = map[string]int{
	UrgencyCritical: 0,
	UrgencyHigh:     1,
	UrgencyMedium:   2,
	UrgencyLow:      3,
}

// sortSuggestions orders most urgent first, then soonest stockout;
// products with no projected stockout sort last within their tier
func sortSuggestions(items []Suggestion) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := urgencyRank[items[i].Urgency], urgencyRank[items[j].Urgency]
		if ri != rj {
			return ri < rj
		}
		di, dj := items[i].DaysUntilStockout, items[j].DaysUntilStockout
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.LessThan(*dj)
		}
	})
}
