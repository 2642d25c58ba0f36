package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"code":            true,
	"name":            true,
	"unit":            true,
	"type":            true,
	"current_stock":   true,
	"min_stock_alert": true,
	"unit_price":      true,
	"is_active":       true,
}

// LotSortFields contains allowed sort fields for inventory lots
var LotSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"lot_number":       true,
	"product_id":       true,
	"status":           true,
	"source_type":      true,
	"supplier":         true,
	"location":         true,
	"initial_quantity": true,
	"current_quantity": true,
	"unit_cost":        true,
	"received_at":      true,
	"expiry_date":      true,
}

// TransactionSortFields contains allowed sort fields for lot transactions
var TransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"lot_id":           true,
	"product_id":       true,
	"transaction_type": true,
	"quantity":         true,
	"transaction_date": true,
	"reference":        true,
}

// RecordSortFields contains allowed sort fields for production records
var RecordSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"product_id":        true,
	"status":            true,
	"quantity_produced": true,
	"production_date":   true,
}

// TaskSortFields contains allowed sort fields for inventory tasks
var TaskSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"source":          true,
	"task_type":       true,
	"status":          true,
	"document_number": true,
	"expected_date":   true,
	"assigned_at":     true,
	"completed_at":    true,
}
