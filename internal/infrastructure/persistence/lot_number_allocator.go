package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"gorm.io/gorm"
)

// SequenceLotNumberAllocator hands out lot numbers backed by a database
// sequence. nextval is atomic, so concurrent receipts never collide; gaps
// from rolled-back transactions are acceptable.
type SequenceLotNumberAllocator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSequenceLotNumberAllocator creates a new SequenceLotNumberAllocator
func NewSequenceLotNumberAllocator(db *gorm.DB) *SequenceLotNumberAllocator {
	return &SequenceLotNumberAllocator{db: db, now: time.Now}
}

// Next returns a new unique lot number of the form LOT-YYYYMMDD-NNNNNN
func (a *SequenceLotNumberAllocator) Next(ctx context.Context) (string, error) {
	var seq int64
	if err := a.db.WithContext(ctx).
		Raw("SELECT nextval('lot_number_seq')").
		Scan(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to allocate lot number: %w", err)
	}
	return fmt.Sprintf("LOT-%s-%06d", a.now().Format("20060102"), seq), nil
}

// Ensure SequenceLotNumberAllocator implements LotNumberAllocator
var _ inventory.LotNumberAllocator = (*SequenceLotNumberAllocator)(nil)
