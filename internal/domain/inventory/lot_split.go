package inventory

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotSplit is the immutable record of one split event.
// It links the retired source LOT to the two children: the output (used
// portion) and the remnant (leftover). Created atomically with the children
// and the source status update; never modified afterwards.
type LotSplit struct {
	shared.BaseEntity
	SourceLotID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OutputLotID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	RemnantLotID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SplitQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason        string          `gorm:"type:varchar(100);not null"`
	Notes         string          `gorm:"type:text"`
	SplitBy       *uuid.UUID      `gorm:"type:uuid"`
	SplitAt       time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (LotSplit) TableName() string {
	return "lot_splits"
}

// NewLotSplit creates a split record linking source, output and remnant
func NewLotSplit(sourceLotID, outputLotID, remnantLotID uuid.UUID, splitQuantity decimal.Decimal, reason string) (*LotSplit, error) {
	if sourceLotID == uuid.Nil || outputLotID == uuid.Nil || remnantLotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOT", "Split record requires source, output and remnant lots")
	}
	if splitQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_SPLIT_QUANTITY", "Split quantity must be positive")
	}
	if reason == "" {
		reason = "order"
	}

	return &LotSplit{
		BaseEntity:    shared.NewBaseEntity(),
		SourceLotID:   sourceLotID,
		OutputLotID:   outputLotID,
		RemnantLotID:  remnantLotID,
		SplitQuantity: splitQuantity,
		Reason:        reason,
		SplitAt:       time.Now(),
	}, nil
}

// WithNotes records free-text notes on the split
func (s *LotSplit) WithNotes(notes string) *LotSplit {
	s.Notes = notes
	return s
}

// WithSplitBy records the user who performed the split
func (s *LotSplit) WithSplitBy(userID uuid.UUID) *LotSplit {
	s.SplitBy = &userID
	return s
}

// Involves returns true if the given LOT participates in this split
func (s *LotSplit) Involves(lotID uuid.UUID) bool {
	return s.SourceLotID == lotID || s.OutputLotID == lotID || s.RemnantLotID == lotID
}
