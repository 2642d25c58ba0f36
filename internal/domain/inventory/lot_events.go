package inventory

import (
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the inventory domain
const (
	EventTypeLotCreated  = "inventory.lot.created"
	EventTypeLotSplit    = "inventory.lot.split"
	EventTypeLotDepleted = "inventory.lot.depleted"
)

// LotCreatedEvent is emitted when a new LOT enters inventory
type LotCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID       `json:"product_id"`
	LotNumber       string          `json:"lot_number"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	SourceType      LotSourceType   `json:"source_type"`
}

// NewLotCreatedEvent creates a LotCreatedEvent
func NewLotCreatedEvent(lot *Lot) *LotCreatedEvent {
	return &LotCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotCreated, "Lot", lot.ID),
		ProductID:       lot.ProductID,
		LotNumber:       lot.LotNumber,
		InitialQuantity: lot.InitialQuantity,
		SourceType:      lot.SourceType,
	}
}

// LotSplitEvent is emitted when a LOT is divided into output and remnant
type LotSplitEvent struct {
	shared.BaseDomainEvent
	SourceLotID   uuid.UUID       `json:"source_lot_id"`
	OutputLotID   uuid.UUID       `json:"output_lot_id"`
	RemnantLotID  uuid.UUID       `json:"remnant_lot_id"`
	SplitQuantity decimal.Decimal `json:"split_quantity"`
}

// NewLotSplitEvent creates a LotSplitEvent
func NewLotSplitEvent(split *LotSplit) *LotSplitEvent {
	return &LotSplitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotSplit, "Lot", split.SourceLotID),
		SourceLotID:     split.SourceLotID,
		OutputLotID:     split.OutputLotID,
		RemnantLotID:    split.RemnantLotID,
		SplitQuantity:   split.SplitQuantity,
	}
}

// LotDepletedEvent is emitted when a LOT's remaining quantity reaches zero
type LotDepletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	LotNumber string    `json:"lot_number"`
}

// NewLotDepletedEvent creates a LotDepletedEvent
func NewLotDepletedEvent(lot *Lot) *LotDepletedEvent {
	return &LotDepletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotDepleted, "Lot", lot.ID),
		ProductID:       lot.ProductID,
		LotNumber:       lot.LotNumber,
	}
}
