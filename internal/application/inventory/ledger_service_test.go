package inventory

import (
	"context"
	"testing"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_ListByLot(t *testing.T) {
	ctx := context.Background()

	t.Run("returns entries for an existing lot", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewLedgerService(lotRepo, ledgerRepo)

		lot := newSourceLot(t, 10)
		entry, err := inventory.NewLotTransaction(lot.ID, lot.ProductID, inventory.TransactionTypeInbound,
			decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10))
		require.NoError(t, err)

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		ledgerRepo.On("FindByLot", ctx, lot.ID, mock.MatchedBy(func(f inventory.TransactionFilter) bool {
			return f.OrderBy == "transaction_date"
		})).Return([]inventory.LotTransaction{*entry}, nil)
		ledgerRepo.On("CountByLot", ctx, lot.ID, mock.Anything).Return(int64(1), nil)

		page, err := service.ListByLot(ctx, lot.ID, LedgerListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "inbound", page.Items[0].TransactionType)
	})

	t.Run("count honors the same filter as the listing", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewLedgerService(lotRepo, ledgerRepo)

		lot := newSourceLot(t, 10)
		isOutbound := func(f inventory.TransactionFilter) bool {
			return f.TransactionType != nil && *f.TransactionType == inventory.TransactionTypeOutbound
		}

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		ledgerRepo.On("FindByLot", ctx, lot.ID, mock.MatchedBy(isOutbound)).
			Return([]inventory.LotTransaction{}, nil)
		ledgerRepo.On("CountByLot", ctx, lot.ID, mock.MatchedBy(isOutbound)).
			Return(int64(0), nil)

		page, err := service.ListByLot(ctx, lot.ID, LedgerListFilter{TransactionType: "outbound"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
	})

	t.Run("unknown lot yields not found", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewLedgerService(lotRepo, ledgerRepo)

		id := uuid.New()
		lotRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.ListByLot(ctx, id, LedgerListFilter{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		ledgerRepo.AssertNotCalled(t, "FindByLot", ctx, id, mock.Anything)
	})
}

func TestLedgerService_ListByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("maps type filter", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewLedgerService(lotRepo, ledgerRepo)

		productID := uuid.New()
		ledgerRepo.On("FindByProduct", ctx, productID, mock.MatchedBy(func(f inventory.TransactionFilter) bool {
			return f.TransactionType != nil && *f.TransactionType == inventory.TransactionTypeOutbound
		})).Return([]inventory.LotTransaction{}, nil)
		ledgerRepo.On("CountByProduct", ctx, productID, mock.Anything).Return(int64(0), nil)

		page, err := service.ListByProduct(ctx, productID, LedgerListFilter{TransactionType: "outbound"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Items)
	})
}
