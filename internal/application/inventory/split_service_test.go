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

func newSourceLot(t *testing.T, qty int64) *inventory.Lot {
	t.Helper()
	lot, err := inventory.NewLot(uuid.New(), "LOT-20260115-000001", decimal.NewFromInt(qty), inventory.LotSourcePurchase)
	require.NoError(t, err)
	lot.WithSupplier("Hanil Textile").WithLocation("A-03").WithUnitCost(decimal.NewFromFloat(12.5))
	return lot
}

func TestSplitService_Split(t *testing.T) {
	ctx := context.Background()

	setup := func() (*SplitService, *MockLotRepository, *MockLotSplitRepository, *MockLedgerRepository, *MockLotNumberAllocator) {
		lotRepo := new(MockLotRepository)
		splitRepo := new(MockLotSplitRepository)
		ledgerRepo := new(MockLedgerRepository)
		productRepo := new(MockProductRepository)
		allocator := new(MockLotNumberAllocator)
		service := NewSplitService(newTestScope(lotRepo, splitRepo, ledgerRepo, productRepo), lotRepo, splitRepo, allocator)
		return service, lotRepo, splitRepo, ledgerRepo, allocator
	}

	t.Run("splits lot into output and remnant", func(t *testing.T) {
		service, lotRepo, splitRepo, ledgerRepo, allocator := setup()
		source := newSourceLot(t, 10)

		allocator.On("Next", ctx).Return("LOT-20260115-000002", nil).Once()
		allocator.On("Next", ctx).Return("LOT-20260115-000003", nil).Once()
		lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)

		var children []*inventory.Lot
		lotRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Lot")).Run(func(args mock.Arguments) {
			children = append(children, args.Get(1).(*inventory.Lot))
		}).Return(nil)
		lotRepo.On("SaveWithLock", ctx, source).Return(nil)
		splitRepo.On("Create", ctx, mock.AnythingOfType("*inventory.LotSplit")).Return(nil)
		ledgerRepo.On("CreateBatch", ctx, mock.MatchedBy(func(entries []*inventory.LotTransaction) bool {
			if len(entries) != 3 {
				return false
			}
			return entries[0].TransactionType == inventory.TransactionTypeOutbound &&
				entries[1].TransactionType == inventory.TransactionTypeInbound &&
				entries[2].TransactionType == inventory.TransactionTypeInbound
		})).Return(nil)

		result, err := service.Split(ctx, source.ID, SplitLotRequest{Quantity: decimal.NewFromInt(6), Reason: "order"})
		require.NoError(t, err)

		assert.Equal(t, "split", result.Source.Status)
		assert.True(t, result.Source.CurrentQuantity.IsZero())
		assert.True(t, result.Output.CurrentQuantity.Equal(decimal.NewFromInt(6)))
		assert.True(t, result.Remnant.CurrentQuantity.Equal(decimal.NewFromInt(4)))
		assert.Equal(t, "split", result.Output.SourceType)
		assert.Equal(t, "split", result.Remnant.SourceType)
		require.NotNil(t, result.Output.SourceLotID)
		assert.Equal(t, source.ID, *result.Output.SourceLotID)

		// children inherit cost, supplier and location
		require.Len(t, children, 2)
		for _, child := range children {
			assert.Equal(t, "Hanil Textile", child.Supplier)
			assert.Equal(t, "A-03", child.Location)
			require.NotNil(t, child.UnitCost)
			assert.True(t, child.UnitCost.Equal(decimal.NewFromFloat(12.5)))
		}

		splitRepo.AssertExpectations(t)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown lot before allocating numbers", func(t *testing.T) {
		service, lotRepo, _, _, allocator := setup()
		id := uuid.New()
		lotRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Split(ctx, id, SplitLotRequest{Quantity: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		allocator.AssertNotCalled(t, "Next", ctx)
	})

	t.Run("rejects quantity equal to current", func(t *testing.T) {
		service, lotRepo, _, _, allocator := setup()
		source := newSourceLot(t, 10)
		lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)

		_, err := service.Split(ctx, source.ID, SplitLotRequest{Quantity: decimal.NewFromInt(10)})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SPLIT_QUANTITY", domainErr.Code)
		allocator.AssertNotCalled(t, "Next", ctx)
	})

	t.Run("rejects already split lot", func(t *testing.T) {
		service, lotRepo, _, _, _ := setup()
		source := newSourceLot(t, 10)
		require.NoError(t, source.MarkSplit())
		lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)

		_, err := service.Split(ctx, source.ID, SplitLotRequest{Quantity: decimal.NewFromInt(1)})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LOT_NOT_USABLE", domainErr.Code)
	})

	t.Run("version conflict aborts the split", func(t *testing.T) {
		service, lotRepo, splitRepo, ledgerRepo, allocator := setup()
		source := newSourceLot(t, 10)

		allocator.On("Next", ctx).Return("LOT-20260115-000002", nil).Once()
		allocator.On("Next", ctx).Return("LOT-20260115-000003", nil).Once()
		lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)
		lotRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Lot")).Return(nil)
		lotRepo.On("SaveWithLock", ctx, source).Return(shared.ErrConcurrencyConflict)
		splitRepo.On("Create", ctx, mock.Anything).Return(nil)
		ledgerRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)

		_, err := service.Split(ctx, source.ID, SplitLotRequest{Quantity: decimal.NewFromInt(6)})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

// TestSplitService_ChainedSplits walks the canonical remnant-of-a-remnant
// case: a 10 unit lot splits into 6 and 4, then the 4 unit remnant splits
// into 1 and 3.
func TestSplitService_ChainedSplits(t *testing.T) {
	ctx := context.Background()

	lotRepo := new(MockLotRepository)
	splitRepo := new(MockLotSplitRepository)
	ledgerRepo := new(MockLedgerRepository)
	productRepo := new(MockProductRepository)
	allocator := new(MockLotNumberAllocator)
	service := NewSplitService(newTestScope(lotRepo, splitRepo, ledgerRepo, productRepo), lotRepo, splitRepo, allocator)

	lots := map[uuid.UUID]*inventory.Lot{}
	source := newSourceLot(t, 10)
	lots[source.ID] = source

	allocator.On("Next", ctx).Return("LOT-20260115-000002", nil).Once()
	allocator.On("Next", ctx).Return("LOT-20260115-000003", nil).Once()
	allocator.On("Next", ctx).Return("LOT-20260115-000004", nil).Once()
	allocator.On("Next", ctx).Return("LOT-20260115-000005", nil).Once()

	lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)
	lotRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Lot")).Run(func(args mock.Arguments) {
		lot := args.Get(1).(*inventory.Lot)
		lots[lot.ID] = lot
	}).Return(nil)
	lotRepo.On("SaveWithLock", ctx, mock.AnythingOfType("*inventory.Lot")).Return(nil)
	splitRepo.On("Create", ctx, mock.Anything).Return(nil)
	ledgerRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)

	first, err := service.Split(ctx, source.ID, SplitLotRequest{Quantity: decimal.NewFromInt(6), Reason: "order"})
	require.NoError(t, err)
	assert.True(t, first.Remnant.CurrentQuantity.Equal(decimal.NewFromInt(4)))

	remnant, ok := lots[first.Remnant.ID]
	require.True(t, ok)
	lotRepo.On("FindByID", ctx, remnant.ID).Return(remnant, nil)

	second, err := service.Split(ctx, first.Remnant.ID, SplitLotRequest{Quantity: decimal.NewFromInt(1), Reason: "order"})
	require.NoError(t, err)

	assert.True(t, second.Output.CurrentQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, second.Remnant.CurrentQuantity.Equal(decimal.NewFromInt(3)))
	require.NotNil(t, second.Output.SourceLotID)
	assert.Equal(t, first.Remnant.ID, *second.Output.SourceLotID)

	// the first remnant is now retired
	assert.Equal(t, inventory.LotStatusSplit, lots[first.Remnant.ID].Status)
	assert.True(t, lots[first.Remnant.ID].CurrentQuantity.IsZero())

	// total quantity across live leaves still matches the original
	total := lots[first.Output.ID].CurrentQuantity.
		Add(lots[second.Output.ID].CurrentQuantity).
		Add(lots[second.Remnant.ID].CurrentQuantity)
	assert.True(t, total.Equal(decimal.NewFromInt(10)))
}

func TestSplitService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("split_from carries the event where the lot was the source", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		splitRepo := new(MockLotSplitRepository)
		service := NewSplitService(nil, lotRepo, splitRepo, nil)

		source := newSourceLot(t, 10)
		origin, err := inventory.NewLotSplit(uuid.New(), source.ID, uuid.New(), decimal.NewFromInt(10), "order")
		require.NoError(t, err)
		onward, err := inventory.NewLotSplit(source.ID, uuid.New(), uuid.New(), decimal.NewFromInt(4), "order")
		require.NoError(t, err)

		lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)
		splitRepo.On("FindBySource", ctx, source.ID).Return([]inventory.LotSplit{*onward}, nil)
		splitRepo.On("FindByChild", ctx, source.ID).Return([]inventory.LotSplit{*origin}, nil)

		resp, err := service.History(ctx, source.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.SplitFrom)
		assert.Equal(t, onward.ID, resp.SplitFrom.ID)
		require.Len(t, resp.SplitInto, 1)
		assert.Equal(t, origin.ID, resp.SplitInto[0].ID)
	})

	t.Run("root lot that was split reports the event, not an empty history", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		splitRepo := new(MockLotSplitRepository)
		service := NewSplitService(nil, lotRepo, splitRepo, nil)

		source := newSourceLot(t, 10)
		event, err := inventory.NewLotSplit(source.ID, uuid.New(), uuid.New(), decimal.NewFromInt(4), "order")
		require.NoError(t, err)

		lotRepo.On("FindByID", ctx, source.ID).Return(source, nil)
		splitRepo.On("FindBySource", ctx, source.ID).Return([]inventory.LotSplit{*event}, nil)
		splitRepo.On("FindByChild", ctx, source.ID).Return([]inventory.LotSplit{}, nil)

		resp, err := service.History(ctx, source.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.SplitFrom)
		assert.Equal(t, event.ID, resp.SplitFrom.ID)
		assert.Empty(t, resp.SplitInto)
	})
}

func TestSplitService_Provenance(t *testing.T) {
	ctx := context.Background()

	lotRepo := new(MockLotRepository)
	splitRepo := new(MockLotSplitRepository)
	service := NewSplitService(nil, lotRepo, splitRepo, nil)

	// a -> (b, c), c -> (d, e); we trace d back to a
	a, b, c, d, e := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()
	first, err := inventory.NewLotSplit(a, b, c, decimal.NewFromInt(6), "order")
	require.NoError(t, err)
	second, err := inventory.NewLotSplit(c, d, e, decimal.NewFromInt(1), "order")
	require.NoError(t, err)

	target := newSourceLot(t, 1)
	lotRepo.On("FindByID", ctx, d).Return(target, nil)

	contains := func(ids []uuid.UUID, want uuid.UUID) bool {
		for _, id := range ids {
			if id == want {
				return true
			}
		}
		return false
	}

	splitRepo.On("FindInvolving", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return contains(ids, d)
	})).Return([]inventory.LotSplit{*second}, nil).Once()
	splitRepo.On("FindInvolving", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return contains(ids, c)
	})).Return([]inventory.LotSplit{*first, *second}, nil).Once()
	splitRepo.On("FindInvolving", ctx, mock.Anything).Return([]inventory.LotSplit{*first}, nil)

	lotRepo.On("FindByIDs", ctx, mock.Anything).Return([]inventory.Lot{}, nil)

	resp, err := service.Provenance(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, a, resp.RootLotID)
	require.Len(t, resp.Chain, 2)
	assert.Equal(t, second.ID, resp.Chain[0].ID)
	assert.Equal(t, first.ID, resp.Chain[1].ID)
}
