package inventory

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitService divides LOTs and answers lineage questions.
// A split is a full conversion: the source LOT's entire remaining quantity
// becomes an output child (the requested amount) and a remnant child (the
// rest), and the source is retired at quantity zero. Product stock does not
// move; the quantity only changes hands between LOTs of the same product.
type SplitService struct {
	txScope   TransactionScope
	lotRepo   inventory.LotRepository
	splitRepo inventory.LotSplitRepository
	allocator inventory.LotNumberAllocator
}

// NewSplitService creates a new SplitService
func NewSplitService(
	txScope TransactionScope,
	lotRepo inventory.LotRepository,
	splitRepo inventory.LotSplitRepository,
	allocator inventory.LotNumberAllocator,
) *SplitService {
	return &SplitService{
		txScope:   txScope,
		lotRepo:   lotRepo,
		splitRepo: splitRepo,
		allocator: allocator,
	}
}

// Split divides the source LOT into an output LOT of the requested quantity
// and a remnant LOT carrying the rest. The source re-read, both inserts, the
// split record, the status update and three ledger entries commit in one
// transaction; a version conflict on the source aborts with
// ErrConcurrencyConflict.
func (s *SplitService) Split(ctx context.Context, sourceLotID uuid.UUID, req SplitLotRequest) (*SplitResultResponse, error) {
	// Cheap precondition pass before paying for lot numbers; the
	// authoritative check runs again on the re-read inside the transaction.
	source, err := s.lotRepo.FindByID(ctx, sourceLotID)
	if err != nil {
		return nil, err
	}
	if err := source.ValidateSplit(req.Quantity); err != nil {
		return nil, err
	}

	outputNumber, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}
	remnantNumber, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}

	var result *SplitResultResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.LotRepo().FindByID(ctx, sourceLotID)
		if err != nil {
			return err
		}
		if err := source.ValidateSplit(req.Quantity); err != nil {
			return err
		}

		sourceQuantity := source.CurrentQuantity
		remnantQuantity := sourceQuantity.Sub(req.Quantity)

		output, err := s.newChildLot(source, outputNumber, req.Quantity)
		if err != nil {
			return err
		}
		remnant, err := s.newChildLot(source, remnantNumber, remnantQuantity)
		if err != nil {
			return err
		}

		if err := source.MarkSplit(); err != nil {
			return err
		}

		split, err := inventory.NewLotSplit(source.ID, output.ID, remnant.ID, req.Quantity, req.Reason)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			split.WithNotes(req.Notes)
		}
		if req.SplitBy != nil {
			split.WithSplitBy(*req.SplitBy)
		}
		source.AddDomainEvent(inventory.NewLotSplitEvent(split))

		if err := repos.LotRepo().Save(ctx, output); err != nil {
			return err
		}
		if err := repos.LotRepo().Save(ctx, remnant); err != nil {
			return err
		}
		if err := repos.LotRepo().SaveWithLock(ctx, source); err != nil {
			return err
		}
		if err := repos.SplitRepo().Create(ctx, split); err != nil {
			return err
		}

		entries, err := splitLedgerEntries(source, output, remnant, sourceQuantity, req.SplitBy)
		if err != nil {
			return err
		}
		if err := repos.LedgerRepo().CreateBatch(ctx, entries); err != nil {
			return err
		}

		result = &SplitResultResponse{
			Split:   *ToSplitResponse(split),
			Source:  *ToLotResponse(source),
			Output:  *ToLotResponse(output),
			Remnant: *ToLotResponse(remnant),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// newChildLot creates a split child inheriting the source's cost, location,
// supplier and expiry
func (s *SplitService) newChildLot(source *inventory.Lot, lotNumber string, quantity decimal.Decimal) (*inventory.Lot, error) {
	child, err := inventory.NewLot(source.ProductID, lotNumber, quantity, inventory.LotSourceSplit)
	if err != nil {
		return nil, err
	}
	child.WithSourceLot(source.ID).WithReceivedAt(source.ReceivedAt)
	if source.Supplier != "" {
		child.WithSupplier(source.Supplier)
	}
	if source.Location != "" {
		child.WithLocation(source.Location)
	}
	if source.UnitCost != nil {
		child.WithUnitCost(*source.UnitCost)
	}
	if source.ExpiryDate != nil {
		child.WithExpiryDate(*source.ExpiryDate)
	}
	if source.SourceDocumentID != nil {
		child.WithSourceDocument(*source.SourceDocumentID)
	}
	return child, nil
}

// splitLedgerEntries builds the three entries a split writes: the source
// drained to zero and each child filled from zero.
func splitLedgerEntries(source, output, remnant *inventory.Lot, sourceQuantity decimal.Decimal, actor *uuid.UUID) ([]*inventory.LotTransaction, error) {
	sourceEntry, err := inventory.NewLotTransaction(source.ID, source.ProductID, inventory.TransactionTypeOutbound,
		sourceQuantity, sourceQuantity, decimal.Zero)
	if err != nil {
		return nil, err
	}
	sourceEntry.WithReference(source.LotNumber).WithNotes("split into " + output.LotNumber + ", " + remnant.LotNumber)

	outputEntry, err := inventory.NewLotTransaction(output.ID, output.ProductID, inventory.TransactionTypeInbound,
		output.InitialQuantity, decimal.Zero, output.InitialQuantity)
	if err != nil {
		return nil, err
	}
	outputEntry.WithReference(output.LotNumber).WithNotes("split from " + source.LotNumber)

	remnantEntry, err := inventory.NewLotTransaction(remnant.ID, remnant.ProductID, inventory.TransactionTypeInbound,
		remnant.InitialQuantity, decimal.Zero, remnant.InitialQuantity)
	if err != nil {
		return nil, err
	}
	remnantEntry.WithReference(remnant.LotNumber).WithNotes("split from " + source.LotNumber)

	entries := []*inventory.LotTransaction{sourceEntry, outputEntry, remnantEntry}
	if actor != nil {
		for _, entry := range entries {
			entry.WithCreatedBy(*actor)
		}
	}
	return entries, nil
}

// History returns the split events directly touching one LOT: split_from is
// the event where the LOT was the source (at most one, a split retires its
// source) and split_into holds the event that created it as a child.
func (s *SplitService) History(ctx context.Context, lotID uuid.UUID) (*LotHistoryResponse, error) {
	if _, err := s.lotRepo.FindByID(ctx, lotID); err != nil {
		return nil, err
	}

	from, err := s.splitRepo.FindBySource(ctx, lotID)
	if err != nil {
		return nil, err
	}
	into, err := s.splitRepo.FindByChild(ctx, lotID)
	if err != nil {
		return nil, err
	}

	resp := &LotHistoryResponse{
		LotID:     lotID,
		SplitInto: ToSplitResponses(into),
	}
	if len(from) > 0 {
		resp.SplitFrom = ToSplitResponse(&from[0])
	}
	return resp, nil
}

// Provenance walks the LOT's parent chain to its root, loading splits in
// batches until the frontier stops growing, then reports the chain and every
// LOT on it.
func (s *SplitService) Provenance(ctx context.Context, lotID uuid.UUID) (*ProvenanceResponse, error) {
	if _, err := s.lotRepo.FindByID(ctx, lotID); err != nil {
		return nil, err
	}

	splits, err := s.collectLineage(ctx, lotID)
	if err != nil {
		return nil, err
	}
	index := inventory.NewLineageIndex(splits)

	chain := index.AncestorChain(lotID)
	rootID := index.RootOf(lotID)

	lotIDs := []uuid.UUID{lotID}
	for _, split := range chain {
		lotIDs = append(lotIDs, split.SourceLotID, split.OutputLotID, split.RemnantLotID)
	}
	lots, err := s.lotRepo.FindByIDs(ctx, dedupe(lotIDs))
	if err != nil {
		return nil, err
	}

	return &ProvenanceResponse{
		LotID:     lotID,
		RootLotID: rootID,
		Chain:     ToSplitResponses(chain),
		Lots:      ToLotResponses(lots),
	}, nil
}

// collectLineage fetches split records reachable from the LOT by repeatedly
// asking for everything involving the known frontier. Each round either
// discovers new LOTs or terminates, so depth is unbounded but rounds are
// finite.
func (s *SplitService) collectLineage(ctx context.Context, lotID uuid.UUID) ([]inventory.LotSplit, error) {
	known := map[uuid.UUID]bool{lotID: true}
	frontier := []uuid.UUID{lotID}
	collected := make([]inventory.LotSplit, 0)
	seenSplits := map[uuid.UUID]bool{}

	for len(frontier) > 0 {
		splits, err := s.splitRepo.FindInvolving(ctx, frontier)
		if err != nil {
			return nil, err
		}

		next := make([]uuid.UUID, 0)
		for _, split := range splits {
			if seenSplits[split.ID] {
				continue
			}
			seenSplits[split.ID] = true
			collected = append(collected, split)
			for _, id := range []uuid.UUID{split.SourceLotID, split.OutputLotID, split.RemnantLotID} {
				if !known[id] {
					known[id] = true
					next = append(next, id)
				}
			}
		}
		frontier = next
	}
	return collected, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
