package production

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionService books production runs and the raw materials they
// consume. Every stock movement it makes is mirrored by a product-level
// ledger entry, and cancellation restores stock through compensating
// adjustment entries instead of deleting anything.
type ConsumptionService struct {
	txScope         TransactionScope
	recordRepo      production.RecordRepository
	consumptionRepo production.ConsumptionRepository
}

// NewConsumptionService creates a new ConsumptionService
func NewConsumptionService(
	txScope TransactionScope,
	recordRepo production.RecordRepository,
	consumptionRepo production.ConsumptionRepository,
) *ConsumptionService {
	return &ConsumptionService{
		txScope:         txScope,
		recordRepo:      recordRepo,
		consumptionRepo: consumptionRepo,
	}
}

// CreateRecord books a production run and consumes its materials in one
// transaction. Insufficient stock on any material rejects the whole booking.
func (s *ConsumptionService) CreateRecord(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	var created *production.ProductionRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		record, err := production.NewProductionRecord(product.ID, req.QuantityProduced, req.ProductionDate)
		if err != nil {
			return err
		}
		if req.BatchNumber != "" {
			record.WithBatchNumber(req.BatchNumber)
		}
		if req.Notes != "" {
			record.WithNotes(req.Notes)
		}
		if req.CreatedBy != nil {
			record.WithCreatedBy(*req.CreatedBy)
		}

		if err := repos.RecordRepo().Save(ctx, record); err != nil {
			return err
		}

		for _, input := range req.Consumptions {
			row, err := s.consumeMaterial(ctx, repos, record, input.MaterialID, input.Quantity, input.UnitPriceAtTime, req.CreatedBy)
			if err != nil {
				return err
			}
			record.Consumptions = append(record.Consumptions, *row)
		}

		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToRecordResponse(created), nil
}

// Consume books one additional material draw against an existing record
func (s *ConsumptionService) Consume(ctx context.Context, recordID uuid.UUID, req ConsumeRequest) (*ConsumptionResponse, error) {
	var row *production.ProductionConsumption
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.RecordRepo().FindByID(ctx, recordID)
		if err != nil {
			return err
		}
		if err := record.CanConsume(); err != nil {
			return err
		}

		row, err = s.consumeMaterial(ctx, repos, record, req.MaterialID, req.Quantity, req.UnitPriceAtTime, req.Actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ToConsumptionResponse(row), nil
}

// consumeMaterial decrements the material's cached stock, writes the
// outbound ledger entry and the consumption row with its snapshots
func (s *ConsumptionService) consumeMaterial(
	ctx context.Context,
	repos TransactionalRepositories,
	record *production.ProductionRecord,
	materialID uuid.UUID,
	quantity, unitPriceAtTime decimal.Decimal,
	actor *uuid.UUID,
) (*production.ProductionConsumption, error) {
	material, err := repos.ProductRepo().FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	stockBefore := material.CurrentStock
	if err := material.DecreaseStock(quantity); err != nil {
		return nil, err
	}

	row, err := production.NewProductionConsumption(record.ID, material.ID,
		quantity, unitPriceAtTime, stockBefore, material.CurrentStock)
	if err != nil {
		return nil, err
	}

	entry, err := inventory.NewProductTransaction(material.ID, inventory.TransactionTypeOutbound,
		quantity, stockBefore, material.CurrentStock)
	if err != nil {
		return nil, err
	}
	entry.WithReference(record.BatchNumber).WithNotes("production consumption")
	if actor != nil {
		entry.WithCreatedBy(*actor)
	}

	if err := repos.ConsumptionRepo().Create(ctx, row); err != nil {
		return nil, err
	}
	if err := repos.LedgerRepo().Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := repos.ProductRepo().SaveWithLock(ctx, material); err != nil {
		return nil, err
	}
	return row, nil
}

// CancelRecord reverses a production run. Every consumption row gets an
// adjustment ledger entry restoring the material's stock, then the record is
// marked canceled. A second cancellation returns ErrAlreadyCanceled without
// touching stock.
func (s *ConsumptionService) CancelRecord(ctx context.Context, recordID uuid.UUID, req CancelRecordRequest) (*RecordResponse, error) {
	var canceled *production.ProductionRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.RecordRepo().FindByIDWithConsumptions(ctx, recordID)
		if err != nil {
			return err
		}
		if record.IsCanceled() {
			return shared.ErrAlreadyCanceled
		}

		for i := range record.Consumptions {
			row := &record.Consumptions[i]
			material, err := repos.ProductRepo().FindByID(ctx, row.MaterialID)
			if err != nil {
				return err
			}

			stockBefore := material.CurrentStock
			if err := material.IncreaseStock(row.QuantityUsed); err != nil {
				return err
			}

			entry, err := inventory.NewProductTransaction(material.ID, inventory.TransactionTypeAdjustment,
				row.QuantityUsed, stockBefore, material.CurrentStock)
			if err != nil {
				return err
			}
			entry.WithNotes("production cancel restore")
			if req.Actor != nil {
				entry.WithCreatedBy(*req.Actor)
			}

			if err := repos.LedgerRepo().Create(ctx, entry); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, material); err != nil {
				return err
			}
		}

		if err := record.Cancel(req.Actor, req.Reason); err != nil {
			return err
		}
		if err := repos.RecordRepo().SaveWithLock(ctx, record); err != nil {
			return err
		}

		canceled = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToRecordResponse(canceled), nil
}

// Get returns one record with its consumptions
func (s *ConsumptionService) Get(ctx context.Context, recordID uuid.UUID) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByIDWithConsumptions(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return ToRecordResponse(record), nil
}

// GetByRecord returns the consumption rows of one record
func (s *ConsumptionService) GetByRecord(ctx context.Context, recordID uuid.UUID) ([]ConsumptionResponse, error) {
	if _, err := s.recordRepo.FindByID(ctx, recordID); err != nil {
		return nil, err
	}
	rows, err := s.consumptionRepo.FindByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return ToConsumptionResponses(rows), nil
}

// List returns records matching the filter, paginated
func (s *ConsumptionService) List(ctx context.Context, filter RecordListFilter) (*shared.Paginated[RecordResponse], error) {
	domainFilter := toRecordFilter(filter)

	records, err := s.recordRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.recordRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToRecordResponses(records), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toRecordFilter(filter RecordListFilter) production.RecordFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.Search = filter.Search

	out := production.RecordFilter{
		Filter:    base,
		ProductID: filter.ProductID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}
	if filter.Status != "" {
		status := production.RecordStatus(filter.Status)
		out.Status = &status
	}
	return out
}
